package ld2410s

import (
	"bytes"
	"encoding/binary"

	"go.uber.org/zap"
)

// Encode 构造下行帧：head + lenLE(2) + cmd + 0x00 + payload + end。
// 长度字段计入命令码与保留字节，即 len(payload)+2。
func Encode(cmd Command, payload []byte) []byte {
	bodyLen := len(payload) + 2
	buf := make([]byte, 0, 4+2+bodyLen+4)
	buf = append(buf, frameHead...)

	lenBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBytes, uint16(bodyLen))
	buf = append(buf, lenBytes...)

	buf = append(buf, byte(cmd), 0x00)
	buf = append(buf, payload...)
	buf = append(buf, frameEnd...)
	return buf
}

// encodeCommand 按命令码附带其固定载荷编码一帧
func encodeCommand(cmd Command) []byte {
	switch cmd {
	case CmdEnableConfig:
		return Encode(cmd, enableConfigPayload)
	case CmdReadParams:
		p := make([]byte, 0, len(paramIDs)*2)
		for _, id := range paramIDs {
			var b [2]byte
			binary.LittleEndian.PutUint16(b[:], id)
			p = append(p, b[:]...)
		}
		return Encode(cmd, p)
	}
	return Encode(cmd, nil)
}

// Deframe 从累积缓冲中提取一帧载荷。
// 一次只取一帧；缓冲中排队多帧时需要重复调用。
// 返回 (nil, buf) 表示数据不足需继续累积；返回 (nil, rest) 且 rest 变短
// 表示丢弃了一段无效数据（重新同步）；返回 (payload, rest) 表示取到一帧，
// payload 为长度字段之后的 body 内容（cmd + 应答标记 + 数据）。
func Deframe(buf []byte) ([]byte, []byte) {
	endIdx := bytes.Index(buf, frameEnd)
	if endIdx < 0 {
		// 未见包尾，等待更多字节
		return nil, buf
	}
	rest := buf[endIdx+len(frameEnd):]

	headIdx := bytes.Index(buf[:endIdx], frameHead)
	if headIdx < 0 {
		// 包尾之前没有包头，整段丢弃重新同步
		zap.L().Warn("ld2410s: discarding unframed span",
			zap.Int("bytes", endIdx+len(frameEnd)))
		return nil, rest
	}

	data := buf[headIdx+len(frameHead) : endIdx]
	if len(data) < 2 {
		// 连长度字段都不完整，按损坏帧丢弃
		zap.L().Warn("ld2410s: frame too short for length field",
			zap.Int("bytes", len(data)))
		return nil, rest
	}

	declared := int(binary.LittleEndian.Uint16(data[:2]))
	if len(data) != declared+2 {
		// 长度不符只告警不拒收，按实际提取的字节继续，避免长轮询卡死
		zap.L().Warn("ld2410s: frame length mismatch",
			zap.Int("declared", declared),
			zap.Int("actual", len(data)-2))
	}
	return data[2:], rest
}
