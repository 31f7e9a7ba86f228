package ld2410s

import "encoding/binary"

// statusOK 状态字段 00 00 表示成功
const statusOK uint16 = 0x0000

// respStatus 读取响应状态字段（命令字后的2字节）
func respStatus(p []byte) uint16 {
	return binary.LittleEndian.Uint16(p[2:4])
}

// parseVersion 解析固件版本响应。
// 布局：word(2) + equipmentType(4) + versionType(2) + majorLE(2) + minorLE(2) + patchLE(2)
func parseVersion(p []byte) (*Version, error) {
	if len(p) < 14 {
		return nil, &ProtocolFault{Word: ackWord(CmdGetVersion), Reason: "version body shorter than 14 bytes", Len: len(p)}
	}
	v := &Version{
		Major: binary.LittleEndian.Uint16(p[8:10]),
		Minor: binary.LittleEndian.Uint16(p[10:12]),
		Patch: binary.LittleEndian.Uint16(p[12:14]),
	}
	copy(v.EquipmentType[:], p[2:6])
	copy(v.VersionType[:], p[6:8])
	return v, nil
}

// parseSerial 解析序列号响应。
// 布局：word(2) + status(2) + lenLE(2) + ASCII字节。
// 状态失败时返回 (nil, nil)，留待下个周期重查。
func parseSerial(p []byte) (*string, error) {
	if len(p) < 4 {
		return nil, &ProtocolFault{Word: ackWord(CmdReadSerial), Reason: "serial body shorter than 4 bytes", Len: len(p)}
	}
	if respStatus(p) != statusOK {
		return nil, nil
	}
	if len(p) < 6 {
		return nil, &ProtocolFault{Word: ackWord(CmdReadSerial), Reason: "serial body missing length field", Len: len(p)}
	}
	n := int(binary.LittleEndian.Uint16(p[4:6]))
	if len(p) < 6+n {
		return nil, &ProtocolFault{Word: ackWord(CmdReadSerial), Reason: "serial body shorter than declared string", Len: len(p)}
	}
	sn := string(p[6 : 6+n])
	return &sn, nil
}

// parseParams 解析参数批量读取响应。
// 布局：word(2) + status(2) + 六个LE32，按 paramIDs 请求顺序。
// 状态失败时返回 (nil, nil)；状态成功但不足28字节按畸形响应处理。
func parseParams(p []byte) (*Params, error) {
	if len(p) < 4 {
		return nil, &ProtocolFault{Word: ackWord(CmdReadParams), Reason: "params body shorter than 4 bytes", Len: len(p)}
	}
	if respStatus(p) != statusOK {
		return nil, nil
	}
	if len(p) < 28 {
		return nil, &ProtocolFault{Word: ackWord(CmdReadParams), Reason: "params body shorter than 28 bytes", Len: len(p)}
	}
	return &Params{
		StatusFreq:   binary.LittleEndian.Uint32(p[4:8]),
		DistanceFreq: binary.LittleEndian.Uint32(p[8:12]),
		MaxGate:      binary.LittleEndian.Uint32(p[12:16]),
		MinGate:      binary.LittleEndian.Uint32(p[16:20]),
		Unattended:   binary.LittleEndian.Uint32(p[20:24]),
		RespSpeed:    binary.LittleEndian.Uint32(p[24:28]),
	}, nil
}
