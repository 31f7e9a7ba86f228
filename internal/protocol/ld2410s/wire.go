package ld2410s

// LD2410S 串口协议帧格式：
// head(4) FD FC FB FA | lenLE(2) | body(len字节) | end(4) 04 03 02 01
// 下行 body = cmd(1) + 0x00保留字节 + payload(var)
// 上行 body = cmd(1) + 0x01应答标记 + payload(var)
var (
	frameHead = []byte{0xFD, 0xFC, 0xFB, 0xFA}
	frameEnd  = []byte{0x04, 0x03, 0x02, 0x01}
)

// Command 下行命令码
type Command uint8

const (
	CmdGetVersion    Command = 0x00 // 读取固件版本
	CmdReadSerial    Command = 0x11 // 读取序列号
	CmdReadParams    Command = 0x71 // 批量读取配置参数
	CmdEnableConfig  Command = 0xFF // 进入配置模式
	CmdDisableConfig Command = 0xFE // 退出配置模式
)

// ackFlag 上行应答标记，命令字第二字节固定为0x01
const ackFlag = 0x01

// ackWord 上行命令字（按线序：cmd在前、应答标记在后，小端组合）
func ackWord(c Command) uint16 {
	return uint16(c) | uint16(ackFlag)<<8
}

// paramIDs 0x71命令查询的参数ID集合，响应值按此顺序返回：
// 状态上报频率、距离上报频率、最远距离门、最近距离门、无人延迟秒数、响应速度模式
var paramIDs = []uint16{0x0002, 0x000C, 0x0005, 0x000A, 0x0006, 0x000B}

// enableConfigPayload 进入配置模式命令的固定载荷
var enableConfigPayload = []byte{0x01, 0x00}

func (c Command) String() string {
	switch c {
	case CmdGetVersion:
		return "get_version"
	case CmdReadSerial:
		return "read_serial"
	case CmdReadParams:
		return "read_params"
	case CmdEnableConfig:
		return "enable_config"
	case CmdDisableConfig:
		return "disable_config"
	}
	return "unknown"
}
