package ld2410s

import "fmt"

// ProtocolFault 上行响应不满足其固定布局时的错误。
// 与重新同步不同：帧本身完整，但 body 对不上该命令字的应答格式，
// 说明设备或解析约定出了问题，默认策略是终止轮询。
type ProtocolFault struct {
	Word   uint16 // 响应命令字（线序小端组合）
	Reason string
	Len    int // 实际载荷长度
}

func (e *ProtocolFault) Error() string {
	return fmt.Sprintf("ld2410s: malformed response word=0x%04X len=%d: %s", e.Word, e.Len, e.Reason)
}
