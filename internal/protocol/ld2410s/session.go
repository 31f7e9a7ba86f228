package ld2410s

import (
	"encoding/binary"
	"fmt"

	"go.uber.org/zap"

	"github.com/sensegate/ld2410s/internal/metrics"
)

// sessionState 轮询进度。命令依赖关系：版本查询不需要配置模式，
// 序列号与参数读取必须先进入配置模式，全部已知后要退出配置模式。
type sessionState int

const (
	stateVersion sessionState = iota
	stateConfigEnable
	stateSerial
	stateParams
	stateConfigDisable
	stateComplete
)

// Session 单设备轮询会话。持有累积的串口输入、已采集的设备事实
// 与配置模式标志；由外部驱动循环反复调用 Poll 推进。
// 非并发安全：约定只有一个执行上下文访问。
type Session struct {
	buf           []byte
	facts         DeviceFacts
	configStarted bool
	awaitingReply bool
	state         sessionState

	log *zap.Logger
	m   *metrics.DriverMetrics
}

// NewSession 创建轮询会话。logger、m 允许为 nil。
func NewSession(logger *zap.Logger, m *metrics.DriverMetrics) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{log: logger, m: m}
}

// Facts 采集到的设备事实（未完成时部分字段为 nil）
func (s *Session) Facts() *DeviceFacts {
	return &s.facts
}

// ConfigStarted 当前是否处于设备配置模式
func (s *Session) ConfigStarted() bool {
	return s.configStarted
}

// Complete 轮询序列是否已结束
func (s *Session) Complete() bool {
	return s.state == stateComplete && !s.awaitingReply
}

// advance 唯一的状态转移函数：根据事实与配置模式标志重算进度。
// 失败状态（序列号/参数未写入、退出配置失败）天然落回原状态，
// 下个周期重发同一命令，无需显式重试计数。
func (s *Session) advance() {
	switch {
	case s.facts.Version == nil:
		s.state = stateVersion
	case s.facts.SerialNumber == nil || s.facts.Params == nil:
		if !s.configStarted {
			s.state = stateConfigEnable
		} else if s.facts.SerialNumber == nil {
			s.state = stateSerial
		} else {
			s.state = stateParams
		}
	case s.configStarted:
		s.state = stateConfigDisable
	default:
		s.state = stateComplete
	}
}

// NextCommand 当前状态对应的下一条下行命令；序列完成时返回 false
func (s *Session) NextCommand() (Command, bool) {
	switch s.state {
	case stateVersion:
		return CmdGetVersion, true
	case stateConfigEnable:
		return CmdEnableConfig, true
	case stateSerial:
		return CmdReadSerial, true
	case stateParams:
		return CmdReadParams, true
	case stateConfigDisable:
		return CmdDisableConfig, true
	}
	return 0, false
}

// ApplyResponse 按2字节命令字分发一条上行响应并更新事实。
// 已知字段不会被重复写入；未知命令字只记日志不改状态；
// 畸形响应返回 *ProtocolFault，由调用方决定终止或跳过。
func (s *Session) ApplyResponse(p []byte) error {
	if len(p) < 2 {
		s.log.Warn("response too short for command word", zap.Int("len", len(p)))
		return nil
	}
	word := binary.LittleEndian.Uint16(p[:2])

	switch word {
	case ackWord(CmdEnableConfig):
		// 设备对该命令无条件应答，不检查状态字段
		s.configStarted = true

	case ackWord(CmdDisableConfig):
		if len(p) < 4 {
			s.fault()
			return &ProtocolFault{Word: word, Reason: "disable-config body shorter than 4 bytes", Len: len(p)}
		}
		if respStatus(p) == statusOK {
			s.configStarted = false
		} else {
			// 保持配置模式标志，下个周期重发退出命令
			s.log.Warn("disable config rejected", zap.Uint16("status", respStatus(p)))
		}

	case ackWord(CmdGetVersion):
		v, err := parseVersion(p)
		if err != nil {
			s.fault()
			return err
		}
		if s.facts.Version != nil {
			s.log.Debug("duplicate version response ignored")
			break
		}
		s.facts.Version = v

	case ackWord(CmdReadSerial):
		sn, err := parseSerial(p)
		if err != nil {
			s.fault()
			return err
		}
		if sn == nil {
			s.log.Warn("read serial rejected", zap.Uint16("status", respStatus(p)))
			break
		}
		if s.facts.SerialNumber == nil {
			s.facts.SerialNumber = sn
		}

	case ackWord(CmdReadParams):
		params, err := parseParams(p)
		if err != nil {
			s.fault()
			return err
		}
		if params == nil {
			s.log.Warn("read params rejected", zap.Uint16("status", respStatus(p)))
			break
		}
		if s.facts.Params == nil {
			// 六项参数整体写入，不存在部分已知
			s.facts.Params = params
		}

	default:
		s.log.Warn("unknown command word", zap.String("word", fmt.Sprintf("0x%04X", word)))
		return nil
	}

	s.advance()
	return nil
}

// Poll 驱动一次轮询迭代：累积输入、出一帧、应用响应，
// 在无在途命令时编码并写出下一条命令。
// 返回 true 表示还需继续轮询；false 表示序列完成。
// 返回 *ProtocolFault 时该响应已被消费，选择跳过策略的调用方
// 可以继续调用 Poll，下个周期会重发当前状态的命令。
func (s *Session) Poll(incoming []byte, write func([]byte) error) (bool, error) {
	s.buf = append(s.buf, incoming...)

	before := len(s.buf)
	payload, rest := Deframe(s.buf)
	s.buf = rest

	if payload != nil {
		if s.m != nil {
			s.m.FramesDeframed.Inc()
		}
		s.awaitingReply = false
		if err := s.ApplyResponse(payload); err != nil {
			return false, err
		}
	} else if len(rest) < before {
		if s.m != nil {
			s.m.ResyncDiscards.Inc()
		}
	}

	if !s.awaitingReply {
		if cmd, ok := s.NextCommand(); ok {
			if err := write(encodeCommand(cmd)); err != nil {
				return false, fmt.Errorf("write %s: %w", cmd, err)
			}
			if s.m != nil {
				s.m.CommandsSent.WithLabelValues(cmd.String()).Inc()
			}
			s.awaitingReply = true
		}
	}
	return s.awaitingReply, nil
}

func (s *Session) fault() {
	if s.m != nil {
		s.m.ProtocolFaults.Inc()
	}
}
