package transport

import (
	"fmt"

	"go.bug.st/serial"

	cfgpkg "github.com/sensegate/ld2410s/internal/config"
)

// Port 串口传输。Read 带有界超时，超时返回 (0, nil)，
// 交由轮询循环空转等待；Write 假定在会话内可靠。
type Port struct {
	p serial.Port
}

// Open 按配置打开串口（8N1）
func Open(cfg cfgpkg.SerialConfig) (*Port, error) {
	mode := &serial.Mode{
		BaudRate: cfg.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(cfg.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Port, err)
	}
	if err := p.SetReadTimeout(cfg.ReadTimeout); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}
	return &Port{p: p}, nil
}

func (t *Port) Read(b []byte) (int, error) {
	return t.p.Read(b)
}

func (t *Port) Write(b []byte) (int, error) {
	return t.p.Write(b)
}

func (t *Port) Close() error {
	return t.p.Close()
}
