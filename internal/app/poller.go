package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	cfgpkg "github.com/sensegate/ld2410s/internal/config"
	"github.com/sensegate/ld2410s/internal/metrics"
	"github.com/sensegate/ld2410s/internal/protocol/ld2410s"
)

// Transport 轮询循环消费的串口契约：有界超时读（超时返回0字节）
// 与尽力写。由 internal/transport 的串口实现或测试桩提供。
type Transport interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// ErrCycleBudget 达到迭代上限仍未完成。
// 协议本身没有保活/重试，设备不应答时 awaiting_reply 会一直为真，
// 有界等待只能由这里的迭代上限兜底。
var ErrCycleBudget = errors.New("poll cycle budget exhausted")

// Poller 驱动一台 LD2410S 的采集轮询
type Poller struct {
	tr        Transport
	sess      *ld2410s.Session
	log       *zap.Logger
	m         *metrics.DriverMetrics
	limiter   *rate.Limiter
	maxCycles int

	mu       sync.Mutex
	snapshot Report
	done     bool
}

// NewPoller 创建轮询器。m 允许为 nil。
func NewPoller(tr Transport, cfg cfgpkg.PollConfig, logger *zap.Logger, m *metrics.DriverMetrics) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 20 * time.Millisecond
	}
	return &Poller{
		tr:        tr,
		sess:      ld2410s.NewSession(logger, m),
		log:       logger,
		m:         m,
		limiter:   rate.NewLimiter(rate.Every(interval), 1),
		maxCycles: cfg.MaxCycles,
		snapshot:  BuildReport(nil),
	}
}

// Snapshot 当前采集快照（并发安全，供 HTTP 状态服务读取）
func (p *Poller) Snapshot() Report {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// Ready 轮询是否已成功完成
func (p *Poller) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Run 执行完整的采集序列直到完成、出错或达到迭代上限。
// 任何返回路径下 Snapshot 都保留已采集到的部分事实。
func (p *Poller) Run(ctx context.Context) (Report, error) {
	runID := uuid.NewString()
	log := p.log.With(zap.String("run", runID))
	log.Info("poll run starting", zap.Int("max_cycles", p.maxCycles))

	write := func(b []byte) error {
		_, err := p.tr.Write(b)
		return err
	}

	// 首轮不读串口，直接发出第一条命令
	more, err := p.sess.Poll(nil, write)
	p.observe()
	if err != nil {
		return p.Snapshot(), err
	}

	buf := make([]byte, 256)
	for cycle := 1; more; cycle++ {
		if p.maxCycles > 0 && cycle > p.maxCycles {
			log.Warn("cycle budget exhausted", zap.Int("cycles", p.maxCycles))
			return p.Snapshot(), fmt.Errorf("%w after %d cycles", ErrCycleBudget, p.maxCycles)
		}
		if err := p.limiter.Wait(ctx); err != nil {
			return p.Snapshot(), err
		}

		n, err := p.tr.Read(buf)
		if err != nil {
			return p.Snapshot(), fmt.Errorf("serial read: %w", err)
		}

		more, err = p.sess.Poll(buf[:n], write)
		p.observe()
		if err != nil {
			return p.Snapshot(), err
		}
	}

	p.mu.Lock()
	p.done = true
	p.mu.Unlock()
	log.Info("poll run complete")
	return p.Snapshot(), nil
}

// observe 每轮更新指标与快照
func (p *Poller) observe() {
	facts := p.sess.Facts()
	if p.m != nil {
		p.m.PollCycles.Inc()
		known := 0
		if facts.Version != nil {
			known++
		}
		if facts.SerialNumber != nil {
			known++
		}
		if facts.Params != nil {
			known++
		}
		p.m.FactsKnown.Set(float64(known))
	}
	r := BuildReport(facts)
	p.mu.Lock()
	p.snapshot = r
	p.mu.Unlock()
}
