package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry 创建自定义 Prometheus Registry，并注册常用采集器
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler 返回 Prometheus 指标 HTTP 处理器
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// DriverMetrics 轮询驱动指标
type DriverMetrics struct {
	FramesDeframed prometheus.Counter     // 成功出帧数
	ResyncDiscards prometheus.Counter     // 重新同步丢弃的数据段数
	CommandsSent   *prometheus.CounterVec // labels: cmd
	ProtocolFaults prometheus.Counter     // 畸形响应数
	PollCycles     prometheus.Counter     // 轮询迭代数
	FactsKnown     prometheus.Gauge       // 已采集到的事实数量
}

// NewDriverMetrics 注册并返回驱动指标
func NewDriverMetrics(reg *prometheus.Registry) *DriverMetrics {
	m := &DriverMetrics{
		FramesDeframed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ld2410s_frames_deframed_total",
			Help: "Frames successfully extracted from the serial stream.",
		}),
		ResyncDiscards: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ld2410s_resync_discards_total",
			Help: "End-marker-delimited spans discarded during resynchronization.",
		}),
		CommandsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ld2410s_commands_sent_total",
			Help: "Commands written to the device by name.",
		}, []string{"cmd"}),
		ProtocolFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ld2410s_protocol_faults_total",
			Help: "Responses rejected as malformed.",
		}),
		PollCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ld2410s_poll_cycles_total",
			Help: "Poll loop iterations.",
		}),
		FactsKnown: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ld2410s_facts_known",
			Help: "Device facts collected so far (version, serial, params).",
		}),
	}
	reg.MustRegister(m.FramesDeframed, m.ResyncDiscards, m.CommandsSent, m.ProtocolFaults, m.PollCycles, m.FactsKnown)
	return m
}
