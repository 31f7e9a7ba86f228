package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sensegate/ld2410s/internal/app"
	cfgpkg "github.com/sensegate/ld2410s/internal/config"
	"github.com/sensegate/ld2410s/internal/httpserver"
	"github.com/sensegate/ld2410s/internal/logging"
	"github.com/sensegate/ld2410s/internal/metrics"
	"github.com/sensegate/ld2410s/internal/transport"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径，缺省读取 configs/config.yaml")
	flag.Parse()

	// 1) 加载配置
	cfg, err := cfgpkg.Load(*configPath)
	if err != nil {
		panic(err)
	}

	// 2) 初始化日志
	logger, err := logging.InitLogger(cfg.Logging)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)
	log := zap.L()

	// 3) 指标注册与处理器
	reg := metrics.NewRegistry()
	dm := metrics.NewDriverMetrics(reg)

	// 4) 串口与轮询器
	port, err := transport.Open(cfg.Serial)
	if err != nil {
		log.Fatal("serial open error", zap.Error(err))
	}
	defer func() { _ = port.Close() }()

	poller := app.NewPoller(port, cfg.Poll, log, dm)

	// 5) 可选 HTTP 状态服务
	var httpSrv *httpserver.Server
	if cfg.HTTP.Enable {
		httpSrv = httpserver.New(cfg.HTTP, cfg.Metrics.Path, metrics.Handler(reg),
			poller.Ready,
			func() any { return poller.Snapshot() })
		go func() {
			if err := httpSrv.Start(); err != nil {
				log.Error("http server error", zap.Error(err))
			}
		}()
	}

	// 6) 执行采集
	report, runErr := poller.Run(context.Background())
	if runErr != nil {
		log.Error("poll run failed", zap.Error(runErr))
	}

	out, err := report.Render()
	if err != nil {
		log.Fatal("report render error", zap.Error(err))
	}
	fmt.Print(out)

	if httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(ctx)
	}
	if runErr != nil {
		os.Exit(1)
	}
}
