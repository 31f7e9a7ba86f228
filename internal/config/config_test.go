package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoad_Defaults 缺少配置文件时使用默认值
func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(cwd) }()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Serial.Port != "/dev/ttyUSB0" {
		t.Errorf("default serial port: got %q", cfg.Serial.Port)
	}
	if cfg.Serial.Baud != 115200 {
		t.Errorf("default baud: got %d", cfg.Serial.Baud)
	}
	if cfg.Serial.ReadTimeout != time.Second {
		t.Errorf("default read timeout: got %v", cfg.Serial.ReadTimeout)
	}
	if cfg.Poll.MaxCycles != 200 {
		t.Errorf("default max cycles: got %d", cfg.Poll.MaxCycles)
	}
	if cfg.HTTP.Enable {
		t.Error("http should default to disabled")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level: got %q", cfg.Logging.Level)
	}
}

// TestLoad_File 配置文件覆盖默认值
func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
serial:
  port: /dev/ttyAMA0
  baud: 256000
poll:
  interval: 50ms
  maxCycles: 10
http:
  enable: true
  addr: ":9090"
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Serial.Port != "/dev/ttyAMA0" {
		t.Errorf("serial port: got %q", cfg.Serial.Port)
	}
	if cfg.Serial.Baud != 256000 {
		t.Errorf("baud: got %d", cfg.Serial.Baud)
	}
	if cfg.Poll.Interval != 50*time.Millisecond {
		t.Errorf("poll interval: got %v", cfg.Poll.Interval)
	}
	if cfg.Poll.MaxCycles != 10 {
		t.Errorf("max cycles: got %d", cfg.Poll.MaxCycles)
	}
	if !cfg.HTTP.Enable || cfg.HTTP.Addr != ":9090" {
		t.Errorf("http config: %+v", cfg.HTTP)
	}
	// 未覆盖的仍是默认值
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("metrics path: got %q", cfg.Metrics.Path)
	}
}
