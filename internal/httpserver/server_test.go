package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	cfgpkg "github.com/sensegate/ld2410s/internal/config"
	appmetrics "github.com/sensegate/ld2410s/internal/metrics"
)

func newTestServer(ready bool) *Server {
	cfg := cfgpkg.HTTPConfig{Addr: ":0", ReadTimeout: time.Second, WriteTimeout: time.Second}
	reg := appmetrics.NewRegistry()
	handler := appmetrics.Handler(reg)
	deviceFn := func() any {
		return map[string]string{"firmwareVersion": "7.0.5", "serialNumber": "unknown"}
	}
	return New(cfg, "/metrics", handler, func() bool { return ready }, deviceFn)
}

func TestHealthzReadyzMetrics(t *testing.T) {
	srv := newTestServer(true)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		srv.srv.Handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s code=%d", path, rr.Code)
		}
	}
}

func TestReadyzNotReady(t *testing.T) {
	srv := newTestServer(false)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	srv.srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("/readyz not-ready code=%d", rr.Code)
	}
}

func TestDeviceFacts(t *testing.T) {
	srv := newTestServer(true)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/device", nil)
	srv.srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("/api/v1/device code=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "7.0.5") {
		t.Fatalf("device facts body missing version: %s", rr.Body.String())
	}
}
