package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/school-games/internal/config"
	"github.com/riskibarqy/school-games/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "school-games",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, nil)
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestNewPprofServer(t *testing.T) {
	if srv := NewPprofServer(config.Config{PprofEnabled: false}, nil); srv != nil {
		t.Fatalf("expected nil server when pprof disabled")
	}

	srv := NewPprofServer(config.Config{PprofEnabled: true, PprofAddr: ":6061"}, logging.NewNop())
	if srv == nil {
		t.Fatalf("expected pprof server when enabled")
	}
	if srv.Addr != ":6061" {
		t.Fatalf("unexpected pprof addr: %q", srv.Addr)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected pprof status: %d", rec.Code)
	}
}
