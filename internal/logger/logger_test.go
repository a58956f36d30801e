package logger

import (
	"testing"

	"github.com/deppfellow/restaurant-backend/internal/config"
	"github.com/rs/zerolog"
)

func TestGetPgxTraceLogLevel(t *testing.T) {
	cases := map[zerolog.Level]int{
		zerolog.TraceLevel: 6,
		zerolog.DebugLevel: 5,
		zerolog.InfoLevel:  4,
		zerolog.WarnLevel:  3,
		zerolog.ErrorLevel: 2,
		zerolog.FatalLevel: 0,
	}

	for level, want := range cases {
		if got := GetPgxTraceLogLevel(level); got != want {
			t.Fatalf("level %s: expected %d, got %d", level, want, got)
		}
	}
}

func TestNewLoggerServiceWithoutLicense(t *testing.T) {
	svc := NewLoggerService(config.DefaultObservabilityConfig())
	if svc.GetApplication() != nil {
		t.Fatalf("expected no New Relic application without a license key")
	}
	svc.Shutdown()

	var nilService *LoggerService
	if nilService.GetApplication() != nil {
		t.Fatalf("expected nil service to report no application")
	}
}

func TestNewLoggerUsesConfiguredLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	log := NewLogger(cfg)
	if log.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %s", log.GetLevel())
	}
}

func TestWithTraceContextNilTransaction(t *testing.T) {
	log := zerolog.Nop()
	got := WithTraceContext(log, nil)
	if got.GetLevel() != log.GetLevel() {
		t.Fatalf("expected logger unchanged")
	}
}
