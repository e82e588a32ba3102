package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, err := New("production", "warn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer zap.ReplaceGlobals(zap.NewNop())

	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info to be disabled at warn level")
	}
	if zap.L() != log {
		t.Fatalf("expected global logger to be replaced")
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := New("development", "loud")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer zap.ReplaceGlobals(zap.NewNop())

	if !log.Core().Enabled(zapcore.InfoLevel) || log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected info level")
	}
}
