package profiler

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTickLogsAfterInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewProfiler(WithName("tick"), WithInterval(20*time.Millisecond), WithLogger(zap.New(core)))

	if p.Tick() {
		t.Fatalf("first tick should not log before the interval")
	}
	time.Sleep(30 * time.Millisecond)
	if !p.Tick() {
		t.Fatalf("tick after the interval should log")
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["loop"] != "tick" {
		t.Fatalf("loop = %v", ctx["loop"])
	}
	if rate, ok := ctx["rate"].(float64); !ok || rate <= 0 {
		t.Fatalf("rate = %v", ctx["rate"])
	}
}
