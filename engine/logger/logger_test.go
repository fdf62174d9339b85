package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := ParseLevel(c.in); got != c.want {
				t.Fatalf("ParseLevel(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		on   zapcore.Level
		off  zapcore.Level
	}{
		{"production_warn", Config{Level: "warn"}, zapcore.WarnLevel, zapcore.InfoLevel},
		{"development_debug", Config{Level: "debug", Development: true}, zapcore.DebugLevel, zapcore.DebugLevel - 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l, err := New(c.cfg)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if !l.Core().Enabled(c.on) {
				t.Fatalf("%v should be enabled", c.on)
			}
			if l.Core().Enabled(c.off) {
				t.Fatalf("%v should be disabled", c.off)
			}
		})
	}
}
