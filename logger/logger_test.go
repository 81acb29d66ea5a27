package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"chatty", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultLoggerIsNoop(t *testing.T) {
	if Log == nil || Sugar == nil {
		t.Fatal("globals must never be nil")
	}
	Info("discarded", zap.Int("n", 1))
	Named("player").Debug("discarded")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glider.log")
	cfg := DefaultFileConfig(path)
	cfg.Compress = false

	if err := InitWithFileConfig("warn", cfg, false); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = InitWithFileConfig("info", FileConfig{}, false)
	})

	Info("below threshold")
	Named("enemy").Warn("script failed", zap.String("script", "muncher.tengo"))
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "below threshold") {
		t.Errorf("info line written at warn level: %q", out)
	}
	for _, want := range []string{"WARN", "enemy", "script failed", "muncher.tengo"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q: %q", want, out)
		}
	}
}

func TestNoOutputsIsNoop(t *testing.T) {
	if err := InitWithFileConfig("debug", FileConfig{}, false); err != nil {
		t.Fatalf("init: %v", err)
	}
	if Log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger without outputs should be disabled")
	}
}
