package log

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zap.DebugLevel},
		{"INFO", zap.InfoLevel},
		{" warn ", zap.WarnLevel},
		{"warning", zap.WarnLevel},
		{"error", zap.ErrorLevel},
		{"verbose", zap.InfoLevel},
		{"", zap.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHelpersWriteToConfiguredLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer Configure("", "info")

	Info("info message", zap.String("k", "v"))
	Warnf("warn %d", 1)
	Errorw("error message", "key", "value")
	Debugf("debug %s", "message")

	if logs.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", logs.Len())
	}

	entries := logs.All()
	if entries[0].Message != "info message" || entries[0].ContextMap()["k"] != "v" {
		t.Errorf("unexpected info entry: %+v", entries[0])
	}
	if entries[1].Level != zap.WarnLevel || entries[1].Message != "warn 1" {
		t.Errorf("unexpected warn entry: %+v", entries[1])
	}
	if entries[2].ContextMap()["key"] != "value" {
		t.Errorf("unexpected error entry context: %v", entries[2].ContextMap())
	}
}
