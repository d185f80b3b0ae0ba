package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %s", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected format 'json', got %s", cfg.Format)
	}
}

func TestSetup_LevelFallback(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"not-a-level", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			Setup(Config{Level: tt.level}, &bytes.Buffer{})
			if got := zerolog.GlobalLevel(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestWithSession_AddsFields(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	saved := log.Logger
	defer func() { log.Logger = saved }()

	var buf bytes.Buffer
	Setup(Config{Level: "info"}, &buf)

	l := WithSession("S1", "R1")
	l.Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"sessionId":"S1"`) || !strings.Contains(out, `"requestId":"R1"`) {
		t.Errorf("expected session fields in %s", out)
	}
}

func TestWithComponent_AddsField(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	saved := log.Logger
	defer func() { log.Logger = saved }()

	var buf bytes.Buffer
	Setup(Config{Level: "info"}, &buf)

	l := WithComponent("adapter")
	l.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"component":"adapter"`) {
		t.Errorf("expected component field in %s", buf.String())
	}
}
