package logger_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.trai.ch/tsinfer/internal/adapters/logger"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error(errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"debug message", "info message", "warn message", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLogger_DefaultLevelHidesDebug(t *testing.T) {
	// The default handler writes to stderr at Info level; SetOutput switches
	// to Debug for test visibility, so assert the level logic via slog text.
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)
	log.Info("visible")

	if !strings.Contains(buf.String(), "level=INFO") {
		t.Errorf("expected text handler output, got:\n%s", buf.String())
	}
}
