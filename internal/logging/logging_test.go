package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWritesJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)

	logger.Info("calendar ready", "port", 8080)

	out := buf.String()
	if !strings.Contains(out, `"msg":"calendar ready"`) || !strings.Contains(out, `"port":8080`) {
		t.Fatalf("expected JSON log line, got %q", out)
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("expected info suppressed, got %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("expected warning emitted, got %q", out)
	}
}

func TestContextLoggerRoundTrip(t *testing.T) {
	t.Parallel()

	logger := New(&bytes.Buffer{}, slog.LevelInfo)
	ctx := ContextWithLogger(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Fatalf("expected the attached logger back")
	}
	if got := FromContext(context.Background()); got != nil {
		t.Fatalf("expected nil for a bare context")
	}
}
