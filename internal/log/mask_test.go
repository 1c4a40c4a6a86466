package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestMaskingHandlerMasksCredentialKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)
	logger.Info("rejected", "password", "hunter2", "line", "letmein", "count", 3)
	logger.With("user_password", "s3cret").Warn("bound attrs")
	logger.Info("grouped", slog.Group("input", slog.String("pw", "abc123"), slog.Int("n", 1)))

	out := buf.String()
	for _, leaked := range []string{"hunter2", "letmein", "s3cret", "abc123"} {
		if strings.Contains(out, leaked) {
			t.Fatalf("log leaked %q:\n%s", leaked, out)
		}
	}
	if !strings.Contains(out, "count=3") || !strings.Contains(out, "input.n=1") {
		t.Fatalf("expected ordinary attrs to survive:\n%s", out)
	}
	if strings.Count(out, MaskValue) != 4 {
		t.Fatalf("expected 4 masked values:\n%s", out)
	}
}

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	quiet := New(&buf, false)
	quiet.Info("progress")
	quiet.Debug("timing")
	if buf.Len() != 0 {
		t.Fatalf("non-verbose logger must drop info and debug, got %q", buf.String())
	}
	quiet.Warn("dictionary missing")
	if !strings.Contains(buf.String(), "dictionary missing") {
		t.Fatalf("expected warning, got %q", buf.String())
	}
}
