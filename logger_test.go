package packedbits

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := context.Background()

	logger.LogSave(ctx, "k", 10, 2, nil)
	if buf.Len() != 0 {
		t.Fatalf("debug records should be filtered at info level, got %q", buf.String())
	}
	logger.LogDelete(ctx, "k", errors.New("boom"))
	if !strings.Contains(buf.String(), `"msg":"delete failed"`) || !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Fatalf("error record missing, got %q", buf.String())
	}
}

func TestConstructorsDoNotPanic(t *testing.T) {
	for _, l := range []*Logger{NewLogger(nil), NewTextLogger(slog.LevelWarn), NewJSONLogger(slog.LevelError), NoopLogger()} {
		l.LogLoad(context.Background(), "k", 1, nil)
	}
}
