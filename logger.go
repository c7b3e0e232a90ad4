package packedbits

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with store-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, nil))
}

// LogSave logs a save operation.
func (l *Logger) LogSave(ctx context.Context, key string, size, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"key", key,
			"size", size,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "save completed",
		"key", key,
		"size", size,
		"count", count,
	)
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(ctx context.Context, key string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"key", key,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "load completed",
		"key", key,
		"size", size,
	)
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, key string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "delete failed",
			"key", key,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "delete completed", "key", key)
}
