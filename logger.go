package vecmem

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with vecmem-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithCollection adds a collection name field to the logger.
func (l *Logger) WithCollection(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("collection", name),
	}
}

// LogWrite logs a batch write operation (add or upsert).
func (l *Logger) LogWrite(ctx context.Context, op string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"op", op,
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "write completed",
			"op", op,
			"count", count,
		)
	}
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, requested, removed int) {
	l.DebugContext(ctx, "delete completed",
		"requested", requested,
		"removed", removed,
	)
}

// LogQuery logs a similarity query.
func (l *Logger) LogQuery(ctx context.Context, queries, topK int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"queries", queries,
			"top_k", topK,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "query completed",
			"queries", queries,
			"top_k", topK,
		)
	}
}
