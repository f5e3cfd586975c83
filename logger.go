package meowhash

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with meowhash-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithKey adds a content key field to the logger.
func (l *Logger) WithKey(key string) *Logger {
	return &Logger{
		Logger: l.Logger.With("key", key),
	}
}

// WithStore adds a store location field to the logger.
func (l *Logger) WithStore(location string) *Logger {
	return &Logger{
		Logger: l.Logger.With("store", location),
	}
}

// WithImplementation adds the active AES kernel to the logger.
func (l *Logger) WithImplementation() *Logger {
	return &Logger{
		Logger: l.Logger.With("impl", Implementation()),
	}
}

// LogPut logs a content-addressed write.
func (l *Logger) LogPut(ctx context.Context, key string, size int64, stored bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "put failed",
			"key", key,
			"size", size,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "put completed",
			"key", key,
			"size", size,
			"stored", stored,
		)
	}
}

// LogGet logs a content-addressed read.
func (l *Logger) LogGet(ctx context.Context, key string, size int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "get failed",
			"key", key,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "get completed",
			"key", key,
			"size", size,
		)
	}
}

// LogManifest logs a completed object write.
func (l *Logger) LogManifest(ctx context.Context, key string, chunks, deduplicated int, size int64) {
	l.InfoContext(ctx, "object stored",
		"key", key,
		"chunks", chunks,
		"deduplicated", deduplicated,
		"size", size,
	)
}
