package rapidscorer

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with rapidscorer-specific context.
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

// WithScorer adds the scorer variant name to the logger.
func (l *Logger) WithScorer(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("scorer", name),
	}
}

// WithForest adds forest shape fields to the logger.
func (l *Logger) WithForest(trees, totalLeaves int) *Logger {
	return &Logger{
		Logger: l.Logger.With("trees", trees, "total_leaves", totalLeaves),
	}
}

// LogBuild logs a scorer construction.
func (l *Logger) LogBuild(ctx context.Context, variant string, trees int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "scorer build failed",
			"variant", variant,
			"trees", trees,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "scorer built",
			"variant", variant,
			"trees", trees,
			"duration", duration,
		)
	}
}

// LogScoreBatch logs a batch scoring run.
func (l *Logger) LogScoreBatch(ctx context.Context, documents int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch scoring failed",
			"documents", documents,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "batch scored",
			"documents", documents,
			"duration", duration,
		)
	}
}

// LogModelLoad logs a model ingestion.
func (l *Logger) LogModelLoad(ctx context.Context, source string, trees int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "model load failed",
			"source", source,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "model loaded",
			"source", source,
			"trees", trees,
			"duration", duration,
		)
	}
}
