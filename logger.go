package cosmeans

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with clustering-specific helpers.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count (number of points) field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogRun logs the outcome of a clustering run.
func (l *Logger) LogRun(ctx context.Context, status Status, iterations int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "clustering completed",
		"status", status.String(),
		"iterations", iterations,
		"duration", duration,
	)
}

// LogIteration logs a single assignment+update round.
func (l *Logger) LogIteration(ctx context.Context, iteration, moved, empty int) {
	if empty > 0 {
		l.DebugContext(ctx, "iteration kept centroids of empty clusters",
			"iteration", iteration,
			"moved", moved,
			"empty_clusters", empty,
		)
		return
	}
	l.DebugContext(ctx, "iteration completed",
		"iteration", iteration,
		"moved", moved,
	)
}

// LogModelIO logs a model save or load.
func (l *Logger) LogModelIO(ctx context.Context, op, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "model "+op+" failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "model "+op+" completed",
		"name", name,
	)
}
