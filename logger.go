package graphgo

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/graphgo/model"
)

// Logger wraps slog.Logger with graphgo-specific context.
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

// WithVertex adds a vertex field to the logger.
func (l *Logger) WithVertex(v model.Vertex) *Logger {
	return &Logger{
		Logger: l.Logger.With("vertex", uint32(v)),
	}
}

// WithEdge adds an edge field to the logger.
func (l *Logger) WithEdge(e model.Edge) *Logger {
	return &Logger{
		Logger: l.Logger.With("edge", uint32(e)),
	}
}

// WithSystem adds a system name field to the logger.
func (l *Logger) WithSystem(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("system", name),
	}
}

// LogEntityClose logs a closed entity builder.
func (l *Logger) LogEntityClose(ctx context.Context, v model.Vertex, ops int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "entity close failed",
			"vertex", uint32(v),
			"ops", ops,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "entity closed",
			"vertex", uint32(v),
			"ops", ops,
		)
	}
}

// LogRelationClose logs a closed relation builder.
func (l *Logger) LogRelationClose(ctx context.Context, e model.Edge, ops int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "relation close failed",
			"edge", uint32(e),
			"ops", ops,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "relation closed",
			"edge", uint32(e),
			"ops", ops,
		)
	}
}

// LogSystemRun logs one system execution.
func (l *Logger) LogSystemRun(ctx context.Context, name string, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "system failed",
			"system", name,
			"duration", duration,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "system completed",
			"system", name,
			"duration", duration,
		)
	}
}

// LogFetch logs a collected fetch.
func (l *Logger) LogFetch(ctx context.Context, records int, duration time.Duration) {
	l.DebugContext(ctx, "fetch collected",
		"records", records,
		"duration", duration,
	)
}
