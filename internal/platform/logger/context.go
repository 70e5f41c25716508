package logger

import (
	"context"
	"log/slog"
)

// loggerKey is the context key for the request-scoped logger.
type loggerKey struct{}

// WithLogger returns a new context carrying the given logger. Middleware
// attaches a logger enriched with request attributes so downstream code
// logs with full correlation context.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// FromContext retrieves the logger from the context, falling back to the
// process default logger if none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger from the context, falling back
// to the provided default (typically a component-tagged logger) rather
// than the process default.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
