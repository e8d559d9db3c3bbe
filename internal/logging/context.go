package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// ctxKey is the private context key type for this package.
type ctxKey struct{}

// WithLogger returns a context carrying logger. Pipeline code receiving
// the context retrieves it with FromContext, so callers decide where
// worker diagnostics go.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger attached to ctx, falling back to the
// process-wide default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	logger, ok := ctx.Value(ctxKey{}).(*log.Logger)
	if !ok || logger == nil {
		return Default()
	}
	return logger
}
