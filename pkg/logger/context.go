package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// WithContext attaches a request-scoped logger to ctx.
func WithContext(ctx context.Context, log *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the logger attached to ctx, or fallback.
func FromContext(ctx context.Context, fallback *zap.SugaredLogger) *zap.SugaredLogger {
	if log, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok && log != nil {
		return log
	}
	return fallback
}
