package slogx

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// WithContext attaches logger to ctx so handlers down the chain can pick up
// the request-scoped fields.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored by WithContext, falling back to
// slog.Default when none is present.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
