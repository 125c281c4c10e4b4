package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// WithRequestID stamps the request id onto the context for the rest of the
// request's lifetime.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// FromCtx returns the global logger, tagged with the context's request id
// when one is present, so every log line of a request correlates.
func FromCtx(ctx context.Context) *zap.Logger {
	if reqID := RequestIDFrom(ctx); reqID != "" {
		return L().With(zap.String("request_id", reqID))
	}
	return L()
}
