// Package ctxutil carries per-mention request metadata through the
// context, so every log line produced while handling one mention shares
// a correlation ID.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const correlationIDKey ctxKey = "correlation_id"

// WithCorrelationID stores a fresh correlation ID in the context.
func WithCorrelationID(ctx context.Context) context.Context {
	return context.WithValue(ctx, correlationIDKey, uuid.NewString())
}

// CorrelationIDFromCtx extracts the correlation ID from the context,
// generating one when the caller did not attach any.
func CorrelationIDFromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
