package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is the type for values this package stores on a request context.
type ContextKey string

// TraceIDKey is the key for the trace ID in the request context
const TraceIDKey ContextKey = "traceID"

// TraceIDLength is the length of a generated trace ID in hex characters.
const TraceIDLength = 32

// SetTraceID adds a fresh trace ID to the context.
// The ID correlates log lines with the error body returned to the caller.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

func generateTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
