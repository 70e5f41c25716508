package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the type for values stored in the request context.
type ContextKey string

const (
	// PrincipalContextKey is the context key for the authenticated caller
	// principal, set by the authentication middleware.
	PrincipalContextKey ContextKey = "principal"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds a fresh trace ID to the context. Useful for correlating
// logs and error responses across a single request.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
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

// GetPrincipal retrieves the authenticated caller principal from the
// context. Returns false when no principal was set.
func GetPrincipal(ctx context.Context) (string, bool) {
	principal, ok := ctx.Value(PrincipalContextKey).(string)
	if !ok || principal == "" {
		return "", false
	}
	return principal, true
}
