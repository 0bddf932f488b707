package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/servicehub-api/internal/service/auth"
)

// ContextKey is the type of request context keys owned by the API layer.
type ContextKey string

const (
	// ClaimsContextKey holds the verified *auth.Claims of the caller.
	ClaimsContextKey ContextKey = "claims"

	// TraceIDKey holds the request's trace ID.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a generated trace ID.
	TraceIDLength = 16 // 32 hex characters
)

// SetTraceID adds a freshly generated trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, generateTraceID())
}

// WithTraceID adds the given trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context, or "".
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithClaims stores the caller's verified claims in the context.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext returns the claims placed by the authentication
// middleware.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// generateTraceID returns 32 random hex characters. If the system random
// source fails it falls back to a version 4 UUID without dashes.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err != nil {
		slog.Error("failed to generate secure random trace ID",
			"error", err,
			"fallback", "uuid")
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return hex.EncodeToString(b)
}
