// Package contextkeys provides centralized context key definitions.
//
// All context keys used across the application are defined here. This
// prevents typos, documents dependencies, and makes key usage
// discoverable.
package contextkeys

import (
	"context"

	"github.com/rutamundo/backend/pkg/auth"
)

// Key is the type for context keys to prevent collisions
type Key string

const (
	// IdentityKey contains the auth.Identity decoded from the request's
	// bearer token.
	// Set by: middleware.Authenticator (pkg/middleware/auth.go)
	// Required by: all permission-gated handlers
	// Type: auth.Identity
	IdentityKey Key = "identity"

	// RequestIDKey contains the request ID string (UUID)
	// Set by: middleware.RequestID
	// Used by: logger, audit trail
	// Type: string
	RequestIDKey Key = "request_id"
)

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// IdentityFrom extracts the authenticated identity from the context.
// The second return is false for unauthenticated requests.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(auth.Identity)
	return identity, ok
}

// WithRequestID returns a context carrying the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// RequestIDFrom extracts the request ID, or "" if unset.
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
