// Package domain provides the core billing types, repository contracts and
// request-scoped context helpers.
package domain

import "context"

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	principalContextKey contextKey = iota
	requestIDContextKey
)

// Principal is the authenticated caller stored in context.
type Principal struct {
	Username string
	Role     Role
}

// WithPrincipal returns a new context carrying the authenticated caller.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext returns the authenticated caller, or nil.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey).(*Principal)
	return p
}

// WithRequestID stores the request ID for log correlation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

// RequestIDFromContext returns the request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}
