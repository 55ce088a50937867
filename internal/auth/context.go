// internal/auth/context.go
//
// Request-context carriage for the authenticated admin.
//
// Usage
// -----
//     // Attach the principal after token validation.
//     ctx = auth.WithPrincipal(ctx, p)
//
//     // Downstream handlers retrieve it.
//     p, ok := auth.PrincipalFrom(ctx)
//
// Notes
// -----
// • The key type is unexported to avoid context-key collisions.
// • The Principal never carries the connection string; handlers re-fetch
//   the admin record when they need a tenant handle.

package auth

import "context"

// Principal identifies the authenticated admin for the request lifetime.
type Principal struct {
	AdminID  int64
	Username string
	Role     string
}

// principalKey is unexported to avoid context-key collisions.
type principalKey struct{}

// WithPrincipal returns a new context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom extracts the principal from ctx.  ok == false when the
// request is unauthenticated.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
