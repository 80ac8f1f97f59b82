// Package principal carries the authenticated identity through the request
// context. Handlers receive an explicit, typed value instead of mutating
// shared request state.
package principal

import "context"

// Kinds of principal.
const (
	KindUser  = "user"
	KindAdmin = "admin"
)

// Principal is the verified identity attached to a request after token
// verification: a storefront user or a panel admin.
type Principal struct {
	ID    string // ObjectID hex of the backing document
	Kind  string
	Name  string
	Email string
	Role  string // admin role; empty for users
}

// IsAdmin reports whether the principal is an admin.
func (p Principal) IsAdmin() bool { return p.Kind == KindAdmin }

type ctxKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromCtx extracts the principal from ctx.
// ok is false when the request was not authenticated.
func FromCtx(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}
