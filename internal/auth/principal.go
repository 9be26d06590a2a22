// Package auth carries the signed-in company through a request.
//
// The session middleware resolves the session cookie and stores a Principal
// on the request context; services read it back with FromContext. Nothing
// else holds "who is signed in".
package auth

import "context"

// Principal is the company a request acts on behalf of.
type Principal struct {
	CompanyID int64
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored on ctx, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// Owns reports whether the principal on ctx is the company with id.
func Owns(ctx context.Context, companyID int64) bool {
	p, ok := FromContext(ctx)
	return ok && p.CompanyID == companyID
}
