package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAuthFailed is the single outcome of every token rejection. Callers never
// learn whether the token was missing, malformed, forged or expired.
var ErrAuthFailed = errors.New("authentication failed")

// Claims is the decoded payload of a bearer token. Role is fixed at issuance.
type Claims struct {
	UserID    string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the claims carry one of roles.
func (c *Claims) HasRole(roles ...string) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

type claimsKey struct{}

// WithClaims attaches validated claims to ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFromContext returns the claims stored by WithClaims, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsKey{}).(*Claims)
	return c
}
