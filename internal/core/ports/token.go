package ports

import "github.com/mobilemart/marketplace/internal/core/domain"

// TokenIssuer mints bearer tokens for an authenticated identity.
type TokenIssuer interface {
	Issue(user *domain.User) (string, *domain.Claims, error)
}

// TokenValidator verifies a raw bearer token. Every failure is reported as
// domain.ErrAuthFailed.
type TokenValidator interface {
	Validate(raw string) (*domain.Claims, error)
}
