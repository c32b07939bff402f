package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mobilemart/marketplace/internal/core/domain"
)

// DefaultTokenTTL is the lifetime of every issued token.
const DefaultTokenTTL = time.Hour

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 bearer tokens.
// It holds no per-session state.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue mints a token binding the user's id and current role.
func (s *TokenService) Issue(user *domain.User) (string, *domain.Claims, error) {
	now := s.now().UTC()
	claims := tokenClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return signed, &domain.Claims{
		UserID:    user.ID,
		Role:      user.Role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Validate verifies signature, algorithm and expiry. The returned error always
// matches domain.ErrAuthFailed; the wrapped detail is for logs only.
func (s *TokenService) Validate(raw string) (*domain.Claims, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty token", domain.ErrAuthFailed)
	}

	var tc tokenClaims
	tkn, err := jwt.ParseWithClaims(raw, &tc, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthFailed, err)
	}
	if !tkn.Valid {
		return nil, fmt.Errorf("%w: token not valid", domain.ErrAuthFailed)
	}
	if tc.Subject == "" || !domain.ValidRole(tc.Role) {
		return nil, fmt.Errorf("%w: missing subject or role", domain.ErrAuthFailed)
	}

	claims := &domain.Claims{
		UserID:    tc.Subject,
		Role:      tc.Role,
		ExpiresAt: tc.ExpiresAt.Time,
	}
	if tc.IssuedAt != nil {
		claims.IssuedAt = tc.IssuedAt.Time
	}
	return claims, nil
}
