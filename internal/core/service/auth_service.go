package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mobilemart/marketplace/internal/core/domain"
	"github.com/mobilemart/marketplace/internal/core/ports"
)

const minPasswordLen = 6

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.AuthRepository
	tokens   ports.TokenIssuer
	log      zerolog.Logger
	hashCost int
}

func NewAuthService(repo ports.AuthRepository, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log, hashCost: bcrypt.DefaultCost}
}

// NormalizeEmail is the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		MobileNumber: in.MobileNumber,
		Email:        email,
		Role:         in.Role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login checks the credential pair and issues a token. Unknown emails and
// wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Debug().Str("user_id", user.ID).Str("role", user.Role).Msg("token issued")
	return &ports.LoginResult{Token: token, Claims: claims, User: user}, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
