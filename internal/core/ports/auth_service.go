package ports

import (
	"context"

	"github.com/mobilemart/marketplace/internal/core/domain"
)

// RegisterInput carries the identity fields accepted on registration.
type RegisterInput struct {
	FirstName    string
	LastName     string
	MobileNumber string
	Email        string
	Role         string
	Password     string
}

// LoginResult is returned on a successful credential check.
type LoginResult struct {
	Token  string
	Claims *domain.Claims
	User   *domain.User
}

// AuthService verifies credentials and manages identities.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns domain.ErrInvalidCredentials when the email is unknown or
	// the password does not match. Any other error is an infrastructure fault.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
