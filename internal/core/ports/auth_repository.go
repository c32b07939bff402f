package ports

import (
	"context"

	"github.com/mobilemart/marketplace/internal/core/domain"
)

// AuthRepository defines identity persistence.
// FindByEmail expects an already normalised (lower-cased) email and returns
// domain.ErrUserNotFound when nothing matches.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
