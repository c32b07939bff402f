// Package memory provides process-local repositories used when no database
// is configured and by the HTTP end-to-end tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mobilemart/marketplace/internal/core/domain"
)

type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]*domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}

	stored := *user
	stored.ID = primitive.NewObjectID().Hex()
	r.byEmail[stored.Email] = &stored

	out := stored
	return &out, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.byEmail))
	for _, u := range r.byEmail {
		out := *u
		out.PasswordHash = ""
		users = append(users, &out)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}
