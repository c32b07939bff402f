package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mobilemart/marketplace/internal/core/domain"
	"github.com/mobilemart/marketplace/internal/core/ports"
)

type stubAuthRepo struct {
	users   map[string]*domain.User
	seq     int
	findErr error
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func newTestAuthService(repo ports.AuthRepository) (*AuthService, *TokenService) {
	tokens := NewTokenService("secret", time.Hour)
	svc := NewAuthService(repo, tokens, zerolog.Nop())
	svc.hashCost = bcrypt.MinCost
	return svc, tokens
}

func registerInput(email, role, password string) ports.RegisterInput {
	return ports.RegisterInput{
		FirstName:    "Test",
		LastName:     "User",
		MobileNumber: "9876543210",
		Email:        email,
		Role:         role,
		Password:     password,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _ := newTestAuthService(newStubAuthRepo())

	user, err := svc.Register(context.Background(), registerInput("  Alice@Example.COM ", domain.RoleSeller, "pass123"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalised email, got %q", user.Email)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleSeller {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newTestAuthService(newStubAuthRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput("", domain.RoleBuyer, "pass123")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty email, got %v", err)
	}
	if _, err := svc.Register(ctx, registerInput("bob@example.com", domain.RoleBuyer, "short")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for short password, got %v", err)
	}
	if _, err := svc.Register(ctx, registerInput("bob@example.com", "admin", "pass123")); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newTestAuthService(newStubAuthRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput("bob@example.com", domain.RoleBuyer, "pass123")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register(ctx, registerInput("BOB@example.com", domain.RoleBuyer, "pass456")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, tokens := newTestAuthService(newStubAuthRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput("carol@example.com", domain.RoleSeller, "s3cret")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(ctx, "Carol@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if res.User == nil || res.User.Email != "carol@example.com" {
		t.Fatalf("unexpected user: %+v", res.User)
	}

	claims, err := tokens.Validate(res.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.UserID != res.User.ID || claims.Role != domain.RoleSeller {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _ := newTestAuthService(newStubAuthRepo())
	ctx := context.Background()

	_, _ = svc.Register(ctx, registerInput("dave@example.com", domain.RoleBuyer, "goodpass"))
	if _, err := svc.Login(ctx, "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(newStubAuthRepo())

	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	repo := newStubAuthRepo()
	repo.findErr = errors.New("connection refused")
	svc, _ := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), "erin@example.com", "pass123")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
}

func TestAuthService_ListUsers(t *testing.T) {
	svc, _ := newTestAuthService(newStubAuthRepo())
	ctx := context.Background()

	_, _ = svc.Register(ctx, registerInput("a@example.com", domain.RoleBuyer, "pass123"))
	_, _ = svc.Register(ctx, registerInput("b@example.com", domain.RoleSeller, "pass123"))

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}
