package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/mobilemart/marketplace/internal/core/domain"
	"github.com/mobilemart/marketplace/internal/core/ports"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Email: "a@example.com", Role: domain.RoleBuyer, PasswordHash: "h"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if _, err := repo.Create(ctx, &domain.User{Email: "a@example.com"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	found, err := repo.FindByEmail(ctx, "a@example.com")
	if err != nil || found.ID != created.ID {
		t.Fatalf("FindByEmail: %v %+v", err, found)
	}
	if _, err := repo.FindByEmail(ctx, "b@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	users, _ := repo.List(ctx)
	if len(users) != 1 || users[0].PasswordHash != "" {
		t.Fatalf("expected one user without hash, got %+v", users)
	}
}

func TestMobileRepository_ListFilters(t *testing.T) {
	repo := NewMobileRepository()
	ctx := context.Background()

	seed := []domain.Mobile{
		{Brand: "Nova", Model: "X1", MobilePrice: 3000, UserID: "s1"},
		{Brand: "Zeta", Model: "Nova Lite", MobilePrice: 1500, UserID: "s2"},
		{Brand: "Acme", Model: "A.1", MobilePrice: 9000, UserID: "s1"},
	}
	for i := range seed {
		if _, err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, _ := repo.List(ctx, ports.MobileFilter{Sort: domain.SortPriceDesc})
	if len(all) != 3 || all[0].MobilePrice != 9000 {
		t.Fatalf("unexpected catalog order: %+v", all)
	}

	owned, _ := repo.List(ctx, ports.MobileFilter{OwnerID: "s1", Sort: domain.SortPriceAsc})
	if len(owned) != 2 || owned[0].MobilePrice != 3000 {
		t.Fatalf("unexpected owned listing: %+v", owned)
	}

	nova, _ := repo.List(ctx, ports.MobileFilter{Search: "NOVA"})
	if len(nova) != 2 {
		t.Fatalf("expected brand or model match, got %d", len(nova))
	}

	literal, _ := repo.List(ctx, ports.MobileFilter{Search: "A.1"})
	if len(literal) != 1 {
		t.Fatalf("expected literal match, got %d", len(literal))
	}
}

func TestMobileRepository_UpdateDelete(t *testing.T) {
	repo := NewMobileRepository()
	ctx := context.Background()

	m, _ := repo.Create(ctx, &domain.Mobile{Brand: "Nova", MobilePrice: 3000, UserID: "s1"})

	qty := 4
	if err := repo.Update(ctx, m.ID, domain.MobileChanges{AvailableQuantity: &qty}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := repo.FindByID(ctx, m.ID)
	if got.AvailableQuantity != 4 || got.UserID != "s1" {
		t.Fatalf("unexpected mobile after update: %+v", got)
	}

	if err := repo.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, m.ID); !errors.Is(err, domain.ErrMobileNotFound) {
		t.Fatalf("expected ErrMobileNotFound, got %v", err)
	}
	if err := repo.Update(ctx, "nope", domain.MobileChanges{}); !errors.Is(err, domain.ErrMobileNotFound) {
		t.Fatalf("expected ErrMobileNotFound, got %v", err)
	}
}
