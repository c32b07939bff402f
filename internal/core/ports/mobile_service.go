package ports

import (
	"context"

	"github.com/mobilemart/marketplace/internal/core/domain"
)

// CatalogInput carries the search and sort parameters of the catalog.
type CatalogInput struct {
	Search string
	Sort   int
}

// ListOwnedInput carries the parameters of the seller listing.
// RequestedOwnerID is what the client sent; it is checked against the claims,
// never used as the filter.
type ListOwnedInput struct {
	RequestedOwnerID string
	Search           string
	Sort             int
}

// MobileInput holds the fields of a new listing.
type MobileInput struct {
	Brand             string
	Model             string
	Description       string
	MobilePrice       float64
	AvailableQuantity int
	UserID            string
}

// MobileService defines use-case operations for mobiles. Every method takes
// the caller's validated claims.
type MobileService interface {
	ListCatalog(ctx context.Context, claims *domain.Claims, in CatalogInput) ([]*domain.Mobile, error)
	ListOwned(ctx context.Context, claims *domain.Claims, in ListOwnedInput) ([]*domain.Mobile, error)
	Get(ctx context.Context, claims *domain.Claims, id string) (*domain.Mobile, error)
	Create(ctx context.Context, claims *domain.Claims, in MobileInput) (*domain.Mobile, error)
	Update(ctx context.Context, claims *domain.Claims, id string, changes domain.MobileChanges) error
	Delete(ctx context.Context, claims *domain.Claims, id string) error
}
