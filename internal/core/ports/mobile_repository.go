package ports

import (
	"context"

	"github.com/mobilemart/marketplace/internal/core/domain"
)

// MobileFilter carries the query parameters for listing mobiles.
// OwnerID is set by the service layer only; it is never copied from a request.
type MobileFilter struct {
	OwnerID string           // empty = whole catalog
	Search  string           // optional: case-insensitive literal match on brand or model
	Sort    domain.SortOrder // price order
}

// MobileRepository defines persistence operations for mobiles.
// Id-addressed methods return domain.ErrMobileNotFound when the id is unknown
// or not a valid document id.
type MobileRepository interface {
	Create(ctx context.Context, m *domain.Mobile) (*domain.Mobile, error)
	FindByID(ctx context.Context, id string) (*domain.Mobile, error)
	List(ctx context.Context, filter MobileFilter) ([]*domain.Mobile, error)
	Update(ctx context.Context, id string, changes domain.MobileChanges) error
	Delete(ctx context.Context, id string) error
}

// CatalogCache stores catalog listings between mutations. Get returns the key
// the lookup resolved to and Set stores under exactly that key, so a listing
// read before an Invalidate never lands under the newer generation. An empty
// key means the filter is not cacheable.
type CatalogCache interface {
	Get(ctx context.Context, filter MobileFilter) (items []*domain.Mobile, key string, hit bool, err error)
	Set(ctx context.Context, key string, items []*domain.Mobile) error
	Invalidate(ctx context.Context) error
}
