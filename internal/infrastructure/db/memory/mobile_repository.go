package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mobilemart/marketplace/internal/core/domain"
	"github.com/mobilemart/marketplace/internal/core/ports"
)

type MobileRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Mobile
	order []string
}

func NewMobileRepository() *MobileRepository {
	return &MobileRepository{items: make(map[string]*domain.Mobile)}
}

func (r *MobileRepository) Create(_ context.Context, m *domain.Mobile) (*domain.Mobile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *m
	stored.ID = primitive.NewObjectID().Hex()
	r.items[stored.ID] = &stored
	r.order = append(r.order, stored.ID)

	out := stored
	return &out, nil
}

func (r *MobileRepository) FindByID(_ context.Context, id string) (*domain.Mobile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrMobileNotFound
	}
	out := *m
	return &out, nil
}

// List matches search case-insensitively as a literal substring of brand or
// model and orders by price, ties broken by insertion order.
func (r *MobileRepository) List(_ context.Context, filter ports.MobileFilter) ([]*domain.Mobile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(filter.Search)
	items := make([]*domain.Mobile, 0)
	for _, id := range r.order {
		m, ok := r.items[id]
		if !ok {
			continue
		}
		if filter.OwnerID != "" && m.UserID != filter.OwnerID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(m.Brand), needle) &&
			!strings.Contains(strings.ToLower(m.Model), needle) {
			continue
		}
		out := *m
		items = append(items, &out)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if filter.Sort == domain.SortPriceDesc {
			return items[i].MobilePrice > items[j].MobilePrice
		}
		return items[i].MobilePrice < items[j].MobilePrice
	})
	return items, nil
}

func (r *MobileRepository) Update(_ context.Context, id string, c domain.MobileChanges) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[id]
	if !ok {
		return domain.ErrMobileNotFound
	}
	if c.Brand != nil {
		m.Brand = *c.Brand
	}
	if c.Model != nil {
		m.Model = *c.Model
	}
	if c.Description != nil {
		m.Description = *c.Description
	}
	if c.MobilePrice != nil {
		m.MobilePrice = *c.MobilePrice
	}
	if c.AvailableQuantity != nil {
		m.AvailableQuantity = *c.AvailableQuantity
	}
	return nil
}

func (r *MobileRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrMobileNotFound
	}
	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
