package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mobilemart/marketplace/internal/core/domain"
	"github.com/mobilemart/marketplace/internal/core/ports"
)

// MobileService scopes listing operations to the authenticated caller.
//
// Listing "my mobiles" always filters on the caller's id. Id-addressed
// mutations only check existence unless strict is set, in which case the
// stored owner must match the caller.
type MobileService struct {
	repo   ports.MobileRepository
	cache  ports.CatalogCache
	strict bool
	logger zerolog.Logger
}

// NewMobileService returns a MobileService. cache may be nil.
func NewMobileService(repo ports.MobileRepository, cache ports.CatalogCache, strict bool, logger zerolog.Logger) *MobileService {
	return &MobileService{repo: repo, cache: cache, strict: strict, logger: logger}
}

func (s *MobileService) ListCatalog(ctx context.Context, claims *domain.Claims, in ports.CatalogInput) ([]*domain.Mobile, error) {
	if claims == nil {
		return nil, domain.ErrAuthFailed
	}

	filter := ports.MobileFilter{
		Search: strings.TrimSpace(in.Search),
		Sort:   domain.ParseSortOrder(in.Sort),
	}

	var key string
	if s.cache != nil {
		items, k, ok, err := s.cache.Get(ctx, filter)
		if err != nil {
			s.logger.Warn().Err(err).Msg("catalog cache read failed")
		} else if ok {
			return items, nil
		}
		key = k
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	if key != "" {
		if err := s.cache.Set(ctx, key, items); err != nil {
			s.logger.Warn().Err(err).Msg("catalog cache write failed")
		}
	}
	return items, nil
}

// ListOwned returns the caller's own listings. A requested owner that differs
// from the caller is rejected rather than silently honoured.
func (s *MobileService) ListOwned(ctx context.Context, claims *domain.Claims, in ports.ListOwnedInput) ([]*domain.Mobile, error) {
	if claims == nil {
		return nil, domain.ErrAuthFailed
	}
	if in.RequestedOwnerID != "" && in.RequestedOwnerID != claims.UserID {
		s.logger.Warn().
			Str("user_id", claims.UserID).
			Str("requested_owner", in.RequestedOwnerID).
			Msg("owner listing requested for another identity")
		return nil, domain.ErrForbidden
	}

	items, err := s.repo.List(ctx, ports.MobileFilter{
		OwnerID: claims.UserID,
		Search:  strings.TrimSpace(in.Search),
		Sort:    domain.ParseSortOrder(in.Sort),
	})
	if err != nil {
		return nil, fmt.Errorf("list owned: %w", err)
	}
	return items, nil
}

func (s *MobileService) Get(ctx context.Context, claims *domain.Claims, id string) (*domain.Mobile, error) {
	if claims == nil {
		return nil, domain.ErrAuthFailed
	}
	return s.repo.FindByID(ctx, id)
}

func (s *MobileService) Create(ctx context.Context, claims *domain.Claims, in ports.MobileInput) (*domain.Mobile, error) {
	if claims == nil {
		return nil, domain.ErrAuthFailed
	}

	owner := in.UserID
	if s.strict || owner == "" {
		owner = claims.UserID
	}

	m := &domain.Mobile{
		Brand:             strings.TrimSpace(in.Brand),
		Model:             strings.TrimSpace(in.Model),
		Description:       strings.TrimSpace(in.Description),
		MobilePrice:       in.MobilePrice,
		AvailableQuantity: in.AvailableQuantity,
		UserID:            owner,
	}
	if err := validateMobile(m); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create mobile")
		return nil, fmt.Errorf("create mobile: %w", err)
	}

	s.invalidateCatalog(ctx)
	s.logger.Info().Str("mobile_id", created.ID).Str("owner", owner).Msg("mobile added")
	return created, nil
}

func (s *MobileService) Update(ctx context.Context, claims *domain.Claims, id string, changes domain.MobileChanges) error {
	if claims == nil {
		return domain.ErrAuthFailed
	}
	if err := validateChanges(changes); err != nil {
		return err
	}
	if err := s.authorizeMutation(ctx, claims, id); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, changes); err != nil {
		return err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info().Str("mobile_id", id).Str("user_id", claims.UserID).Msg("mobile updated")
	return nil
}

func (s *MobileService) Delete(ctx context.Context, claims *domain.Claims, id string) error {
	if claims == nil {
		return domain.ErrAuthFailed
	}
	if err := s.authorizeMutation(ctx, claims, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info().Str("mobile_id", id).Str("user_id", claims.UserID).Msg("mobile deleted")
	return nil
}

// authorizeMutation is a no-op in compatibility mode: the repository's
// existence check is the only guard there.
func (s *MobileService) authorizeMutation(ctx context.Context, claims *domain.Claims, id string) error {
	if !s.strict {
		return nil
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !m.OwnedBy(claims.UserID) {
		s.logger.Warn().
			Str("mobile_id", id).
			Str("user_id", claims.UserID).
			Msg("mutation of another seller's mobile rejected")
		return domain.ErrForbidden
	}
	return nil
}

func (s *MobileService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}

func validateMobile(m *domain.Mobile) error {
	switch {
	case m.Brand == "":
		return fmt.Errorf("%w: brand is required", domain.ErrValidation)
	case m.Model == "":
		return fmt.Errorf("%w: model is required", domain.ErrValidation)
	case m.Description == "":
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	case m.UserID == "":
		return fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	return validateChanges(domain.MobileChanges{
		MobilePrice:       &m.MobilePrice,
		AvailableQuantity: &m.AvailableQuantity,
	})
}

func validateChanges(c domain.MobileChanges) error {
	if c.Empty() {
		return fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}
	if c.MobilePrice != nil && (*c.MobilePrice < domain.MinMobilePrice || *c.MobilePrice > domain.MaxMobilePrice) {
		return fmt.Errorf("%w: mobilePrice must be between %d and %d",
			domain.ErrValidation, domain.MinMobilePrice, domain.MaxMobilePrice)
	}
	if c.AvailableQuantity != nil && *c.AvailableQuantity < 0 {
		return fmt.Errorf("%w: availableQuantity must not be negative", domain.ErrValidation)
	}
	for name, v := range map[string]*string{"brand": c.Brand, "model": c.Model, "description": c.Description} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return fmt.Errorf("%w: %s must not be empty", domain.ErrValidation, name)
		}
	}
	return nil
}
