package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mobilemart/marketplace/internal/core/domain"
	"github.com/mobilemart/marketplace/internal/core/ports"
)

const (
	defaultCatalogTTL    = 30 * time.Second
	catalogGenerationKey = "catalog:gen"
)

// CatalogCache stores catalog listings keyed by search term and sort order.
// Invalidate bumps a generation counter so stale keys are never read again;
// they expire on their own TTL.
// Key format: catalog:<generation>:<sort>:<lowercased search>
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

// Get looks filter up under the current generation and returns the key it
// used. Owner-scoped filters are never cached and yield an empty key.
func (c *CatalogCache) Get(ctx context.Context, filter ports.MobileFilter) ([]*domain.Mobile, string, bool, error) {
	if filter.OwnerID != "" {
		return nil, "", false, nil
	}

	key, err := c.key(ctx, filter)
	if err != nil {
		return nil, "", false, err
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, key, false, nil
	}
	if err != nil {
		return nil, "", false, fmt.Errorf("catalog cache get: %w", err)
	}

	var items []*domain.Mobile
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, key, false, fmt.Errorf("catalog cache decode: %w", err)
	}
	return items, key, true, nil
}

// Set stores items under a key returned by Get. The key is not re-resolved:
// if Invalidate ran in between, the entry sits under the old generation and
// is never read.
func (c *CatalogCache) Set(ctx context.Context, key string, items []*domain.Mobile) error {
	if key == "" {
		return nil
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("catalog cache set: %w", err)
	}
	return nil
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, catalogGenerationKey).Err(); err != nil {
		return fmt.Errorf("catalog cache invalidate: %w", err)
	}
	return nil
}

func (c *CatalogCache) key(ctx context.Context, filter ports.MobileFilter) (string, error) {
	gen, err := c.client.Get(ctx, catalogGenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("catalog cache generation: %w", err)
	}
	return catalogKey(gen, filter), nil
}

func catalogKey(gen int64, filter ports.MobileFilter) string {
	return fmt.Sprintf("catalog:%d:%d:%s", gen, int(filter.Sort), strings.ToLower(filter.Search))
}
