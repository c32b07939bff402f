package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout = 5 * time.Second
	clientName     = "marketplace-catalog"
)

// Config holds the Redis settings of the catalog cache.
type Config struct {
	Addr     string
	DB       int
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Connect dials Redis and pings it. The connection is tagged with a client
// name so catalog traffic is identifiable in CLIENT LIST.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		ClientName:   clientName,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// OpenCatalogCache connects and returns the cache together with its client,
// which the caller closes on shutdown and may use for readiness checks.
func OpenCatalogCache(ctx context.Context, cfg Config) (*CatalogCache, *redis.Client, error) {
	client, err := Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return NewCatalogCache(client, cfg.CacheTTL), client, nil
}
