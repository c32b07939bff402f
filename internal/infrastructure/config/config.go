package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
	HTTP  HTTPConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=1h"`
	// StrictAuthz enables the owner check on id-addressed mutations and the
	// seller role check on seller routes.
	StrictAuthz bool `env:"STRICT_AUTHZ, default=false"`
}

type StoreConfig struct {
	Driver string `env:"STORE_DRIVER, default=mongo"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,  default=mobiledb"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	// Addr may be empty to run without the catalog cache.
	Addr     string        `env:"REDIS_ADDR, default=localhost:6379"`
	DB       int           `env:"REDIS_DB,   default=0"`
	CacheTTL time.Duration `env:"CATALOG_CACHE_TTL, default=30s"`
}

type HTTPConfig struct {
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS, default=*"`
	BodyLimit        string   `env:"HTTP_BODY_LIMIT, default=1M"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads a .env file when one exists, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}
