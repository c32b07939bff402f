// Package config loads the settings of the marketplace command-line client.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const sessionDirName = "marketplace"

type Config struct {
	ServerURL   string        `env:"MARKET_SERVER_URL,   default=http://localhost:8080"`
	SessionDir  string        `env:"MARKET_SESSION_DIR"`
	HTTPTimeout time.Duration `env:"MARKET_HTTP_TIMEOUT, default=15s"`
	LogLevel    string        `env:"MARKET_LOG_LEVEL,    default=warn"`
}

// Load reads a .env file when one exists, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l and resolves the session directory.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.SessionDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve session dir: %w", err)
		}
		cfg.SessionDir = filepath.Join(base, sessionDirName)
	}
	return &cfg, nil
}
