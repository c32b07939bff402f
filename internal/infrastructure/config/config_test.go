package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Fatalf("expected 1h ttl, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.StrictAuthz {
		t.Fatalf("expected compatibility mode by default")
	}
	if cfg.Store.Driver != DriverMongo || cfg.Mongo.Database != "mobiledb" {
		t.Fatalf("unexpected store config: %+v %+v", cfg.Store, cfg.Mongo)
	}
	if cfg.Redis.CacheTTL != 30*time.Second {
		t.Fatalf("expected 30s cache ttl, got %v", cfg.Redis.CacheTTL)
	}
	if len(cfg.HTTP.CORSAllowOrigins) != 1 || cfg.HTTP.CORSAllowOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins: %v", cfg.HTTP.CORSAllowOrigins)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "s3cret",
		"TOKEN_TTL":          "15m",
		"STRICT_AUTHZ":       "true",
		"STORE_DRIVER":       "memory",
		"CORS_ALLOW_ORIGINS": "http://a.test,http://b.test",
	}))
	if err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}
	if cfg.Auth.TokenTTL != 15*time.Minute || !cfg.Auth.StrictAuthz {
		t.Fatalf("unexpected auth config: %+v", cfg.Auth)
	}
	if cfg.Store.Driver != DriverMemory {
		t.Fatalf("expected memory driver, got %s", cfg.Store.Driver)
	}
	if len(cfg.HTTP.CORSAllowOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.HTTP.CORSAllowOrigins)
	}
}

func TestLoadWith_Errors(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}

	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"STORE_DRIVER": "postgres",
	}))
	if err == nil || !strings.Contains(err.Error(), "STORE_DRIVER") {
		t.Fatalf("expected STORE_DRIVER error, got %v", err)
	}
}
