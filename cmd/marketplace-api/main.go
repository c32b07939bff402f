package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mobilemart/marketplace/internal/api"
	"github.com/mobilemart/marketplace/internal/core/ports"
	"github.com/mobilemart/marketplace/internal/core/service"
	"github.com/mobilemart/marketplace/internal/infrastructure/config"
	"github.com/mobilemart/marketplace/internal/infrastructure/db/memory"
	mongodb "github.com/mobilemart/marketplace/internal/infrastructure/db/mongo"
	redisdb "github.com/mobilemart/marketplace/internal/infrastructure/db/redis"
	"github.com/mobilemart/marketplace/internal/infrastructure/http/handlers"
	"github.com/mobilemart/marketplace/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "marketplace-api",
	})

	var (
		users   ports.AuthRepository
		mobiles ports.MobileRepository
		checks  []handlers.Check
		cleanup []func(context.Context)
	)

	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		users = memory.NewUserRepository()
		mobiles = memory.NewMobileRepository()
	default:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.Mongo.Timeout,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		cleanup = append(cleanup, func(ctx context.Context) { _ = client.Disconnect(ctx) })
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("failed to create mongodb indexes")
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

		users = mongodb.NewUserRepository(db)
		mobiles = mongodb.NewMobileRepository(db)
		checks = append(checks, handlers.MongoCheck(db))
	}

	var cache ports.CatalogCache
	if cfg.Redis.Addr != "" {
		catalog, rdb, err := redisdb.OpenCatalogCache(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			CacheTTL: cfg.Redis.CacheTTL,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, catalog cache disabled")
		} else {
			cleanup = append(cleanup, func(context.Context) { _ = rdb.Close() })
			cache = catalog
			checks = append(checks, handlers.RedisCheck(rdb))
			log.Info().Str("addr", cfg.Redis.Addr).Msg("catalog cache enabled")
		}
	}

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(users, tokens, logger.Component("auth"))
	mobileService := service.NewMobileService(mobiles, cache, cfg.Auth.StrictAuthz, logger.Component("mobile"))

	e := api.NewRouter(api.Dependencies{
		AuthService:      authService,
		MobileService:    mobileService,
		Tokens:           tokens,
		HealthChecks:     checks,
		Logger:           log,
		StrictAuthz:      cfg.Auth.StrictAuthz,
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		BodyLimit:        cfg.HTTP.BodyLimit,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Bool("strict_authz", cfg.Auth.StrictAuthz).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	waitForShutdown(srv, cleanup, log)
}

func waitForShutdown(srv *http.Server, cleanup []func(context.Context), log zerolog.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info().Msg("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	for _, fn := range cleanup {
		fn(ctx)
	}
	log.Info().Msg("shutdown complete")
}
