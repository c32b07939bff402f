// Package api wires the HTTP surface of the marketplace.
//
// @title                       Mobile Marketplace API
// @version                     1.0
// @description                 Sellers list mobile phones; buyers browse them.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/mobilemart/marketplace/docs"
	"github.com/mobilemart/marketplace/internal/api/handler"
	"github.com/mobilemart/marketplace/internal/api/middleware"
	"github.com/mobilemart/marketplace/internal/core/domain"
	"github.com/mobilemart/marketplace/internal/core/ports"
	"github.com/mobilemart/marketplace/internal/infrastructure/http/handlers"
)

const metricsSubsystem = "http"

// Dependencies collects everything the router needs.
type Dependencies struct {
	AuthService   ports.AuthService
	MobileService ports.MobileService
	Tokens        ports.TokenValidator
	HealthChecks  []handlers.Check
	Logger        zerolog.Logger

	// StrictAuthz restricts seller routes to the seller role.
	StrictAuthz      bool
	CORSAllowOrigins []string
	BodyLimit        string

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.CORSAllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))
	if deps.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(deps.BodyLimit))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Ops (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.HealthChecks...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authMW := middleware.Auth(deps.Tokens, deps.Logger)
	var sellerOnly []echo.MiddlewareFunc
	if deps.StrictAuthz {
		sellerOnly = append(sellerOnly, middleware.RBAC(domain.RoleSeller))
	}

	// --- Identity ---
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.Logger)
	user := e.Group("/user")
	user.POST("/login", authHandler.Login)
	user.POST("", authHandler.Register)
	user.GET("", authHandler.ListUsers, authMW)

	// --- Mobiles (all behind Auth) ---
	mobileHandler := handler.NewMobileHandler(deps.MobileService)
	mobile := e.Group("/mobile", authMW)
	mobile.POST("", mobileHandler.Catalog)
	mobile.POST("/seller", mobileHandler.SellerListing, sellerOnly...)
	mobile.POST("/add", mobileHandler.Create, sellerOnly...)
	mobile.GET("/:id", mobileHandler.Get)
	mobile.PUT("/:id", mobileHandler.Update, sellerOnly...)
	mobile.DELETE("/:id", mobileHandler.Delete, sellerOnly...)

	return e
}
