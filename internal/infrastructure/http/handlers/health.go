package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const readinessTimeout = 3 * time.Second

// HealthHandler serves the liveness probe on GET /health.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Check is a named dependency probe.
type Check struct {
	Name string
	// Optional checks report their status but never fail readiness.
	Optional bool
	Ping     func(ctx context.Context) error
}

// MongoCheck pings the database behind db.
func MongoCheck(db *mongo.Database) Check {
	return Check{Name: "mongodb", Ping: func(ctx context.Context) error {
		return db.Client().Ping(ctx, nil)
	}}
}

// RedisCheck pings rdb. The catalog cache is optional, so a failing Redis
// degrades the report without failing readiness.
func RedisCheck(rdb *redis.Client) Check {
	return Check{Name: "redis", Optional: true, Ping: func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}}
}

// HealthDependenciesHandler serves the readiness probe on GET /health/ready.
type HealthDependenciesHandler struct {
	checks []Check
}

func NewHealthDependenciesHandler(checks ...Check) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{checks: checks}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness godoc
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200 {object} readinessResponse
// @Failure      503 {object} readinessResponse
// @Router       /health/ready [get]
func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checks))
	ready, degraded := true, false

	checks := append([]Check(nil), h.checks...)
	sort.Slice(checks, func(i, j int) bool { return checks[i].Name < checks[j].Name })

	for _, chk := range checks {
		if err := chk.Ping(ctx); err != nil {
			deps[chk.Name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			degraded = true
			if !chk.Optional {
				ready = false
			}
			continue
		}
		deps[chk.Name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	switch {
	case !ready:
		status = "unavailable"
		httpStatus = http.StatusServiceUnavailable
	case degraded:
		status = "degraded"
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
