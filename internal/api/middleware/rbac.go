package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mobilemart/marketplace/internal/api/metrics"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"message": AuthFailedMessage})
			}
			if !claims.HasRole(allowedRoles...) {
				metrics.RoleDenialsTotal.WithLabelValues(claims.Role).Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"message": "Forbidden"})
			}
			return next(c)
		}
	}
}
