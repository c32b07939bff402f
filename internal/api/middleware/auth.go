package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mobilemart/marketplace/internal/api/metrics"
	"github.com/mobilemart/marketplace/internal/core/domain"
	"github.com/mobilemart/marketplace/internal/core/ports"
)

const claimsKey = "claims"

// AuthFailedMessage is the only body a rejected request ever sees.
const AuthFailedMessage = "Authentication failed"

// Auth validates the bearer token and injects the claims into both the echo
// context and the request context. The Authorization header may carry
// "Bearer <token>" or the bare token.
func Auth(tokens ports.TokenValidator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c.Request().Header.Get(echo.HeaderAuthorization))

			claims, err := tokens.Validate(raw)
			if err != nil {
				metrics.TokenRejectionsTotal.Inc()
				log.Debug().Err(err).Str("path", c.Path()).Msg("token rejected")
				return c.JSON(http.StatusBadRequest, map[string]string{"message": AuthFailedMessage})
			}

			c.Set(claimsKey, claims)
			c.SetRequest(c.Request().WithContext(domain.WithClaims(c.Request().Context(), claims)))

			return next(c)
		}
	}
}

// ClaimsFrom returns the claims set by Auth, or nil.
func ClaimsFrom(c echo.Context) *domain.Claims {
	claims, _ := c.Get(claimsKey).(*domain.Claims)
	return claims
}

func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
