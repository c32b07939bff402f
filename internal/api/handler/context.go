package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mobilemart/marketplace/internal/core/domain"
)

// ctxClaims returns the claims the Auth middleware attached to the request.
// Handlers behind Auth always have them; a nil result means a routing mistake
// and is reported as an authentication failure.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims := domain.ClaimsFromContext(c.Request().Context())
	if claims == nil {
		return nil, domain.ErrAuthFailed
	}
	return claims, nil
}
