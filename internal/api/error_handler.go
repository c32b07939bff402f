package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mobilemart/marketplace/internal/api/middleware"
	"github.com/mobilemart/marketplace/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors with the request path.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrAuthFailed):
		return http.StatusBadRequest, middleware.AuthFailedMessage
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, domain.ErrMobileNotFound):
		return http.StatusNotFound, "Mobile not found"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, err.Error()
}
