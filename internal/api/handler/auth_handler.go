package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mobilemart/marketplace/internal/api/metrics"
	"github.com/mobilemart/marketplace/internal/core/domain"
	"github.com/mobilemart/marketplace/internal/core/ports"
)

// InvalidCredentialsMessage is returned with 200 when a login does not match.
const InvalidCredentialsMessage = "Invalid Credentials"

type AuthHandler struct {
	authService ports.AuthService
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

type registerRequest struct {
	FirstName    string `json:"firstName"    validate:"required"`
	LastName     string `json:"lastName"     validate:"required"`
	MobileNumber string `json:"mobileNumber" validate:"required,len=10,number"`
	Email        string `json:"email"        validate:"required,email"`
	Role         string `json:"role"         validate:"required,oneof=buyer seller"`
	Password     string `json:"password"     validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /user [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: err.Error()})
	}

	_, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MobileNumber: req.MobileNumber,
		Email:        req.Email,
		Role:         req.Role,
		Password:     req.Password,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrUserExists) && !errors.Is(err, domain.ErrValidation) {
			h.log.Error().Err(err).Msg("register failed")
		}
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Success"})
}

// Login authenticates a user and returns a bearer token. A non-matching
// credential pair is a 200 with a message, not an error status.
//
// @Summary      Login
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /user/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.JSON(http.StatusOK, messageResponse{Message: InvalidCredentialsMessage})
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token: res.Token,
		User: loginUser{
			ID:       res.User.ID,
			UserName: res.User.DisplayName(),
			Role:     res.User.Role,
			Email:    res.User.Email,
			Phone:    res.User.MobileNumber,
		},
	})
}

// ListUsers returns every registered identity.
//
// @Summary      List users
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      400  {object}  messageResponse
// @Router       /user [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
