package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"hrms-auth/app/domain"
	"hrms-auth/app/port"
	"hrms-auth/app/utils/validator"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authUsecase port.AuthUsecase
	validator   *validator.Validator
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase port.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator.New(),
		logger:      logger,
	}
}

// LoginRequest is the login payload. The tenantCode field doubles as
// the primary tenant source for the resolution middleware.
type LoginRequest struct {
	TenantCode string `json:"tenantCode" validate:"omitempty,tenant_code"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
}

// RefreshRequest carries the opaque refresh token to exchange
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LoginResponse is returned on successful login or refresh
type LoginResponse struct {
	User         *UserResponse `json:"user,omitempty"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresAt    time.Time     `json:"expires_at"`
}

// UserResponse is the public view of a credential record
type UserResponse struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"`
}

// VerifyResponse is returned by the token verification endpoint
type VerifyResponse struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	TenantCode string    `json:"tenant_code"`
	Roles      []string  `json:"roles"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ErrorResponse is the uniform error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// Login authenticates a user against the resolved tenant's store
// @Summary Login with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	ctx := c.Request().Context()
	user, pair, err := h.authUsecase.Login(ctx, req.Email, req.Password)
	if err != nil {
		return h.loginError(c, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		User: &UserResponse{
			ID:       user.ID.String(),
			Email:    user.Email,
			FullName: user.FullName,
			Roles:    user.Roles,
		},
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	})
}

// Refresh exchanges a refresh token for a new token pair
// @Summary Rotate a refresh token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	ctx := c.Request().Context()
	pair, err := h.authUsecase.Refresh(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired refresh token"})
		}
		h.logger.Error("refresh failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}

	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	})
}

// Verify validates a bearer access token for sibling services
// @Summary Verify an access token
// @Tags authentication
// @Produce json
// @Success 200 {object} VerifyResponse
// @Failure 401 {object} ErrorResponse
// @Router /v1/auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	auth := c.Request().Header.Get("Authorization")
	tokenStr := strings.TrimPrefix(auth, "Bearer ")
	if tokenStr == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}

	claims, err := h.authUsecase.Verify(tokenStr)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
	}

	return c.JSON(http.StatusOK, VerifyResponse{
		UserID:     claims.UserID,
		Email:      claims.Email,
		TenantCode: claims.TenantCode,
		Roles:      claims.Roles,
		ExpiresAt:  claims.ExpiresAt,
	})
}

// loginError collapses every credential failure into one generic 401
// so the response never reveals whether the account exists, is
// inactive, or is locked. The distinction lives in the logs only.
func (h *AuthHandler) loginError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrAccountLocked),
		errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	case errors.Is(err, domain.ErrMissingTenant):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "tenant code is required"})
	default:
		h.logger.Error("login failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
