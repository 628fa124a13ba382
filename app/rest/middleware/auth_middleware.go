package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"hrms-auth/app/domain"
	"hrms-auth/app/port"
)

// AuthMiddleware guards routes with verified access tokens
type AuthMiddleware struct {
	authUsecase port.AuthUsecase
	logger      *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authUsecase port.AuthUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authUsecase: authUsecase,
		logger:      logger,
	}
}

// RequireAuth rejects requests without a valid bearer access token
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr := extractBearerToken(c)
			if tokenStr == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			claims, err := m.authUsecase.Verify(tokenStr)
			if err != nil {
				m.logger.Debug("access token rejected", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			setClaims(c, claims)
			return next(c)
		}
	}
}

// RequireRole requires a verified token carrying a specific role
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("claims").(*domain.AccessClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			for _, role := range claims.Roles {
				if role == requiredRole {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "insufficient privileges")
		}
	}
}

// RequireAdmin requires the admin role
func (m *AuthMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return m.RequireRole("admin")
}

func setClaims(c echo.Context, claims *domain.AccessClaims) {
	c.Set("claims", claims)
	c.Set("user_id", claims.UserID)
	c.Set("user_email", claims.Email)
	c.Set("tenant_code", claims.TenantCode)
}

// extractBearerToken reads the access token from the Authorization
// header. Raw tokens without the Bearer prefix are accepted for API
// clients.
func extractBearerToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return auth
}
