package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"hrms-auth/app/port"
	"hrms-auth/app/rest/handlers"
	custommw "hrms-auth/app/rest/middleware"
	apperrors "hrms-auth/app/utils/errors"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger       *slog.Logger
	AuthUsecase  port.AuthUsecase
	Directory    port.TenantDirectory
	Requisitions port.RequisitionRepository
	Resolver     *custommw.TenantResolver
	DirectoryDB  handlers.Pinger
	EnableDebug  bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.Debug = config.EnableDebug
	e.HTTPErrorHandler = newErrorHandler(config.Logger)

	authHandler := handlers.NewAuthHandler(config.AuthUsecase, config.Logger)
	tenantHandler := handlers.NewTenantHandler(config.Directory, config.Logger)
	recruitmentHandler := handlers.NewRecruitmentHandler(config.Requisitions, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.DirectoryDB, config.Logger)

	authMiddleware := custommw.NewAuthMiddleware(config.AuthUsecase, config.Logger)
	rateLimiter := custommw.NewRateLimiter()

	// Global middleware. The tenant resolver runs after CORS so
	// preflight requests short-circuit before touching any store.
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.DefaultCORS())
	e.Use(custommw.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())
	e.Use(config.Resolver.Middleware())

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}, error=${error}\n",
	}))

	v1 := e.Group("/v1")

	// Health endpoints (tenant-exempt)
	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)
	v1.GET("/live", healthHandler.LivenessCheck)

	// Authentication endpoints
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Token verification endpoint (for sibling services)
	auth.GET("/verify", authHandler.Verify)

	// Tenant directory admin endpoints
	tenants := v1.Group("/tenants")
	tenants.Use(authMiddleware.RequireAuth())
	tenants.Use(authMiddleware.RequireAdmin())
	tenants.GET("", tenantHandler.ListTenants)
	tenants.GET("/:code", tenantHandler.GetTenant)

	// Recruitment endpoints; reaching them triggers the feature's
	// schema reconciliation in the resolver.
	recruitment := v1.Group("/recruitment")
	recruitment.Use(authMiddleware.RequireAuth())
	recruitment.GET("/requisitions", recruitmentHandler.ListRequisitions)

	return e
}

// newErrorHandler converts middleware and handler errors to the
// uniform {"error": ...} body. AppError values keep their mapped
// status; anything unrecognized is a 500 with no internals leaked.
func newErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"

		var appErr *apperrors.AppError
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = appErr.StatusCode
			message = appErr.Message
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		default:
			logger.Error("unhandled request error",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"error", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, handlers.ErrorResponse{Error: message})
	}
}
