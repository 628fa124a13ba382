package di

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"hrms-auth/app/config"
	"hrms-auth/app/driver/postgres"
	"hrms-auth/app/driver/token"
	"hrms-auth/app/port"
	"hrms-auth/app/rest"
	"hrms-auth/app/rest/middleware"
	"hrms-auth/app/schema"
	"hrms-auth/app/usecase"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DirectoryDB *postgres.DB
	TenantPools *postgres.TenantPools
	TokenIssuer *token.JWTIssuer

	// Repositories
	Directory    port.TenantDirectory
	Users        port.UserRepository
	Tokens       port.TokenRepository
	Requisitions port.RequisitionRepository

	// Domain services
	Reconciler  port.SchemaReconciler
	AuthUsecase port.AuthUsecase
	Resolver    *middleware.TenantResolver
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var err error

	container.DirectoryDB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize directory database: %w", err)
	}

	container.TenantPools = postgres.NewTenantPools(cfg, container.DirectoryDB, logger)

	container.TokenIssuer = token.NewJWTIssuer(token.JWTConfig{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.AccessTokenTTL,
	})

	container.Directory = postgres.NewDirectoryRepository(container.DirectoryDB.Pool(), logger)
	container.Users = postgres.NewUserRepository(container.TenantPools, logger)
	container.Tokens = postgres.NewTokenRepository(container.TenantPools, logger)
	container.Requisitions = postgres.NewRequisitionRepository(container.TenantPools, logger)

	container.Reconciler, err = schema.NewReconciler(container.TenantPools, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize schema reconciler: %w", err)
	}

	container.AuthUsecase = usecase.NewAuthUsecase(
		container.Users,
		container.Tokens,
		container.TokenIssuer,
		usecase.NewPasswordHasher(cfg.PasswordHashSecret),
		usecase.Options{
			RefreshTokenTTL: cfg.RefreshTokenTTL,
			MaxFailedLogins: cfg.MaxFailedLogins,
			LockoutDuration: cfg.LockoutDuration,
		},
		logger,
	)

	container.Resolver = middleware.NewTenantResolver(
		container.Directory,
		container.TenantPools,
		container.Reconciler,
		container.TokenIssuer,
		cfg.TenantDatabaseName,
		logger,
	)

	logger.Info("Container initialized with full dependency stack")

	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	routerConfig := rest.RouterConfig{
		Logger:       c.Logger,
		AuthUsecase:  c.AuthUsecase,
		Directory:    c.Directory,
		Requisitions: c.Requisitions,
		Resolver:     c.Resolver,
		DirectoryDB:  c.DirectoryDB.Pool(),
		EnableDebug:  c.Config.LogLevel == "debug",
	}

	return rest.NewRouter(routerConfig)
}

// Close releases every pooled resource
func (c *Container) Close() {
	if c.TenantPools != nil {
		c.TenantPools.Close()
	}
	if c.DirectoryDB != nil {
		c.DirectoryDB.Close()
	}
}
