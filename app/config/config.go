package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the service
type Config struct {
	// Server
	Port     string
	Host     string
	LogLevel string

	// Directory database (platform-level tenant registry)
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseSSLMode  string

	// Tenant databases live on the same server as the directory; the
	// pattern is applied to the directory record's database name.
	TenantDatabasePattern string

	// Access tokens
	JWTSecret      string
	JWTIssuer      string
	JWTAudience    string
	AccessTokenTTL time.Duration

	// Refresh tokens
	RefreshTokenTTL time.Duration

	// Credentials
	PasswordHashSecret string
	MaxFailedLogins    int
	LockoutDuration    time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{}

	// Server configuration
	config.Port = getEnvOrDefault("PORT", "9500")
	config.Host = getEnvOrDefault("HOST", "0.0.0.0")
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	// Directory database configuration
	config.DatabaseHost = getEnvOrDefault("DB_HOST", "directory-postgres")
	config.DatabasePort = getEnvOrDefault("DB_PORT", "5432")
	config.DatabaseName = getEnvOrDefault("DB_NAME", "tenant_directory")
	config.DatabaseUser = getEnvOrDefault("DB_USER", "hrms_user")
	config.DatabasePassword = os.Getenv("DB_PASSWORD")
	if config.DatabasePassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	config.DatabaseSSLMode = getEnvOrDefault("DB_SSL_MODE", "require")

	config.TenantDatabasePattern = getEnvOrDefault("TENANT_DB_PATTERN", "%s")

	// Access token configuration
	config.JWTSecret = os.Getenv("JWT_SECRET")
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	config.JWTIssuer = getEnvOrDefault("JWT_ISSUER", "hrms-auth")
	config.JWTAudience = getEnvOrDefault("JWT_AUDIENCE", "hrms-api")

	var err error
	accessTTLStr := getEnvOrDefault("ACCESS_TOKEN_TTL", "15m")
	config.AccessTokenTTL, err = time.ParseDuration(accessTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_TTL: %w", err)
	}

	refreshTTLStr := getEnvOrDefault("REFRESH_TOKEN_TTL", "720h")
	config.RefreshTokenTTL, err = time.ParseDuration(refreshTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_TOKEN_TTL: %w", err)
	}

	// Credential configuration
	config.PasswordHashSecret = os.Getenv("PASSWORD_HASH_SECRET")
	if config.PasswordHashSecret == "" {
		return nil, fmt.Errorf("PASSWORD_HASH_SECRET is required")
	}

	config.MaxFailedLogins, err = getIntEnv("AUTH_MAX_FAILED_LOGINS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_MAX_FAILED_LOGINS: %w", err)
	}

	lockoutStr := getEnvOrDefault("AUTH_LOCKOUT_DURATION", "15m")
	config.LockoutDuration, err = time.ParseDuration(lockoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_LOCKOUT_DURATION: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if !strings.Contains(c.TenantDatabasePattern, "%s") {
		return fmt.Errorf("TENANT_DB_PATTERN must contain %%s: %s", c.TenantDatabasePattern)
	}

	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters, got: %d", len(c.JWTSecret))
	}

	if len(c.PasswordHashSecret) < 32 {
		return fmt.Errorf("password hash secret must be at least 32 characters, got: %d", len(c.PasswordHashSecret))
	}

	if c.AccessTokenTTL < time.Minute {
		return fmt.Errorf("access token lifetime must be at least 1 minute, got: %v", c.AccessTokenTTL)
	}

	if c.RefreshTokenTTL <= c.AccessTokenTTL {
		return fmt.Errorf("refresh token lifetime must exceed access token lifetime")
	}

	if c.MaxFailedLogins < 1 {
		return fmt.Errorf("max failed logins must be at least 1, got: %d", c.MaxFailedLogins)
	}

	return nil
}

// TenantDatabaseName applies the tenant database pattern to a directory
// record's database name.
func (c *Config) TenantDatabaseName(name string) string {
	return fmt.Sprintf(c.TenantDatabasePattern, name)
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
