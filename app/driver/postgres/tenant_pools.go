package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrms-auth/app/config"
	"hrms-auth/app/domain"
	"hrms-auth/app/schema"
)

// TenantStoreSource hands out a query executor for the backing
// database of the tenant resolved in ctx. Repositories depend on this
// instead of a concrete pool so tests can substitute a mock.
type TenantStoreSource interface {
	Executor(ctx context.Context) (DatabaseIface, error)
}

// TenantPools manages one connection pool per tenant backing database.
// Pools are created lazily on first use and cached by database name.
// The cache is the only shared mutable structure on the request path;
// the resolved tenant itself always travels in the request context.
type TenantPools struct {
	cfg       *config.Config
	directory *DB
	logger    *slog.Logger

	mu    sync.RWMutex
	pools map[string]*pgxpool.Pool
}

// NewTenantPools creates a tenant pool manager
func NewTenantPools(cfg *config.Config, directory *DB, logger *slog.Logger) *TenantPools {
	return &TenantPools{
		cfg:       cfg,
		directory: directory,
		logger:    logger.With("component", "tenant_pools"),
		pools:     make(map[string]*pgxpool.Pool),
	}
}

// StoreExists checks the platform-wide catalog for a named database.
// The query runs against the directory pool because the tenant's own
// database may never have been provisioned.
func (p *TenantPools) StoreExists(ctx context.Context, databaseName string) (bool, error) {
	var exists bool
	err := p.directory.Pool().
		QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", databaseName).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check database existence: %w", err)
	}
	return exists, nil
}

// Pool returns the cached connection pool for a tenant database,
// creating it on first use.
func (p *TenantPools) Pool(ctx context.Context, databaseName string) (*pgxpool.Pool, error) {
	p.mu.RLock()
	pool, ok := p.pools[databaseName]
	p.mu.RUnlock()
	if ok {
		return pool, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Another request may have created the pool while we waited.
	if pool, ok := p.pools[databaseName]; ok {
		return pool, nil
	}

	// databaseName arrives fully resolved; the deployment pattern was
	// applied when the tenant was resolved.
	poolConfig, err := pgxpool.ParseConfig(buildDSN(p.cfg, databaseName))
	if err != nil {
		return nil, fmt.Errorf("failed to parse tenant database config: %w", err)
	}

	poolConfig.MaxConns = tenantMaxConns
	poolConfig.MinConns = tenantMinConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err = pgxpool.NewWithConfig(pingCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create tenant pool: %w", err)
	}

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		if IsDatabaseMissing(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSchemaFatal, databaseName)
		}
		return nil, fmt.Errorf("failed to ping tenant database %s: %w", databaseName, err)
	}

	p.logger.Info("tenant database pool created", "database", databaseName)
	p.pools[databaseName] = pool

	return pool, nil
}

// Executor returns a query executor for the tenant resolved in ctx
func (p *TenantPools) Executor(ctx context.Context) (DatabaseIface, error) {
	tc, ok := domain.TenantFrom(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant resolved in request context")
	}
	return p.Pool(ctx, tc.DatabaseName)
}

// Store implements schema.StoreProvider for the reconciler
func (p *TenantPools) Store(ctx context.Context) (schema.Executor, error) {
	return p.Executor(ctx)
}

// Close closes all tenant pools
func (p *TenantPools) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for name, pool := range p.pools {
		pool.Close()
		delete(p.pools, name)
	}
	p.logger.Info("tenant database pools closed")
}
