package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"hrms-auth/app/domain"
	"hrms-auth/app/port"
)

// DirectoryRepository implements port.TenantDirectory against the
// platform directory database. The request path only reads it.
type DirectoryRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewDirectoryRepository creates a new tenant directory repository
func NewDirectoryRepository(db DatabaseIface, logger *slog.Logger) port.TenantDirectory {
	return &DirectoryRepository{
		db:     db,
		logger: logger.With("component", "directory_repository"),
	}
}

// Lookup resolves a tenant code to its directory record. Only active
// records resolve; provisioning, suspended and deleted tenants yield
// domain.ErrTenantNotFound for routing purposes.
func (r *DirectoryRepository) Lookup(ctx context.Context, code string) (*domain.Tenant, error) {
	query := `
		SELECT id, code, name, database_name, status, created_at, updated_at, deleted_at
		FROM tenants
		WHERE code = $1 AND status = $2 AND deleted_at IS NULL`

	var tenant domain.Tenant
	err := r.db.QueryRow(ctx, query, code, domain.TenantStatusActive).Scan(
		&tenant.ID,
		&tenant.Code,
		&tenant.Name,
		&tenant.DatabaseName,
		&tenant.Status,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
		&tenant.DeletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}
		r.logger.Error("failed to look up tenant", "code", code, "error", err)
		return nil, fmt.Errorf("failed to look up tenant: %w", err)
	}

	return &tenant, nil
}

// List returns all non-deleted directory records, newest first
func (r *DirectoryRepository) List(ctx context.Context) ([]*domain.Tenant, error) {
	query := `
		SELECT id, code, name, database_name, status, created_at, updated_at, deleted_at
		FROM tenants
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("failed to list tenants", "error", err)
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*domain.Tenant
	for rows.Next() {
		var tenant domain.Tenant
		err := rows.Scan(
			&tenant.ID,
			&tenant.Code,
			&tenant.Name,
			&tenant.DatabaseName,
			&tenant.Status,
			&tenant.CreatedAt,
			&tenant.UpdatedAt,
			&tenant.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, &tenant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenants: %w", err)
	}

	return tenants, nil
}
