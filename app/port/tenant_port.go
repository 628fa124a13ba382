package port

//go:generate mockgen -source=tenant_port.go -destination=../mocks/mock_tenant_port.go -package=mocks

import (
	"context"

	"hrms-auth/app/domain"
)

// TenantDirectory defines read access to the platform-level tenant
// registry. The request path only ever reads the directory; record
// creation belongs to the registration workflow, which lives elsewhere.
type TenantDirectory interface {
	// Lookup resolves a tenant code to its directory record. Records
	// whose status is not active resolve as domain.ErrTenantNotFound
	// for routing purposes.
	Lookup(ctx context.Context, code string) (*domain.Tenant, error)

	// List returns all non-deleted directory records.
	List(ctx context.Context) ([]*domain.Tenant, error)
}

// StoreCatalog verifies that a named backing database physically exists
// in the platform-wide catalog. The check runs against the directory
// store, not the tenant's own database, which may never have been
// provisioned.
type StoreCatalog interface {
	StoreExists(ctx context.Context, databaseName string) (bool, error)
}
