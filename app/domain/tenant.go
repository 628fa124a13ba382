package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TenantStatus represents the activation status of a tenant
type TenantStatus string

const (
	TenantStatusProvisioning TenantStatus = "provisioning"
	TenantStatusActive       TenantStatus = "active"
	TenantStatusSuspended    TenantStatus = "suspended"
	TenantStatusDeleted      TenantStatus = "deleted"
)

// Tenant represents a directory record in the multi-tenant system.
// The directory maps a stable tenant code to the tenant's isolated
// backing database and its activation status.
type Tenant struct {
	ID           uuid.UUID    `json:"id"`
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	DatabaseName string       `json:"database_name"`
	Status       TenantStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	DeletedAt    *time.Time   `json:"deleted_at,omitempty"`
}

// codeRegex validates tenant codes (lowercase, alphanumeric, hyphens only)
var codeRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// NewTenant creates a new directory record with validation
func NewTenant(code, name, databaseName string) (*Tenant, error) {
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}

	if len(code) > 50 {
		return nil, fmt.Errorf("code must be 50 characters or less")
	}

	if !codeRegex.MatchString(code) {
		return nil, fmt.Errorf("code must contain only lowercase letters, numbers, and hyphens")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if databaseName == "" {
		return nil, fmt.Errorf("database name is required")
	}

	now := time.Now()

	tenant := &Tenant{
		ID:           uuid.New(),
		Code:         code,
		Name:         name,
		DatabaseName: databaseName,
		Status:       TenantStatusProvisioning,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return tenant, nil
}

// Suspend suspends the tenant
func (t *Tenant) Suspend() {
	t.Status = TenantStatusSuspended
	t.UpdatedAt = time.Now()
}

// Activate activates the tenant
func (t *Tenant) Activate() {
	t.Status = TenantStatusActive
	t.UpdatedAt = time.Now()
}

// SoftDelete marks the tenant as deleted
func (t *Tenant) SoftDelete() {
	now := time.Now()
	t.DeletedAt = &now
	t.Status = TenantStatusDeleted
	t.UpdatedAt = now
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// IsRoutable returns true if requests may be routed to the tenant's
// backing database. Only active tenants are routable; provisioning,
// suspended and deleted records resolve as not found for routing even
// though the directory row exists.
func (t *Tenant) IsRoutable() bool {
	return t.Status == TenantStatusActive && t.DeletedAt == nil
}
