package domain

import "errors"

// Tenant resolution errors
var (
	ErrMissingTenant     = errors.New("missing tenant code")
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrStoreInconsistent = errors.New("tenant database does not exist")
)

// Schema reconciliation errors
var (
	// ErrSchemaFatal marks a reconciliation failure caused by the
	// backing database itself being absent. Any other patch failure is
	// best-effort and never propagates to the caller.
	ErrSchemaFatal = errors.New("schema reconciliation failed: database missing")
)

// Authentication errors. All of these surface externally as one
// generic unauthorized message; they stay distinct for logging.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrAccountLocked      = errors.New("account locked")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// General errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)
