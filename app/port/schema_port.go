package port

//go:generate mockgen -source=schema_port.go -destination=../mocks/mock_schema_port.go -package=mocks

import "context"

// SchemaReconciler applies idempotent, additive structural patches to
// the backing database of the tenant resolved in ctx.
type SchemaReconciler interface {
	// ApplyBaseline runs the versionless baseline patch set. It returns
	// an error only when the backing database itself is missing
	// (domain.ErrSchemaFatal); all other patch failures are logged and
	// swallowed so unrelated reconciliation issues never block
	// unrelated functionality.
	ApplyBaseline(ctx context.Context) error

	// EnsureFeature creates a feature area's structures when they are
	// entirely absent. Concurrent identical creates are tolerated:
	// "already exists" counts as success.
	EnsureFeature(ctx context.Context, feature string) error
}
