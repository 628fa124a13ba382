package schema

import (
	_ "embed"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"hrms-auth/app/domain"
)

//go:embed patches/patches.yaml
var patchManifest []byte

// Postgres error codes the reconciler classifies instead of matching
// message text.
const (
	pgInvalidCatalogName = "3D000" // database does not exist
	pgDuplicateColumn    = "42701"
	pgDuplicateTable     = "42P07"
	pgDuplicateObject    = "42710"
)

// Executor is the slice of a connection pool the reconciler needs.
// Tests mock this instead of a live store.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// StoreProvider hands out an executor for the backing database of the
// tenant resolved in ctx. Providers signal a physically missing
// database by wrapping domain.ErrSchemaFatal.
type StoreProvider interface {
	Store(ctx context.Context) (Executor, error)
}

// Reconciler lazily converges tenant databases toward the current
// expected shape. All patches are additive; repeated application in
// any order yields the same structural state.
type Reconciler struct {
	stores   StoreProvider
	manifest *PatchManifest
	logger   *slog.Logger
}

// NewReconciler creates a reconciler from the embedded patch manifest
func NewReconciler(stores StoreProvider, logger *slog.Logger) (*Reconciler, error) {
	manifest, err := ParseManifest(patchManifest)
	if err != nil {
		return nil, fmt.Errorf("failed to load patch manifest: %w", err)
	}

	return &Reconciler{
		stores:   stores,
		manifest: manifest,
		logger:   logger.With("component", "schema_reconciler"),
	}, nil
}

// NewReconcilerWithManifest creates a reconciler from an explicit
// manifest (used by tests)
func NewReconcilerWithManifest(stores StoreProvider, manifest *PatchManifest, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		stores:   stores,
		manifest: manifest,
		logger:   logger.With("component", "schema_reconciler"),
	}
}

// ApplyBaseline applies the versionless baseline patch set to the
// resolved tenant's database. A missing database is fatal and aborts
// the request; any other patch failure is logged and swallowed.
func (r *Reconciler) ApplyBaseline(ctx context.Context) error {
	store, err := r.stores.Store(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSchemaFatal) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrSchemaFatal, err)
	}

	for _, op := range r.manifest.Baseline {
		if err := r.apply(ctx, store, op); err != nil {
			return err
		}
	}

	return nil
}

// EnsureFeature creates a feature's structures when its probe table is
// entirely absent. The check-then-create is not atomic against
// concurrent identical requests; duplicate-object errors from the
// losing request count as success.
func (r *Reconciler) EnsureFeature(ctx context.Context, feature string) error {
	patch, ok := r.manifest.Features[feature]
	if !ok {
		return fmt.Errorf("unknown feature %q", feature)
	}

	store, err := r.stores.Store(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSchemaFatal) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrSchemaFatal, err)
	}

	exists, err := r.tableExists(ctx, store, patch.ProbeTable)
	if err != nil {
		if errors.Is(err, domain.ErrSchemaFatal) {
			return err
		}
		r.logger.Warn("feature probe failed, skipping feature patch",
			"feature", feature,
			"probe_table", patch.ProbeTable,
			"error", err)
		return nil
	}

	if exists {
		return nil
	}

	r.logger.Info("creating feature structures",
		"feature", feature,
		"ops", len(patch.Ops))

	for _, op := range patch.Ops {
		if err := r.apply(ctx, store, op); err != nil {
			return err
		}
	}

	return nil
}

// apply executes one op, classifying failures: already-exists is
// success, database-missing is fatal, everything else is a warning.
func (r *Reconciler) apply(ctx context.Context, store Executor, op Op) error {
	stmt, err := op.SQL()
	if err != nil {
		r.logger.Warn("skipping malformed patch op", "table", op.Table, "error", err)
		return nil
	}

	if _, err := store.Exec(ctx, stmt); err != nil {
		switch classify(err) {
		case outcomeConverged:
			return nil
		case outcomeFatal:
			r.logger.Error("backing database missing during patch",
				"table", op.Table,
				"error", err)
			return fmt.Errorf("%w: %v", domain.ErrSchemaFatal, err)
		default:
			r.logger.Warn("patch op failed, continuing",
				"kind", op.Kind,
				"table", op.Table,
				"error", err)
			return nil
		}
	}

	return nil
}

// tableExists probes for a table via the catalog
func (r *Reconciler) tableExists(ctx context.Context, store Executor, table string) (bool, error) {
	var regclass *string
	err := store.QueryRow(ctx, "SELECT to_regclass($1)::text", table).Scan(&regclass)
	if err != nil {
		if classify(err) == outcomeFatal {
			return false, fmt.Errorf("%w: %v", domain.ErrSchemaFatal, err)
		}
		return false, err
	}
	return regclass != nil, nil
}

type applyOutcome int

const (
	outcomeWarning applyOutcome = iota
	outcomeConverged
	outcomeFatal
)

// classify maps a storage error to a patch outcome by error code, not
// by message text.
func classify(err error) applyOutcome {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgDuplicateColumn, pgDuplicateTable, pgDuplicateObject:
			return outcomeConverged
		case pgInvalidCatalogName:
			return outcomeFatal
		}
	}

	if errors.Is(err, domain.ErrSchemaFatal) {
		return outcomeFatal
	}

	return outcomeWarning
}
