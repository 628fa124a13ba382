package schema_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms-auth/app/domain"
	"hrms-auth/app/schema"
	"hrms-auth/app/utils/logger"
)

// fakeStore mocks the apply step so the reconciler is testable without
// a live database.
type fakeStore struct {
	executed   []string
	execErr    func(sql string) error
	probeFound bool
	probeErr   error
}

func (s *fakeStore) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	s.executed = append(s.executed, sql)
	if s.execErr != nil {
		if err := s.execErr(sql); err != nil {
			return pgconn.CommandTag{}, err
		}
	}
	return pgconn.NewCommandTag("CREATE"), nil
}

func (s *fakeStore) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return &fakeRow{found: s.probeFound, err: s.probeErr}
}

type fakeRow struct {
	found bool
	err   error
}

func (r *fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	out, ok := dest[0].(**string)
	if !ok {
		return errors.New("unexpected scan destination")
	}
	if r.found {
		name := "job_requisitions"
		*out = &name
	} else {
		*out = nil
	}
	return nil
}

type fakeProvider struct {
	store schema.Executor
	err   error
}

func (p *fakeProvider) Store(ctx context.Context) (schema.Executor, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.store, nil
}

func testManifest(t *testing.T) *schema.PatchManifest {
	t.Helper()

	manifest, err := schema.ParseManifest([]byte(`
baseline:
  - kind: ensure_column
    table: users
    column: failed_login_attempts
    type: INTEGER NOT NULL
    default: "0"
  - kind: ensure_table
    table: refresh_tokens
    definition: |
      id UUID PRIMARY KEY
  - kind: ensure_column
    table: employees
    column: middle_name
    type: VARCHAR(100)
features:
  recruitment:
    probe_table: job_requisitions
    ops:
      - kind: ensure_table
        table: job_requisitions
        definition: |
          id UUID PRIMARY KEY
      - kind: ensure_table
        table: job_applicants
        definition: |
          id UUID PRIMARY KEY
`))
	require.NoError(t, err)
	return manifest
}

func TestReconciler_ApplyBaseline(t *testing.T) {
	store := &fakeStore{}
	reconciler := newTestReconciler(t, &fakeProvider{store: store})

	err := reconciler.ApplyBaseline(context.Background())
	require.NoError(t, err)

	require.Len(t, store.executed, 3)
	assert.Contains(t, store.executed[0], "ADD COLUMN IF NOT EXISTS failed_login_attempts")
	assert.Contains(t, store.executed[1], "CREATE TABLE IF NOT EXISTS refresh_tokens")
	assert.Contains(t, store.executed[2], "ADD COLUMN IF NOT EXISTS middle_name")
}

func TestReconciler_ApplyBaseline_Idempotent(t *testing.T) {
	// A store already at the target state answers every op with a
	// duplicate-object error; reconciliation still succeeds.
	store := &fakeStore{
		execErr: func(sql string) error {
			if strings.Contains(sql, "ADD COLUMN") {
				return &pgconn.PgError{Code: "42701"}
			}
			return &pgconn.PgError{Code: "42P07"}
		},
	}
	reconciler := newTestReconciler(t, &fakeProvider{store: store})

	require.NoError(t, reconciler.ApplyBaseline(context.Background()))
	require.NoError(t, reconciler.ApplyBaseline(context.Background()))

	// Both passes attempted the full op list.
	assert.Len(t, store.executed, 6)
}

func TestReconciler_ApplyBaseline_FatalWhenDatabaseMissing(t *testing.T) {
	store := &fakeStore{
		execErr: func(sql string) error {
			return &pgconn.PgError{Code: "3D000"}
		},
	}
	reconciler := newTestReconciler(t, &fakeProvider{store: store})

	err := reconciler.ApplyBaseline(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaFatal)

	// Aborted on the first op.
	assert.Len(t, store.executed, 1)
}

func TestReconciler_ApplyBaseline_SwallowsNonFatalFailures(t *testing.T) {
	store := &fakeStore{
		execErr: func(sql string) error {
			if strings.Contains(sql, "middle_name") {
				return &pgconn.PgError{Code: "42P01"} // undefined_table
			}
			return nil
		},
	}
	reconciler := newTestReconciler(t, &fakeProvider{store: store})

	err := reconciler.ApplyBaseline(context.Background())
	assert.NoError(t, err)
	assert.Len(t, store.executed, 3)
}

func TestReconciler_ApplyBaseline_ProviderFailure(t *testing.T) {
	reconciler := newTestReconciler(t, &fakeProvider{err: errors.New("connect: connection refused")})

	err := reconciler.ApplyBaseline(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaFatal)
}

func TestReconciler_EnsureFeature(t *testing.T) {
	t.Run("creates structures when probe table is absent", func(t *testing.T) {
		store := &fakeStore{probeFound: false}
		reconciler := newTestReconciler(t, &fakeProvider{store: store})

		err := reconciler.EnsureFeature(context.Background(), "recruitment")
		require.NoError(t, err)

		require.Len(t, store.executed, 2)
		assert.Contains(t, store.executed[0], "job_requisitions")
		assert.Contains(t, store.executed[1], "job_applicants")
	})

	t.Run("no-op when probe table exists", func(t *testing.T) {
		store := &fakeStore{probeFound: true}
		reconciler := newTestReconciler(t, &fakeProvider{store: store})

		err := reconciler.EnsureFeature(context.Background(), "recruitment")
		require.NoError(t, err)
		assert.Empty(t, store.executed)
	})

	t.Run("concurrent identical create is success", func(t *testing.T) {
		store := &fakeStore{
			probeFound: false,
			execErr: func(sql string) error {
				return &pgconn.PgError{Code: "42P07"}
			},
		}
		reconciler := newTestReconciler(t, &fakeProvider{store: store})

		err := reconciler.EnsureFeature(context.Background(), "recruitment")
		assert.NoError(t, err)
	})

	t.Run("unknown feature", func(t *testing.T) {
		reconciler := newTestReconciler(t, &fakeProvider{store: &fakeStore{}})

		err := reconciler.EnsureFeature(context.Background(), "payroll")
		assert.Error(t, err)
	})

	t.Run("probe failure is non-fatal", func(t *testing.T) {
		store := &fakeStore{probeErr: errors.New("permission denied")}
		reconciler := newTestReconciler(t, &fakeProvider{store: store})

		err := reconciler.EnsureFeature(context.Background(), "recruitment")
		assert.NoError(t, err)
	})
}

func TestNewReconciler_EmbeddedManifest(t *testing.T) {
	log, err := logger.NewWithWriter("error", io.Discard)
	require.NoError(t, err)

	reconciler, err := schema.NewReconciler(&fakeProvider{store: &fakeStore{}}, log)
	require.NoError(t, err)
	assert.NotNil(t, reconciler)
}

func newTestReconciler(t *testing.T, provider schema.StoreProvider) *schema.Reconciler {
	t.Helper()

	log, err := logger.NewWithWriter("error", io.Discard)
	require.NoError(t, err)

	return schema.NewReconcilerWithManifest(provider, testManifest(t), log)
}
