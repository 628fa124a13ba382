package migration

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Migration is one versioned change to the platform directory store.
// The per-tenant stores are never touched here; their structure is
// maintained by the request-path reconciler.
type Migration struct {
	Version   int
	Name      string
	UpSQL     string
	DownSQL   string
	AppliedAt time.Time
}

// Migrator applies versioned SQL migrations to the directory database
type Migrator struct {
	db           *sql.DB
	logger       *slog.Logger
	migrationsFS fs.FS
}

// NewMigrator creates a new migration manager
func NewMigrator(db *sql.DB, logger *slog.Logger, migrationsFS fs.FS) *Migrator {
	return &Migrator{
		db:           db,
		logger:       logger.With("component", "migrator"),
		migrationsFS: migrationsFS,
	}
}

// ensureVersionTable creates the migrations tracking table
func (m *Migrator) ensureVersionTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
		checksum VARCHAR(64) NOT NULL
	)`

	if _, err := m.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	return nil
}

// LoadMigrations reads all *.up.sql / *.down.sql pairs, ordered by
// their numeric version prefix (e.g. "001_create_tenants.up.sql").
func (m *Migrator) LoadMigrations() ([]Migration, error) {
	migrations := make([]Migration, 0)

	err := fs.WalkDir(m.migrationsFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".up.sql") {
			return nil
		}

		filename := filepath.Base(path)
		parts := strings.SplitN(filename, "_", 2)
		if len(parts) < 2 {
			m.logger.Warn("skipping migration with unversioned filename", "filename", filename)
			return nil
		}

		version, err := strconv.Atoi(parts[0])
		if err != nil {
			m.logger.Warn("skipping migration with non-numeric version", "filename", filename)
			return nil
		}

		upSQL, err := fs.ReadFile(m.migrationsFS, path)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", path, err)
		}

		downPath := strings.Replace(path, ".up.sql", ".down.sql", 1)
		downSQL, err := fs.ReadFile(m.migrationsFS, downPath)
		if err != nil {
			return fmt.Errorf("failed to read rollback %s: %w", downPath, err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".up.sql"),
			UpSQL:   string(upSQL),
			DownSQL: string(downSQL),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// appliedVersions returns the versions already recorded, in order
func (m *Migrator) appliedVersions() ([]Migration, error) {
	rows, err := m.db.Query(`SELECT version, name, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	var applied []Migration
	for rows.Next() {
		var mig Migration
		if err := rows.Scan(&mig.Version, &mig.Name, &mig.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied = append(applied, mig)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating migration rows: %w", err)
	}

	return applied, nil
}

// Up applies all pending migrations in version order
func (m *Migrator) Up() error {
	if err := m.ensureVersionTable(); err != nil {
		return err
	}

	all, err := m.LoadMigrations()
	if err != nil {
		return err
	}

	applied, err := m.appliedVersions()
	if err != nil {
		return err
	}

	appliedMap := make(map[int]bool, len(applied))
	for _, mig := range applied {
		appliedMap[mig.Version] = true
	}

	for _, mig := range all {
		if appliedMap[mig.Version] {
			continue
		}

		if err := m.apply(mig); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", mig.Version, err)
		}

		m.logger.Info("applied migration", "version", mig.Version, "name", mig.Name)
	}

	return nil
}

// Down rolls back the most recently applied migration
func (m *Migrator) Down() error {
	applied, err := m.appliedVersions()
	if err != nil {
		return err
	}

	if len(applied) == 0 {
		m.logger.Info("no migrations to roll back")
		return nil
	}

	last := applied[len(applied)-1]

	all, err := m.LoadMigrations()
	if err != nil {
		return err
	}

	for _, mig := range all {
		if mig.Version != last.Version {
			continue
		}

		if err := m.rollback(mig); err != nil {
			return fmt.Errorf("failed to roll back migration %d: %w", mig.Version, err)
		}

		m.logger.Info("rolled back migration", "version", mig.Version, "name", mig.Name)
		return nil
	}

	return fmt.Errorf("migration %d not found in filesystem", last.Version)
}

func (m *Migrator) apply(mig Migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(mig.UpSQL); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
		mig.Version, mig.Name, checksum(mig.UpSQL),
	); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}

func (m *Migrator) rollback(mig Migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(mig.DownSQL); err != nil {
		return fmt.Errorf("failed to execute rollback: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM schema_migrations WHERE version = $1`, mig.Version); err != nil {
		return fmt.Errorf("failed to unrecord migration: %w", err)
	}

	return tx.Commit()
}

// Status logs each known migration and whether it has been applied
func (m *Migrator) Status() error {
	if err := m.ensureVersionTable(); err != nil {
		return err
	}

	all, err := m.LoadMigrations()
	if err != nil {
		return err
	}

	applied, err := m.appliedVersions()
	if err != nil {
		return err
	}

	appliedAt := make(map[int]time.Time, len(applied))
	for _, mig := range applied {
		appliedAt[mig.Version] = mig.AppliedAt
	}

	for _, mig := range all {
		if at, ok := appliedAt[mig.Version]; ok {
			m.logger.Info("migration applied",
				"version", mig.Version, "name", mig.Name, "applied_at", at)
		} else {
			m.logger.Info("migration pending",
				"version", mig.Version, "name", mig.Name)
		}
	}

	return nil
}

func checksum(sqlText string) string {
	sum := sha256.Sum256([]byte(sqlText))
	return hex.EncodeToString(sum[:])
}
