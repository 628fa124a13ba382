package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"hrms-auth/app/domain"
	"hrms-auth/app/port"
)

// UserRepository implements port.UserRepository against the backing
// database of the tenant resolved in the request context.
type UserRepository struct {
	stores TenantStoreSource
	logger *slog.Logger
}

// NewUserRepository creates a new per-tenant user repository
func NewUserRepository(stores TenantStoreSource, logger *slog.Logger) port.UserRepository {
	return &UserRepository{
		stores: stores,
		logger: logger.With("component", "user_repository"),
	}
}

// GetByEmail looks up a credential by normalized email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db, err := r.stores.Executor(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, email, full_name, password_hash, status, roles,
		       failed_login_attempts, lockout_until, created_at, updated_at, last_login_at
		FROM users
		WHERE lower(email) = $1`

	var user domain.User
	err = db.QueryRow(ctx, query, domain.NormalizeEmail(email)).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.Status,
		&user.Roles,
		&user.FailedLoginAttempts,
		&user.LockoutUntil,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLoginAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetByID looks up a credential by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	db, err := r.stores.Executor(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, email, full_name, password_hash, status, roles,
		       failed_login_attempts, lockout_until, created_at, updated_at, last_login_at
		FROM users
		WHERE id = $1`

	var user domain.User
	err = db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.Status,
		&user.Roles,
		&user.FailedLoginAttempts,
		&user.LockoutUntil,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLoginAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("failed to get user by id", "user_id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// RecordFailedLogin atomically increments the failed-attempt counter
// and sets the lockout marker once the threshold is reached. A single
// conditional update keyed by user ID means concurrent failed attempts
// for the same identity never lose counts.
func (r *UserRepository) RecordFailedLogin(ctx context.Context, userID uuid.UUID, threshold int, lockout time.Duration) (int, error) {
	db, err := r.stores.Executor(ctx)
	if err != nil {
		return 0, err
	}

	query := `
		UPDATE users
		SET failed_login_attempts = failed_login_attempts + 1,
		    lockout_until = CASE
		        WHEN failed_login_attempts + 1 >= $2 THEN $3
		        ELSE lockout_until
		    END,
		    updated_at = $4
		WHERE id = $1
		RETURNING failed_login_attempts`

	now := time.Now()

	var attempts int
	err = db.QueryRow(ctx, query, userID, threshold, now.Add(lockout), now).Scan(&attempts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		r.logger.Error("failed to record login failure", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to record login failure: %w", err)
	}

	return attempts, nil
}

// ResetLoginFailures clears the counter and lockout marker after a
// successful login
func (r *UserRepository) ResetLoginFailures(ctx context.Context, userID uuid.UUID, lastLoginAt time.Time) error {
	db, err := r.stores.Executor(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET failed_login_attempts = 0,
		    lockout_until = NULL,
		    last_login_at = $2,
		    updated_at = $2
		WHERE id = $1`

	tag, err := db.Exec(ctx, query, userID, lastLoginAt)
	if err != nil {
		r.logger.Error("failed to reset login failures", "user_id", userID, "error", err)
		return fmt.Errorf("failed to reset login failures: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}
