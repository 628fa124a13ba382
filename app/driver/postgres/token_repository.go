package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"hrms-auth/app/domain"
	"hrms-auth/app/port"
)

// TokenRepository implements port.TokenRepository over the per-tenant
// refresh_tokens table.
type TokenRepository struct {
	stores TenantStoreSource
	logger *slog.Logger
}

// NewTokenRepository creates a new per-tenant refresh token repository
func NewTokenRepository(stores TenantStoreSource, logger *slog.Logger) port.TokenRepository {
	return &TokenRepository{
		stores: stores,
		logger: logger.With("component", "token_repository"),
	}
}

// Create persists a newly issued refresh token
func (r *TokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	db, err := r.stores.Executor(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO refresh_tokens (id, token, user_id, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = db.Exec(ctx, query,
		token.ID,
		token.Token,
		token.UserID,
		token.IssuedAt,
		token.ExpiresAt,
	)
	if err != nil {
		r.logger.Error("failed to create refresh token", "user_id", token.UserID, "error", err)
		return fmt.Errorf("failed to create refresh token: %w", err)
	}

	return nil
}

// GetByValue loads a refresh token by its opaque value. Unknown values
// map to domain.ErrInvalidToken so callers never learn whether a token
// ever existed.
func (r *TokenRepository) GetByValue(ctx context.Context, value string) (*domain.RefreshToken, error) {
	db, err := r.stores.Executor(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, token, user_id, issued_at, expires_at, revoked_at, revocation_reason
		FROM refresh_tokens
		WHERE token = $1`

	var token domain.RefreshToken
	err = db.QueryRow(ctx, query, value).Scan(
		&token.ID,
		&token.Token,
		&token.UserID,
		&token.IssuedAt,
		&token.ExpiresAt,
		&token.RevokedAt,
		&token.RevocationReason,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidToken
		}
		r.logger.Error("failed to get refresh token", "error", err)
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return &token, nil
}

// Revoke marks a token as consumed. The update is conditional on the
// token still being unrevoked, which makes rotation single-use: of two
// concurrent refresh calls with the same token, exactly one wins and
// the other sees domain.ErrInvalidToken.
func (r *TokenRepository) Revoke(ctx context.Context, value string, reason domain.RevocationReason) error {
	db, err := r.stores.Executor(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE refresh_tokens
		SET revoked_at = $2, revocation_reason = $3
		WHERE token = $1 AND revoked_at IS NULL`

	tag, err := db.Exec(ctx, query, value, time.Now(), reason)
	if err != nil {
		r.logger.Error("failed to revoke refresh token", "error", err)
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidToken
	}

	return nil
}
