package port

//go:generate mockgen -source=auth_port.go -destination=../mocks/mock_auth_port.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hrms-auth/app/domain"
)

// AuthUsecase defines authentication business logic interface
type AuthUsecase interface {
	// Login verifies credentials against the resolved tenant's store
	// and issues a fresh access/refresh token pair.
	Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error)

	// Refresh exchanges a non-revoked refresh token for a new pair,
	// revoking the old token in the same step. A superseded token is
	// never usable again.
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)

	// Verify checks an access token by signature and expiry alone.
	Verify(accessToken string) (*domain.AccessClaims, error)
}

// UserRepository defines credential data access inside the resolved
// tenant's backing database.
type UserRepository interface {
	// GetByEmail looks up a credential by normalized email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID looks up a credential by ID, used when rotating a
	// refresh token whose owner must be re-read.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// RecordFailedLogin atomically increments the failed-attempt
	// counter and, at the threshold, sets the lockout marker. It
	// returns the new attempt count. The increment is a single
	// conditional update so concurrent attempts never lose counts.
	RecordFailedLogin(ctx context.Context, userID uuid.UUID, threshold int, lockout time.Duration) (int, error)

	// ResetLoginFailures clears the counter and lockout marker after a
	// successful login and records the login time.
	ResetLoginFailures(ctx context.Context, userID uuid.UUID, lastLoginAt time.Time) error
}

// TokenRepository defines refresh-token persistence inside the
// resolved tenant's backing database.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error

	// GetByValue returns the token row for an opaque value, revoked or
	// not. Absent values yield domain.ErrInvalidToken.
	GetByValue(ctx context.Context, value string) (*domain.RefreshToken, error)

	// Revoke marks a still-active token revoked with a reason. It is a
	// conditional update keyed by value; if the token was already
	// revoked it returns domain.ErrInvalidToken, which makes rotation
	// single-use under concurrency.
	Revoke(ctx context.Context, value string, reason domain.RevocationReason) error
}

// TokenIssuer issues and verifies signed access tokens
type TokenIssuer interface {
	Issue(user *domain.User, tenantCode string) (token string, expiresAt time.Time, err error)
	Verify(token string) (*domain.AccessClaims, error)
}
