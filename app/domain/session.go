package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RevocationReason explains why a refresh token was revoked
type RevocationReason string

const (
	RevocationReasonReplaced RevocationReason = "replaced"
	RevocationReasonLogout   RevocationReason = "logout"
	RevocationReasonRevoked  RevocationReason = "revoked"
)

// refreshTokenBytes is the entropy of an opaque refresh token value
const refreshTokenBytes = 32

// RefreshToken represents a long-lived opaque session credential stored
// in the tenant's backing database. Exactly one non-revoked,
// non-expired token should be usable per rotation chain; exchanging a
// token for a new pair revokes the old one atomically.
type RefreshToken struct {
	ID               uuid.UUID         `json:"id"`
	Token            string            `json:"-"` // Exclude from JSON
	UserID           uuid.UUID         `json:"user_id"`
	IssuedAt         time.Time         `json:"issued_at"`
	ExpiresAt        time.Time         `json:"expires_at"`
	RevokedAt        *time.Time        `json:"revoked_at,omitempty"`
	RevocationReason *RevocationReason `json:"revocation_reason,omitempty"`
}

// NewRefreshToken creates a new refresh token with a cryptographically
// random opaque value
func NewRefreshToken(userID uuid.UUID, ttl time.Duration) (*RefreshToken, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user ID is required")
	}

	if ttl <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive")
	}

	tokenBytes := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, fmt.Errorf("failed to generate random token: %w", err)
	}

	now := time.Now()

	token := &RefreshToken{
		ID:        uuid.New(),
		Token:     hex.EncodeToString(tokenBytes),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	return token, nil
}

// IsExpired returns true if the token has passed its expiry
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// IsRevoked returns true if the token has been revoked
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsUsable returns true if the token may still be exchanged
func (t *RefreshToken) IsUsable(now time.Time) bool {
	return !t.IsRevoked() && !t.IsExpired(now)
}

// Revoke marks the token revoked with a reason
func (t *RefreshToken) Revoke(reason RevocationReason) {
	now := time.Now()
	t.RevokedAt = &now
	t.RevocationReason = &reason
}

// AccessClaims is the verified content of a short-lived access token.
// Access tokens are not persisted; they are validated purely by
// signature and expiry.
type AccessClaims struct {
	UserID     string   `json:"user_id"`
	Email      string   `json:"email"`
	FullName   string   `json:"full_name"`
	TenantCode string   `json:"tenant_code"`
	Roles      []string `json:"roles"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// TokenPair is the result of a successful login or refresh
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
