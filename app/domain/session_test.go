package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms-auth/app/domain"
)

func TestRefreshToken_NewRefreshToken(t *testing.T) {
	tests := []struct {
		name    string
		userID  uuid.UUID
		ttl     time.Duration
		wantErr bool
	}{
		{
			name:    "valid token creation",
			userID:  uuid.New(),
			ttl:     720 * time.Hour,
			wantErr: false,
		},
		{
			name:    "nil user ID",
			userID:  uuid.Nil,
			ttl:     720 * time.Hour,
			wantErr: true,
		},
		{
			name:    "non-positive lifetime",
			userID:  uuid.New(),
			ttl:     0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := domain.NewRefreshToken(tt.userID, tt.ttl)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, token)
			} else {
				require.NoError(t, err)
				assert.Len(t, token.Token, 64) // 32 random bytes, hex encoded
				assert.Equal(t, tt.userID, token.UserID)
				assert.Nil(t, token.RevokedAt)
				assert.True(t, token.ExpiresAt.After(token.IssuedAt))
			}
		})
	}
}

func TestRefreshToken_ValuesAreUnique(t *testing.T) {
	userID := uuid.New()

	first, err := domain.NewRefreshToken(userID, time.Hour)
	require.NoError(t, err)
	second, err := domain.NewRefreshToken(userID, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestRefreshToken_IsUsable(t *testing.T) {
	token, err := domain.NewRefreshToken(uuid.New(), time.Hour)
	require.NoError(t, err)

	now := time.Now()
	assert.True(t, token.IsUsable(now))

	// Expired token is not usable
	assert.False(t, token.IsUsable(token.ExpiresAt.Add(time.Second)))

	// Revoked token is not usable even before expiry
	token.Revoke(domain.RevocationReasonReplaced)
	assert.False(t, token.IsUsable(now))
	require.NotNil(t, token.RevocationReason)
	assert.Equal(t, domain.RevocationReasonReplaced, *token.RevocationReason)
}
