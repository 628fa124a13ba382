package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms-auth/app/domain"
)

func TestUser_NewUser(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		fullName  string
		hash      string
		wantErr   bool
		wantEmail string
	}{
		{
			name:      "valid user creation",
			email:     "a@x.com",
			fullName:  "Alice Example",
			hash:      "deadbeef",
			wantErr:   false,
			wantEmail: "a@x.com",
		},
		{
			name:      "email is normalized",
			email:     "  Alice@X.COM ",
			fullName:  "Alice Example",
			hash:      "deadbeef",
			wantErr:   false,
			wantEmail: "alice@x.com",
		},
		{
			name:     "empty email",
			email:    "",
			fullName: "Alice Example",
			hash:     "deadbeef",
			wantErr:  true,
		},
		{
			name:     "invalid email format",
			email:    "not-an-email",
			fullName: "Alice Example",
			hash:     "deadbeef",
			wantErr:  true,
		},
		{
			name:     "empty full name",
			email:    "a@x.com",
			fullName: "",
			hash:     "deadbeef",
			wantErr:  true,
		},
		{
			name:     "empty password hash",
			email:    "a@x.com",
			fullName: "Alice Example",
			hash:     "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := domain.NewUser(tt.email, tt.fullName, tt.hash)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantEmail, user.Email)
				assert.Equal(t, domain.UserStatusActive, user.Status)
				assert.Zero(t, user.FailedLoginAttempts)
				assert.Nil(t, user.LockoutUntil)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", domain.NormalizeEmail("  A@X.Com "))
	assert.Equal(t, "", domain.NormalizeEmail("   "))
}

func TestUser_IsLockedOut(t *testing.T) {
	user, err := domain.NewUser("a@x.com", "Alice Example", "deadbeef")
	require.NoError(t, err)

	now := time.Now()
	assert.False(t, user.IsLockedOut(now))

	until := now.Add(15 * time.Minute)
	user.LockoutUntil = &until
	assert.True(t, user.IsLockedOut(now))
	assert.False(t, user.IsLockedOut(until.Add(time.Second)))
}

func TestUser_HasRole(t *testing.T) {
	user, err := domain.NewUser("a@x.com", "Alice Example", "deadbeef")
	require.NoError(t, err)

	assert.True(t, user.HasRole("user"))
	assert.False(t, user.HasRole("admin"))

	user.Roles = append(user.Roles, "admin")
	assert.True(t, user.HasRole("admin"))
}
