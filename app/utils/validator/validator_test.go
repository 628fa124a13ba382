package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Validate(t *testing.T) {
	type loginRequest struct {
		TenantCode string `json:"tenantCode" validate:"omitempty,tenant_code"`
		Email      string `json:"email" validate:"required,email"`
		Password   string `json:"password" validate:"required"`
	}

	v := New()

	t.Run("valid request passes", func(t *testing.T) {
		err := v.Validate(loginRequest{
			TenantCode: "acme",
			Email:      "jane@example.com",
			Password:   "hunter2",
		})
		assert.NoError(t, err)
	})

	t.Run("missing fields are reported by json name", func(t *testing.T) {
		err := v.Validate(loginRequest{})
		require.Error(t, err)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Errors, "email")
		assert.Contains(t, vErr.Errors, "password")
	})

	t.Run("bad tenant code is rejected", func(t *testing.T) {
		err := v.Validate(loginRequest{
			TenantCode: "Not Valid!",
			Email:      "jane@example.com",
			Password:   "hunter2",
		})
		require.Error(t, err)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Errors, "tenantCode")
	})
}

func TestIsValidTenantCode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"acme", true},
		{"acme-north-2", true},
		{"a1", true},
		{"", false},
		{"A", false},
		{"spaces here", false},
		{"UPPER", false},
		{"under_score", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidTenantCode(tt.code))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jane@example.com"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail(""))
}
