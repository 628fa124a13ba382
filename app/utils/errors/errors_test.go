package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "hrms-auth/app/utils/errors"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *apperrors.AppError
		expected string
	}{
		{
			name:     "error without cause",
			err:      apperrors.New(apperrors.ErrCodeMissingTenant, "tenant code is required"),
			expected: "MISSING_TENANT: tenant code is required",
		},
		{
			name: "error with cause",
			err: apperrors.Wrap(apperrors.ErrCodeDatabaseError, "database operation failed",
				fmt.Errorf("connection refused")),
			expected: "DATABASE_ERROR: database operation failed (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_StatusCodeMapping(t *testing.T) {
	tests := []struct {
		name       string
		code       apperrors.ErrorCode
		wantStatus int
	}{
		{"missing tenant is 400", apperrors.ErrCodeMissingTenant, http.StatusBadRequest},
		{"tenant not found is 404", apperrors.ErrCodeTenantNotFound, http.StatusNotFound},
		{"store inconsistent is 500", apperrors.ErrCodeStoreInconsistent, http.StatusInternalServerError},
		{"schema fatal is 500", apperrors.ErrCodeSchemaFatal, http.StatusInternalServerError},
		{"invalid credentials is 401", apperrors.ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{"account inactive is 401", apperrors.ErrCodeAccountInactive, http.StatusUnauthorized},
		{"account locked is 401", apperrors.ErrCodeAccountLocked, http.StatusUnauthorized},
		{"invalid token is 401", apperrors.ErrCodeInvalidToken, http.StatusUnauthorized},
		{"rate limit is 429", apperrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{"internal error is 500", apperrors.ErrCodeInternalError, http.StatusInternalServerError},
		{"unknown code falls back to 500", apperrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := apperrors.New(tt.code, "message")
			assert.Equal(t, tt.wantStatus, err.StatusCode)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := apperrors.Wrap(apperrors.ErrCodeInternalError, "internal server error", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, err.Unwrap())
}

func TestAsAppError(t *testing.T) {
	appErr := apperrors.New(apperrors.ErrCodeInvalidToken, "invalid or expired token")
	wrapped := fmt.Errorf("handler: %w", appErr)

	got, ok := apperrors.AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, got.Code)

	_, ok = apperrors.AsAppError(fmt.Errorf("plain error"))
	assert.False(t, ok)
}

func TestGetHTTPStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, apperrors.GetHTTPStatusCode(apperrors.NewTenantNotFound("ghost")))
	assert.Equal(t, http.StatusInternalServerError, apperrors.GetHTTPStatusCode(fmt.Errorf("plain error")))
}

func TestNewTenantNotFound_IncludesRemediationHint(t *testing.T) {
	err := apperrors.NewTenantNotFound("ghost")

	assert.Equal(t, apperrors.ErrCodeTenantNotFound, err.Code)
	assert.Contains(t, err.Message, "ghost")
	assert.Contains(t, err.Message, "verify the tenant code")
}

func TestAppError_WithContext(t *testing.T) {
	err := apperrors.New(apperrors.ErrCodeDatabaseError, "database error").
		WithContext("tenant", "acme").
		WithDetails("lookup failed")

	assert.Equal(t, "acme", err.Context["tenant"])
	assert.Equal(t, "lookup failed", err.Details)
}
