package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hrms-auth/app/domain"
	"hrms-auth/app/mocks"
)

const testHashSecret = "shared-hashing-secret-at-least-32-chars!"

func testOptions() Options {
	return Options{
		RefreshTokenTTL: 720 * time.Hour,
		MaxFailedLogins: 5,
		LockoutDuration: 15 * time.Minute,
	}
}

func tenantCtx() context.Context {
	return domain.WithTenant(context.Background(), domain.TenantContext{
		Code:         "acme",
		DatabaseName: "hrms_acme",
	})
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hasher := NewPasswordHasher(testHashSecret)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "jane.doe@example.com",
		FullName:     "Jane Doe",
		PasswordHash: hasher.Hash(password),
		Status:       domain.UserStatusActive,
		Roles:        []string{"employee"},
	}
}

func newTestUsecase(users *mocks.MockUserRepository, tokens *mocks.MockTokenRepository, issuer *mocks.MockTokenIssuer) *AuthUsecase {
	return NewAuthUsecase(
		users, tokens, issuer,
		NewPasswordHasher(testHashSecret),
		testOptions(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestAuthUsecase_Login(t *testing.T) {
	t.Run("valid credentials issue a token pair", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		tokens := mocks.NewMockTokenRepository(ctrl)
		issuer := mocks.NewMockTokenIssuer(ctrl)

		user := activeUser(t, "hunter2")
		expiresAt := time.Now().Add(15 * time.Minute)

		users.EXPECT().GetByEmail(gomock.Any(), "jane.doe@example.com").Return(user, nil)
		users.EXPECT().ResetLoginFailures(gomock.Any(), user.ID, gomock.Any()).Return(nil)
		issuer.EXPECT().Issue(user, "acme").Return("signed.jwt", expiresAt, nil)
		tokens.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		uc := newTestUsecase(users, tokens, issuer)
		gotUser, pair, err := uc.Login(tenantCtx(), "  Jane.Doe@Example.COM ", "hunter2")

		require.NoError(t, err)
		assert.Equal(t, user.ID, gotUser.ID)
		assert.Equal(t, "signed.jwt", pair.AccessToken)
		assert.Len(t, pair.RefreshToken, 64)
		assert.Equal(t, expiresAt, pair.ExpiresAt)
	})

	t.Run("unknown email collapses to invalid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		tokens := mocks.NewMockTokenRepository(ctrl)
		issuer := mocks.NewMockTokenIssuer(ctrl)

		users.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(nil, domain.ErrUserNotFound)

		uc := newTestUsecase(users, tokens, issuer)
		_, _, err := uc.Login(tenantCtx(), "ghost@example.com", "whatever")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("inactive account collapses to the same unauthorized family", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		tokens := mocks.NewMockTokenRepository(ctrl)
		issuer := mocks.NewMockTokenIssuer(ctrl)

		user := activeUser(t, "hunter2")
		user.Status = domain.UserStatusInactive
		users.EXPECT().GetByEmail(gomock.Any(), "jane.doe@example.com").Return(user, nil)

		uc := newTestUsecase(users, tokens, issuer)
		_, _, err := uc.Login(tenantCtx(), "jane.doe@example.com", "hunter2")

		assert.ErrorIs(t, err, domain.ErrAccountInactive)
	})

	t.Run("locked account is rejected before password verification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		tokens := mocks.NewMockTokenRepository(ctrl)
		issuer := mocks.NewMockTokenIssuer(ctrl)

		user := activeUser(t, "hunter2")
		until := time.Now().Add(10 * time.Minute)
		user.LockoutUntil = &until
		users.EXPECT().GetByEmail(gomock.Any(), "jane.doe@example.com").Return(user, nil)

		uc := newTestUsecase(users, tokens, issuer)
		_, _, err := uc.Login(tenantCtx(), "jane.doe@example.com", "hunter2")

		assert.ErrorIs(t, err, domain.ErrAccountLocked)
	})

	t.Run("expired lockout no longer blocks login", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		tokens := mocks.NewMockTokenRepository(ctrl)
		issuer := mocks.NewMockTokenIssuer(ctrl)

		user := activeUser(t, "hunter2")
		until := time.Now().Add(-1 * time.Minute)
		user.LockoutUntil = &until

		users.EXPECT().GetByEmail(gomock.Any(), "jane.doe@example.com").Return(user, nil)
		users.EXPECT().ResetLoginFailures(gomock.Any(), user.ID, gomock.Any()).Return(nil)
		issuer.EXPECT().Issue(user, "acme").Return("signed.jwt", time.Now().Add(15*time.Minute), nil)
		tokens.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		uc := newTestUsecase(users, tokens, issuer)
		_, pair, err := uc.Login(tenantCtx(), "jane.doe@example.com", "hunter2")

		require.NoError(t, err)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("password mismatch records the failed attempt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		tokens := mocks.NewMockTokenRepository(ctrl)
		issuer := mocks.NewMockTokenIssuer(ctrl)

		user := activeUser(t, "hunter2")
		users.EXPECT().GetByEmail(gomock.Any(), "jane.doe@example.com").Return(user, nil)
		users.EXPECT().
			RecordFailedLogin(gomock.Any(), user.ID, 5, 15*time.Minute).
			Return(1, nil)

		uc := newTestUsecase(users, tokens, issuer)
		_, _, err := uc.Login(tenantCtx(), "jane.doe@example.com", "wrong-password")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("failure to persist the attempt still rejects the login", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		tokens := mocks.NewMockTokenRepository(ctrl)
		issuer := mocks.NewMockTokenIssuer(ctrl)

		user := activeUser(t, "hunter2")
		users.EXPECT().GetByEmail(gomock.Any(), "jane.doe@example.com").Return(user, nil)
		users.EXPECT().
			RecordFailedLogin(gomock.Any(), user.ID, 5, 15*time.Minute).
			Return(0, errors.New("connection reset"))

		uc := newTestUsecase(users, tokens, issuer)
		_, _, err := uc.Login(tenantCtx(), "jane.doe@example.com", "wrong-password")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("missing tenant context fails before any store access", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := newTestUsecase(
			mocks.NewMockUserRepository(ctrl),
			mocks.NewMockTokenRepository(ctrl),
			mocks.NewMockTokenIssuer(ctrl),
		)

		_, _, err := uc.Login(context.Background(), "jane.doe@example.com", "hunter2")

		assert.ErrorIs(t, err, domain.ErrMissingTenant)
	})
}

func TestAuthUsecase_Refresh(t *testing.T) {
	t.Run("valid token is rotated into a new pair", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		tokens := mocks.NewMockTokenRepository(ctrl)
		issuer := mocks.NewMockTokenIssuer(ctrl)

		user := activeUser(t, "hunter2")
		stored, err := domain.NewRefreshToken(user.ID, 720*time.Hour)
		require.NoError(t, err)

		tokens.EXPECT().GetByValue(gomock.Any(), stored.Token).Return(stored, nil)
		tokens.EXPECT().Revoke(gomock.Any(), stored.Token, domain.RevocationReasonReplaced).Return(nil)
		users.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
		issuer.EXPECT().Issue(user, "acme").Return("new.jwt", time.Now().Add(15*time.Minute), nil)
		tokens.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		uc := newTestUsecase(users, tokens, issuer)
		pair, err := uc.Refresh(tenantCtx(), stored.Token)

		require.NoError(t, err)
		assert.Equal(t, "new.jwt", pair.AccessToken)
		assert.NotEqual(t, stored.Token, pair.RefreshToken)
	})

	t.Run("unknown token is invalid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		tokens := mocks.NewMockTokenRepository(ctrl)
		issuer := mocks.NewMockTokenIssuer(ctrl)

		tokens.EXPECT().GetByValue(gomock.Any(), "forged").Return(nil, domain.ErrInvalidToken)

		uc := newTestUsecase(users, tokens, issuer)
		_, err := uc.Refresh(tenantCtx(), "forged")

		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("expired token is invalid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		tokens := mocks.NewMockTokenRepository(ctrl)
		issuer := mocks.NewMockTokenIssuer(ctrl)

		stored, err := domain.NewRefreshToken(uuid.New(), time.Hour)
		require.NoError(t, err)
		stored.ExpiresAt = time.Now().Add(-1 * time.Hour)
		tokens.EXPECT().GetByValue(gomock.Any(), stored.Token).Return(stored, nil)

		uc := newTestUsecase(users, tokens, issuer)
		_, err = uc.Refresh(tenantCtx(), stored.Token)

		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("superseded token loses the rotation race", func(t *testing.T) {
		// The revoke step is a conditional update; when another
		// request rotated the token first, zero rows match and the
		// exchange must fail.
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		tokens := mocks.NewMockTokenRepository(ctrl)
		issuer := mocks.NewMockTokenIssuer(ctrl)

		stored, err := domain.NewRefreshToken(uuid.New(), 720*time.Hour)
		require.NoError(t, err)
		tokens.EXPECT().GetByValue(gomock.Any(), stored.Token).Return(stored, nil)
		tokens.EXPECT().
			Revoke(gomock.Any(), stored.Token, domain.RevocationReasonReplaced).
			Return(domain.ErrInvalidToken)

		uc := newTestUsecase(users, tokens, issuer)
		_, err = uc.Refresh(tenantCtx(), stored.Token)

		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("deactivated owner invalidates the token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		tokens := mocks.NewMockTokenRepository(ctrl)
		issuer := mocks.NewMockTokenIssuer(ctrl)

		user := activeUser(t, "hunter2")
		user.Status = domain.UserStatusInactive
		stored, err := domain.NewRefreshToken(user.ID, 720*time.Hour)
		require.NoError(t, err)

		tokens.EXPECT().GetByValue(gomock.Any(), stored.Token).Return(stored, nil)
		tokens.EXPECT().Revoke(gomock.Any(), stored.Token, domain.RevocationReasonReplaced).Return(nil)
		users.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

		uc := newTestUsecase(users, tokens, issuer)
		_, err = uc.Refresh(tenantCtx(), stored.Token)

		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}

func TestAuthUsecase_Verify(t *testing.T) {
	ctrl := gomock.NewController(t)
	issuer := mocks.NewMockTokenIssuer(ctrl)

	claims := &domain.AccessClaims{UserID: uuid.New().String(), TenantCode: "acme"}
	issuer.EXPECT().Verify("signed.jwt").Return(claims, nil)

	uc := newTestUsecase(mocks.NewMockUserRepository(ctrl), mocks.NewMockTokenRepository(ctrl), issuer)
	got, err := uc.Verify("signed.jwt")

	require.NoError(t, err)
	assert.Equal(t, claims, got)
}
