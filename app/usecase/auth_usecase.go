package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hrms-auth/app/domain"
	"hrms-auth/app/port"
)

// AuthUsecase implements login, refresh rotation and token
// verification against the tenant store resolved in the request
// context. All credential failures surface to callers as one of the
// domain unauthorized sentinels; handlers collapse them into a single
// generic response so the API never reveals whether an account exists,
// is inactive, or is locked.
type AuthUsecase struct {
	users   port.UserRepository
	tokens  port.TokenRepository
	issuer  port.TokenIssuer
	hasher  *PasswordHasher
	logger  *slog.Logger
	options Options
}

// Options carries the session and lockout policy
type Options struct {
	RefreshTokenTTL time.Duration
	MaxFailedLogins int
	LockoutDuration time.Duration
}

// NewAuthUsecase creates a new authentication usecase
func NewAuthUsecase(
	users port.UserRepository,
	tokens port.TokenRepository,
	issuer port.TokenIssuer,
	hasher *PasswordHasher,
	options Options,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:   users,
		tokens:  tokens,
		issuer:  issuer,
		hasher:  hasher,
		options: options,
		logger:  logger.With("component", "auth_usecase"),
	}
}

// Login verifies credentials and issues a fresh token pair.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error) {
	tc, ok := domain.TenantFrom(ctx)
	if !ok {
		return nil, nil, domain.ErrMissingTenant
	}

	email = domain.NormalizeEmail(email)

	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			u.logger.Info("login rejected: unknown email", "tenant", tc.Code)
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	now := time.Now()

	if user.IsLockedOut(now) {
		u.logger.Info("login rejected: account locked",
			"tenant", tc.Code, "user_id", user.ID, "lockout_until", user.LockoutUntil)
		return nil, nil, domain.ErrAccountLocked
	}

	if user.Status != domain.UserStatusActive {
		u.logger.Info("login rejected: account inactive",
			"tenant", tc.Code, "user_id", user.ID, "status", user.Status)
		return nil, nil, domain.ErrAccountInactive
	}

	if !u.hasher.Compare(password, user.PasswordHash) {
		attempts, recordErr := u.users.RecordFailedLogin(ctx, user.ID, u.options.MaxFailedLogins, u.options.LockoutDuration)
		if recordErr != nil {
			u.logger.Error("failed to record login failure",
				"tenant", tc.Code, "user_id", user.ID, "error", recordErr)
		} else {
			u.logger.Info("login rejected: password mismatch",
				"tenant", tc.Code, "user_id", user.ID, "failed_attempts", attempts)
		}
		return nil, nil, domain.ErrInvalidCredentials
	}

	if err := u.users.ResetLoginFailures(ctx, user.ID, now); err != nil {
		return nil, nil, fmt.Errorf("failed to finalize login: %w", err)
	}

	pair, err := u.issuePair(ctx, user, tc.Code)
	if err != nil {
		return nil, nil, err
	}

	u.logger.Info("login succeeded", "tenant", tc.Code, "user_id", user.ID)
	return user, pair, nil
}

// Refresh exchanges a non-revoked refresh token for a new pair. The
// presented token is revoked with reason "replaced" before the new
// pair is issued, and the revocation is conditional, so a superseded
// token can never be exchanged twice.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	tc, ok := domain.TenantFrom(ctx)
	if !ok {
		return nil, domain.ErrMissingTenant
	}

	token, err := u.tokens.GetByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !token.IsUsable(now) {
		u.logger.Info("refresh rejected: token expired or revoked",
			"tenant", tc.Code, "user_id", token.UserID)
		return nil, domain.ErrInvalidToken
	}

	if err := u.tokens.Revoke(ctx, refreshToken, domain.RevocationReasonReplaced); err != nil {
		return nil, err
	}

	user, err := u.users.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	if user.Status != domain.UserStatusActive {
		u.logger.Info("refresh rejected: account inactive",
			"tenant", tc.Code, "user_id", user.ID)
		return nil, domain.ErrInvalidToken
	}

	pair, err := u.issuePair(ctx, user, tc.Code)
	if err != nil {
		return nil, err
	}

	u.logger.Info("refresh token rotated", "tenant", tc.Code, "user_id", user.ID)
	return pair, nil
}

// Verify checks an access token by signature and expiry alone; no
// store access is involved.
func (u *AuthUsecase) Verify(accessToken string) (*domain.AccessClaims, error) {
	return u.issuer.Verify(accessToken)
}

func (u *AuthUsecase) issuePair(ctx context.Context, user *domain.User, tenantCode string) (*domain.TokenPair, error) {
	accessToken, expiresAt, err := u.issuer.Issue(user, tenantCode)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := domain.NewRefreshToken(user.ID, u.options.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := u.tokens.Create(ctx, refresh); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		ExpiresAt:    expiresAt,
	}, nil
}
