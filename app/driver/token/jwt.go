package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hrms-auth/app/domain"
)

// JWTConfig holds access-token generation configuration.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// accessClaims is the on-wire claim set of an access token. The tenant
// code claim is what lets a verified token act as a tenant source on
// non-login requests.
type accessClaims struct {
	Email      string   `json:"email"`
	FullName   string   `json:"name"`
	TenantCode string   `json:"tenantCode"`
	Roles      []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies HS256 access tokens.
// Implements port.TokenIssuer.
type JWTIssuer struct {
	cfg JWTConfig
}

// NewJWTIssuer creates a new JWT issuer.
func NewJWTIssuer(cfg JWTConfig) *JWTIssuer {
	return &JWTIssuer{cfg: cfg}
}

// Issue generates a signed access token for a user in a tenant.
func (j *JWTIssuer) Issue(user *domain.User, tenantCode string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.cfg.TTL)
	claims := accessClaims{
		Email:      user.Email,
		FullName:   user.FullName,
		TenantCode: tenantCode,
		Roles:      user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.cfg.Issuer,
			Audience:  jwt.ClaimStrings{j.cfg.Audience},
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify parses and validates a signed access token by signature,
// expiry, issuer and audience. Any failure maps to
// domain.ErrInvalidToken.
func (j *JWTIssuer) Verify(tokenString string) (*domain.AccessClaims, error) {
	var claims accessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(j.cfg.Secret), nil
		},
		jwt.WithIssuer(j.cfg.Issuer),
		jwt.WithAudience(j.cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, errors.Join(domain.ErrInvalidToken, err)
	}

	return &domain.AccessClaims{
		UserID:     claims.Subject,
		Email:      claims.Email,
		FullName:   claims.FullName,
		TenantCode: claims.TenantCode,
		Roles:      claims.Roles,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}
