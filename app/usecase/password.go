package usecase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// PasswordHasher computes the deterministic secret-keyed credential
// hash stored in tenant user rows. The scheme is kept as-is for
// compatibility with existing credential data; changing it would
// invalidate every stored hash across all tenants.
type PasswordHasher struct {
	secret []byte
}

// NewPasswordHasher creates a hasher keyed with the configured secret
func NewPasswordHasher(secret string) *PasswordHasher {
	return &PasswordHasher{secret: []byte(secret)}
}

// Hash returns the hex HMAC-SHA256 of the plaintext under the secret
func (h *PasswordHasher) Hash(plaintext string) string {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(plaintext))
	return hex.EncodeToString(mac.Sum(nil))
}

// Compare checks a plaintext against a stored hash in constant time
func (h *PasswordHasher) Compare(plaintext, storedHash string) bool {
	computed := h.Hash(plaintext)
	return hmac.Equal([]byte(computed), []byte(storedHash))
}
