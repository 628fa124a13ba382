package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHasher_Hash(t *testing.T) {
	hasher := NewPasswordHasher("shared-hashing-secret-at-least-32-chars!")

	t.Run("is deterministic for the same input", func(t *testing.T) {
		first := hasher.Hash("correct horse battery staple")
		second := hasher.Hash("correct horse battery staple")

		assert.Equal(t, first, second)
		assert.Len(t, first, 64)
	})

	t.Run("differs per plaintext", func(t *testing.T) {
		assert.NotEqual(t, hasher.Hash("password-a"), hasher.Hash("password-b"))
	})

	t.Run("differs per secret", func(t *testing.T) {
		other := NewPasswordHasher("a-different-hashing-secret-32-chars-long")
		assert.NotEqual(t, hasher.Hash("same-password"), other.Hash("same-password"))
	})
}

func TestPasswordHasher_Compare(t *testing.T) {
	hasher := NewPasswordHasher("shared-hashing-secret-at-least-32-chars!")
	stored := hasher.Hash("hunter2")

	assert.True(t, hasher.Compare("hunter2", stored))
	assert.False(t, hasher.Compare("hunter3", stored))
	assert.False(t, hasher.Compare("hunter2", "not-a-real-hash"))
}
