package service

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokenMocks "github.com/allisson/docgate/internal/token/service/mocks"
)

func TestPasswordService(t *testing.T) {
	service := NewPasswordService()

	hashed, err := service.HashPassword("Correct-Horse-1")
	require.NoError(t, err)
	assert.Contains(t, hashed, "$argon2id$")
	assert.NotEqual(t, "Correct-Horse-1", hashed)

	assert.True(t, service.ComparePassword("Correct-Horse-1", hashed))
	assert.False(t, service.ComparePassword("correct-horse-1", hashed))
	assert.False(t, service.ComparePassword("Correct-Horse-1", "not-a-phc-string"))

	again, err := service.HashPassword("Correct-Horse-1")
	require.NoError(t, err)
	assert.NotEqual(t, hashed, again, "salt must differ per hash")
}

func TestTokenService(t *testing.T) {
	service := NewTokenService()

	t.Run("GenerateToken", func(t *testing.T) {
		plain, hash, err := service.GenerateToken()
		require.NoError(t, err)

		decoded, err := base64.RawURLEncoding.DecodeString(plain)
		require.NoError(t, err)
		assert.Len(t, decoded, 32)
		assert.Len(t, hash, 64)
		assert.Equal(t, service.HashToken(plain), hash)

		other, _, err := service.GenerateToken()
		require.NoError(t, err)
		assert.NotEqual(t, plain, other)
	})

	t.Run("HashToken_KnownVector", func(t *testing.T) {
		assert.Equal(t,
			"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
			service.HashToken(""),
		)
	})
}

func TestTokenService_GeneratorFailure(t *testing.T) {
	generator := tokenMocks.NewMockTokenGenerator(t)
	generator.On("Generate").Return("", errors.New("entropy exhausted")).Once()

	plain, hash, err := NewTokenServiceWithGenerator(generator).GenerateToken()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate session token")
	assert.Empty(t, plain)
	assert.Empty(t, hash)
}
