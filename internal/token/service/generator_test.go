package service

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexGenerator(t *testing.T) {
	gen := NewHexGenerator(GenerationTokenBytes)

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		token, err := gen.Generate()
		require.NoError(t, err)
		assert.Len(t, token, 32)

		raw, err := hex.DecodeString(token)
		require.NoError(t, err)
		assert.Len(t, raw, GenerationTokenBytes)

		_, dup := seen[token]
		assert.False(t, dup)
		seen[token] = struct{}{}
	}
}

func TestURLSafeGenerator(t *testing.T) {
	gen := NewURLSafeGenerator(AccessTokenBytes)

	token, err := gen.Generate()
	require.NoError(t, err)
	assert.Len(t, token, 64)
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "=")

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, AccessTokenBytes)
}

func TestGenerator_InvalidSize(t *testing.T) {
	_, err := NewHexGenerator(0).Generate()
	assert.Error(t, err)

	_, err = NewURLSafeGenerator(-1).Generate()
	assert.Error(t, err)
}
