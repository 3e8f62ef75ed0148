package service

import (
	"crypto/sha256"
	"encoding/hex"

	apperrors "github.com/allisson/docgate/internal/errors"
	tokenService "github.com/allisson/docgate/internal/token/service"
)

// SessionTokenBytes is the entropy of a session bearer token.
const SessionTokenBytes = 32

// sessionTokens issues bearer tokens from the same base64url generator as access
// links and keeps only their SHA-256 digest.
type sessionTokens struct {
	generator tokenService.TokenGenerator
}

func (s *sessionTokens) GenerateToken() (plainToken string, tokenHash string, err error) {
	plainToken, err = s.generator.Generate()
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate session token")
	}
	return plainToken, s.HashToken(plainToken), nil
}

func (s *sessionTokens) HashToken(plainToken string) string {
	sum := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(sum[:])
}

// NewTokenService creates a TokenService producing SessionTokenBytes of entropy.
func NewTokenService() TokenService {
	return NewTokenServiceWithGenerator(tokenService.NewURLSafeGenerator(SessionTokenBytes))
}

// NewTokenServiceWithGenerator creates a TokenService on top of generator.
func NewTokenServiceWithGenerator(generator tokenService.TokenGenerator) TokenService {
	return &sessionTokens{generator: generator}
}
