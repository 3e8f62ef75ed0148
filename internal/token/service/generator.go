// Package service provides generators for the opaque secrets handed to clients.
package service

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Entropy, in random bytes, of the secrets the service hands out.
const (
	GenerationTokenBytes = 16
	AccessTokenBytes     = 48
)

// TokenGenerator produces unique, unguessable token strings.
type TokenGenerator interface {
	Generate() (string, error)
}

type hexGenerator struct {
	size int
}

// NewHexGenerator returns a generator of size random bytes rendered as lowercase hex.
func NewHexGenerator(size int) TokenGenerator {
	return &hexGenerator{size: size}
}

func (g *hexGenerator) Generate() (string, error) {
	b, err := randomBytes(g.size)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

type urlSafeGenerator struct {
	size int
}

// NewURLSafeGenerator returns a generator of size random bytes rendered as unpadded
// base64url, safe to embed in a URL path segment.
func NewURLSafeGenerator(size int) TokenGenerator {
	return &urlSafeGenerator{size: size}
}

func (g *urlSafeGenerator) Generate() (string, error) {
	b, err := randomBytes(g.size)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func randomBytes(size int) ([]byte, error) {
	if size < 1 {
		return nil, fmt.Errorf("token size must be positive, got %d", size)
	}
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return b, nil
}
