// Package domain defines staff sessions and authentication errors.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is an issued bearer token. Only the SHA-256 hash of the token is stored.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"token_hash"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired reports whether the session is no longer valid at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// LoginInput holds staff credentials.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput holds the plain bearer token, shown once.
type LoginOutput struct {
	PlainToken string
	ExpiresAt  time.Time
}
