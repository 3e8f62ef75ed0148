package dto

import "time"

// LoginResponse contains the bearer token of a new session.
// The token is only returned once; the server keeps its hash.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
