// Package domain defines the staff user entity.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff account. HasAccess gates login and owner document creation;
// IsAdmin gates the administration routes.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        *string   `json:"email,omitempty"`
	PasswordHash string    `json:"password_hash"`
	HasAccess    bool      `json:"has_access"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateUserInput holds the fields accepted when creating a user.
type CreateUserInput struct {
	Username  string
	Password  string
	Email     *string
	HasAccess bool
	IsAdmin   bool
}
