// Package dto provides data transfer objects for the staff user endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	userDomain "github.com/allisson/docgate/internal/user/domain"
)

// CreateUserRequest contains the parameters for creating a staff user.
// HasAccess defaults to true when omitted.
type CreateUserRequest struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"` //nolint:gosec // request field
	Email     *string `json:"email"`
	IsAdmin   bool    `json:"is_admin"`
	HasAccess *bool   `json:"has_access"`
}

// Validate checks presence only; the use case applies the full username, password and email rules.
func (r *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// ToInput converts the request to a use case input.
func (r *CreateUserRequest) ToInput() *userDomain.CreateUserInput {
	hasAccess := true
	if r.HasAccess != nil {
		hasAccess = *r.HasAccess
	}
	return &userDomain.CreateUserInput{
		Username:  r.Username,
		Password:  r.Password,
		Email:     r.Email,
		HasAccess: hasAccess,
		IsAdmin:   r.IsAdmin,
	}
}

// SetAccessRequest grants or revokes a user's access.
type SetAccessRequest struct {
	HasAccess *bool `json:"has_access"`
}

// Validate checks if the request is valid.
func (r *SetAccessRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.HasAccess, validation.NotNil),
	)
}
