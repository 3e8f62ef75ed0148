// Package dto provides data transfer objects for the generation token endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/docgate/internal/validation"
)

// IssueTokensRequest asks for a batch of generation tokens. Counts above the
// batch limit are clamped by the use case.
type IssueTokensRequest struct {
	Count int `json:"count"`
}

// Validate checks if the issue request is valid.
func (r *IssueTokensRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Count, validation.Required.Error("count must be at least 1"), validation.Min(1)),
	)
}

// ValidateTokenRequest carries the token to inspect.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// Validate checks if the validate request is valid.
func (r *ValidateTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, validation.Required, customValidation.NotBlank),
	)
}
