// Package dto provides data transfer objects for the document and access link endpoints.
package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	documentDomain "github.com/allisson/docgate/internal/document/domain"
	customValidation "github.com/allisson/docgate/internal/validation"
)

// ConsumeRequest spends a generation token on a document. Document is stored
// byte-for-byte as sent.
type ConsumeRequest struct {
	Token    string          `json:"token"`
	Document json.RawMessage `json:"document"`
}

// Validate checks if the consume request is valid.
func (r *ConsumeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Document, validation.Required, customValidation.NonEmptyJSONObject),
	)
}

// ToInput converts the request to the use case input.
func (r *ConsumeRequest) ToInput() *documentDomain.ConsumeInput {
	return &documentDomain.ConsumeInput{Token: r.Token, Payload: r.Document}
}

// CreateDocumentRequest stores a document for the authenticated owner.
type CreateDocumentRequest struct {
	Document json.RawMessage `json:"document"`
}

// Validate checks if the create request is valid.
func (r *CreateDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Document, validation.Required, customValidation.NonEmptyJSONObject),
	)
}

// ToInput converts the request to the use case input.
func (r *CreateDocumentRequest) ToInput(ownerID uuid.UUID) *documentDomain.PutDocumentInput {
	return &documentDomain.PutDocumentInput{OwnerID: &ownerID, Payload: r.Document}
}

// CreateAccessLinkRequest sets the limits of a new link. Omitted fields mean no limit.
type CreateAccessLinkRequest struct {
	ExpiresInSeconds *int `json:"expires_in_seconds"`
	MaxViews         *int `json:"max_views"`
}

// Validate checks if the link request is valid.
func (r *CreateAccessLinkRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ExpiresInSeconds, customValidation.Positive,
			validation.Max(documentDomain.MaxLinkLifetimeSeconds)),
		validation.Field(&r.MaxViews, customValidation.Positive, validation.Max(documentDomain.MaxLinkViews)),
	)
}

// ToInput converts the request to the use case input, anchoring expiry at now.
func (r *CreateAccessLinkRequest) ToInput(documentID uuid.UUID, now time.Time) *documentDomain.CreateAccessLinkInput {
	input := &documentDomain.CreateAccessLinkInput{
		DocumentID: documentID,
		MaxViews:   r.MaxViews,
	}
	if r.ExpiresInSeconds != nil {
		expiresAt := now.Add(time.Duration(*r.ExpiresInSeconds) * time.Second)
		input.ExpiresAt = &expiresAt
	}
	return input
}
