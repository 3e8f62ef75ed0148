package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	documentDomain "github.com/allisson/docgate/internal/document/domain"
	apperrors "github.com/allisson/docgate/internal/errors"
	tokenService "github.com/allisson/docgate/internal/token/service"
	customValidation "github.com/allisson/docgate/internal/validation"
)

// documentWriter holds the write path shared by consumption, owner creation and
// admin link minting. Callers provide the transaction through ctx.
type documentWriter struct {
	documentRepo   DocumentRepository
	accessLinkRepo AccessLinkRepository
	generator      tokenService.TokenGenerator
}

// validatePayload accepts any JSON object.
func validatePayload(payload json.RawMessage) error {
	return checkPayload(payload, customValidation.JSONObject)
}

// validateSubmission is used where a person submits a document, which must carry at
// least one field.
func validateSubmission(payload json.RawMessage) error {
	return checkPayload(payload, customValidation.NonEmptyJSONObject)
}

func checkPayload(payload json.RawMessage, shape validation.Rule) error {
	err := validation.Validate(payload, validation.Required.Error("payload is required"), shape)
	if err != nil {
		return customValidation.WrapValidationError(err)
	}
	return nil
}

func (w *documentWriter) putDocument(
	ctx context.Context,
	ownerID *uuid.UUID,
	payload json.RawMessage,
	now time.Time,
) (*documentDomain.Document, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate UUID for document")
	}
	doc := documentDomain.NewDocument(id, ownerID, payload, now)
	if err := w.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (w *documentWriter) mintLink(
	ctx context.Context,
	documentID uuid.UUID,
	expiresAt *time.Time,
	maxViews *int,
	now time.Time,
) (*documentDomain.AccessLink, error) {
	accessToken, err := w.generator.Generate()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate access token")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate UUID for access link")
	}

	link := &documentDomain.AccessLink{
		ID:          id,
		DocumentID:  documentID,
		AccessToken: accessToken,
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
		MaxViews:    maxViews,
	}
	if err := w.accessLinkRepo.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}
