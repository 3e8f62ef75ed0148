package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/docgate/internal/database"
	documentDomain "github.com/allisson/docgate/internal/document/domain"
	tokenService "github.com/allisson/docgate/internal/token/service"
	customValidation "github.com/allisson/docgate/internal/validation"
)

type accessLinkUseCase struct {
	txManager database.TxManager
	writer    *documentWriter
}

// Resolve checks expiry before the quota, so an expired link reports expiry even when
// its views are also used up. Neither refusal changes the link.
func (a *accessLinkUseCase) Resolve(
	ctx context.Context,
	accessToken string,
	now time.Time,
) (*documentDomain.Document, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, documentDomain.ErrAccessLinkNotFound
	}

	var doc *documentDomain.Document
	err := a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		link, err := a.writer.accessLinkRepo.GetByAccessToken(txCtx, accessToken)
		if err != nil {
			return err
		}

		if link.IsExpired(now) {
			return documentDomain.ErrAccessLinkExpired
		}
		if link.IsExhausted() {
			return documentDomain.ErrAccessLinkQuotaExceeded
		}

		if err := a.writer.accessLinkRepo.IncrementViewCount(txCtx, link.ID); err != nil {
			return err
		}

		doc, err = a.writer.documentRepo.Get(txCtx, link.DocumentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

func (a *accessLinkUseCase) Create(
	ctx context.Context,
	input *documentDomain.CreateAccessLinkInput,
) (*documentDomain.AccessLink, error) {
	now := time.Now().UTC()

	err := validation.ValidateStruct(input,
		validation.Field(&input.MaxViews, customValidation.Positive, validation.Max(documentDomain.MaxLinkViews)),
		validation.Field(&input.ExpiresAt, validation.By(func(value any) error {
			expiresAt, ok := value.(*time.Time)
			if ok && expiresAt != nil && !expiresAt.After(now) {
				return validation.NewError("validation_expires_at_past", "must be in the future")
			}
			return nil
		})),
	)
	if err != nil {
		return nil, customValidation.WrapValidationError(err)
	}

	return a.writer.mintLink(ctx, input.DocumentID, input.ExpiresAt, input.MaxViews, now)
}

// ListByDocument reports ErrDocumentNotFound for an unknown document rather than an
// empty list.
func (a *accessLinkUseCase) ListByDocument(
	ctx context.Context,
	documentID uuid.UUID,
) ([]*documentDomain.AccessLink, error) {
	var links []*documentDomain.AccessLink
	err := a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := a.writer.documentRepo.Get(txCtx, documentID); err != nil {
			return err
		}

		var err error
		links, err = a.writer.accessLinkRepo.ListByDocument(txCtx, documentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

// NewAccessLinkUseCase creates a new AccessLinkUseCase. generator mints access tokens.
func NewAccessLinkUseCase(
	txManager database.TxManager,
	documentRepo DocumentRepository,
	accessLinkRepo AccessLinkRepository,
	generator tokenService.TokenGenerator,
) AccessLinkUseCase {
	return &accessLinkUseCase{
		txManager: txManager,
		writer: &documentWriter{
			documentRepo:   documentRepo,
			accessLinkRepo: accessLinkRepo,
			generator:      generator,
		},
	}
}
