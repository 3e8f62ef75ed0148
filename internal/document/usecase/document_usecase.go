package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/docgate/internal/database"
	documentDomain "github.com/allisson/docgate/internal/document/domain"
	tokenService "github.com/allisson/docgate/internal/token/service"
)

type documentUseCase struct {
	txManager database.TxManager
	writer    *documentWriter
}

func (d *documentUseCase) Put(
	ctx context.Context,
	input *documentDomain.PutDocumentInput,
) (*documentDomain.Document, error) {
	if err := validatePayload(input.Payload); err != nil {
		return nil, err
	}
	return d.writer.putDocument(ctx, input.OwnerID, input.Payload, time.Now().UTC())
}

func (d *documentUseCase) Create(
	ctx context.Context,
	input *documentDomain.PutDocumentInput,
) (*documentDomain.CreateDocumentOutput, error) {
	if err := validateSubmission(input.Payload); err != nil {
		return nil, err
	}

	var output *documentDomain.CreateDocumentOutput
	err := d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()

		doc, err := d.writer.putDocument(txCtx, input.OwnerID, input.Payload, now)
		if err != nil {
			return err
		}
		link, err := d.writer.mintLink(txCtx, doc.ID, nil, nil, now)
		if err != nil {
			return err
		}

		output = &documentDomain.CreateDocumentOutput{Document: doc, AccessLink: link}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

func (d *documentUseCase) Get(ctx context.Context, id uuid.UUID) (*documentDomain.Document, error) {
	return d.writer.documentRepo.Get(ctx, id)
}

func (d *documentUseCase) List(ctx context.Context, offset, limit int) ([]*documentDomain.Document, error) {
	return d.writer.documentRepo.List(ctx, offset, limit)
}

func (d *documentUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return d.writer.documentRepo.Delete(ctx, id)
}

// NewDocumentUseCase creates a new DocumentUseCase. generator mints access tokens.
func NewDocumentUseCase(
	txManager database.TxManager,
	documentRepo DocumentRepository,
	accessLinkRepo AccessLinkRepository,
	generator tokenService.TokenGenerator,
) DocumentUseCase {
	return &documentUseCase{
		txManager: txManager,
		writer: &documentWriter{
			documentRepo:   documentRepo,
			accessLinkRepo: accessLinkRepo,
			generator:      generator,
		},
	}
}
