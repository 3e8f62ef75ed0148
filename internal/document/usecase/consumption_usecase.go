package usecase

import (
	"context"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/docgate/internal/database"
	documentDomain "github.com/allisson/docgate/internal/document/domain"
	tokenService "github.com/allisson/docgate/internal/token/service"
	customValidation "github.com/allisson/docgate/internal/validation"
)

type consumptionUseCase struct {
	txManager database.TxManager
	tokenRepo GenerationTokenConsumer
	writer    *documentWriter
}

func (c *consumptionUseCase) Consume(
	ctx context.Context,
	input *documentDomain.ConsumeInput,
) (*documentDomain.ConsumeOutput, error) {
	err := validation.Validate(input.Token, validation.Required.Error("token is required"), customValidation.NotBlank)
	if err != nil {
		return nil, customValidation.WrapValidationError(err)
	}
	if err := validateSubmission(input.Payload); err != nil {
		return nil, err
	}

	var output *documentDomain.ConsumeOutput
	err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()

		if _, err := c.tokenRepo.MarkUsed(txCtx, input.Token, now); err != nil {
			return err
		}

		doc, err := c.writer.putDocument(txCtx, nil, input.Payload, now)
		if err != nil {
			return err
		}

		link, err := c.writer.mintLink(txCtx, doc.ID, nil, nil, now)
		if err != nil {
			return err
		}

		output = &documentDomain.ConsumeOutput{
			DocumentID:  doc.ID,
			AccessToken: link.AccessToken,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// NewConsumptionUseCase creates a new ConsumptionUseCase. generator mints access tokens.
func NewConsumptionUseCase(
	txManager database.TxManager,
	tokenRepo GenerationTokenConsumer,
	documentRepo DocumentRepository,
	accessLinkRepo AccessLinkRepository,
	generator tokenService.TokenGenerator,
) ConsumptionUseCase {
	return &consumptionUseCase{
		txManager: txManager,
		tokenRepo: tokenRepo,
		writer: &documentWriter{
			documentRepo:   documentRepo,
			accessLinkRepo: accessLinkRepo,
			generator:      generator,
		},
	}
}
