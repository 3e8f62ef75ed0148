package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/docgate/internal/database"
	apperrors "github.com/allisson/docgate/internal/errors"
	tokenDomain "github.com/allisson/docgate/internal/token/domain"
	tokenService "github.com/allisson/docgate/internal/token/service"
	customValidation "github.com/allisson/docgate/internal/validation"
)

type generationTokenUseCase struct {
	txManager database.TxManager
	repo      GenerationTokenRepository
	generator tokenService.TokenGenerator
}

// Issue generates and persists a batch of unused tokens.
func (g *generationTokenUseCase) Issue(
	ctx context.Context,
	count int,
	issuerID *uuid.UUID,
) ([]*tokenDomain.GenerationToken, error) {
	err := validation.Validate(count, customValidation.Positive)
	if err != nil {
		return nil, customValidation.WrapValidationError(err)
	}
	count = tokenDomain.ClampIssueCount(count)

	tokens := make([]*tokenDomain.GenerationToken, 0, count)
	now := time.Now().UTC()

	err = g.txManager.WithTx(ctx, func(txCtx context.Context) error {
		tokens = tokens[:0]
		for range count {
			value, err := g.generator.Generate()
			if err != nil {
				return apperrors.Wrap(err, "failed to generate token")
			}
			id, err := uuid.NewV7()
			if err != nil {
				return apperrors.Wrap(err, "failed to generate UUID for generation token")
			}

			token := &tokenDomain.GenerationToken{
				ID:        id,
				Token:     value,
				CreatedAt: now,
				CreatedBy: issuerID,
			}
			if err := g.repo.Create(txCtx, token); err != nil {
				return err
			}
			tokens = append(tokens, token)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue generation tokens")
	}

	return tokens, nil
}

// Check looks a token up without changing it.
func (g *generationTokenUseCase) Check(ctx context.Context, token string) (*tokenDomain.GenerationToken, error) {
	if err := validation.Validate(token, validation.Required, customValidation.NoWhitespace); err != nil {
		return nil, customValidation.WrapValidationError(err)
	}
	return g.repo.GetByToken(ctx, token)
}

// List retrieves tokens newest first.
func (g *generationTokenUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*tokenDomain.GenerationToken, error) {
	return g.repo.List(ctx, offset, limit)
}

// NewGenerationTokenUseCase creates a new GenerationTokenUseCase.
func NewGenerationTokenUseCase(
	txManager database.TxManager,
	repo GenerationTokenRepository,
	generator tokenService.TokenGenerator,
) GenerationTokenUseCase {
	return &generationTokenUseCase{
		txManager: txManager,
		repo:      repo,
		generator: generator,
	}
}
