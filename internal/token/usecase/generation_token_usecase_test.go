package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	databaseMocks "github.com/allisson/docgate/internal/database/mocks"
	apperrors "github.com/allisson/docgate/internal/errors"
	tokenDomain "github.com/allisson/docgate/internal/token/domain"
	tokenService "github.com/allisson/docgate/internal/token/service"
	serviceMocks "github.com/allisson/docgate/internal/token/service/mocks"
	tokenMocks "github.com/allisson/docgate/internal/token/usecase/mocks"
)

func TestGenerationTokenUseCase_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreatesRequestedCount", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockRepo := tokenMocks.NewMockGenerationTokenRepository(t)
		issuer := uuid.Must(uuid.NewV7())

		mockTxManager.On("WithTx", ctx).Return(nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(tok *tokenDomain.GenerationToken) bool {
			return !tok.IsUsed && tok.UsedAt == nil && tok.CreatedBy != nil && *tok.CreatedBy == issuer
		})).Return(nil).Times(3)

		uc := NewGenerationTokenUseCase(mockTxManager, mockRepo, tokenService.NewHexGenerator(tokenService.GenerationTokenBytes))
		tokens, err := uc.Issue(ctx, 3, &issuer)

		require.NoError(t, err)
		require.Len(t, tokens, 3)
		seen := map[string]bool{}
		for _, tok := range tokens {
			assert.Len(t, tok.Token, 32)
			assert.False(t, tok.IsUsed)
			seen[tok.Token] = true
		}
		assert.Len(t, seen, 3)
	})

	t.Run("Success_ClampsToMaximum", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockRepo := tokenMocks.NewMockGenerationTokenRepository(t)
		mockGenerator := serviceMocks.NewMockTokenGenerator(t)

		mockTxManager.On("WithTx", ctx).Return(nil).Once()
		for i := range tokenDomain.MaxIssueCount {
			mockGenerator.On("Generate").Return(fmt.Sprintf("tok-%02d", i), nil).Once()
		}
		mockRepo.On("Create", ctx, mock.Anything).Return(nil).Times(tokenDomain.MaxIssueCount)

		uc := NewGenerationTokenUseCase(mockTxManager, mockRepo, mockGenerator)
		tokens, err := uc.Issue(ctx, 1000, nil)

		require.NoError(t, err)
		assert.Len(t, tokens, tokenDomain.MaxIssueCount)
		assert.Equal(t, "tok-00", tokens[0].Token)
		assert.Nil(t, tokens[0].CreatedBy)
	})

	t.Run("Error_CountBelowOne", func(t *testing.T) {
		for _, count := range []int{0, -1} {
			uc := NewGenerationTokenUseCase(
				databaseMocks.NewMockTxManager(t),
				tokenMocks.NewMockGenerationTokenRepository(t),
				serviceMocks.NewMockTokenGenerator(t),
			)
			tokens, err := uc.Issue(ctx, count, nil)

			assert.Nil(t, tokens)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		}
	})

	t.Run("Error_RepositoryFailurePropagates", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockRepo := tokenMocks.NewMockGenerationTokenRepository(t)
		mockGenerator := serviceMocks.NewMockTokenGenerator(t)
		dbErr := errors.New("disk full")

		mockTxManager.On("WithTx", ctx).Return(nil).Once()
		mockGenerator.On("Generate").Return("tok-1", nil).Once()
		mockRepo.On("Create", ctx, mock.Anything).Return(dbErr).Once()

		uc := NewGenerationTokenUseCase(mockTxManager, mockRepo, mockGenerator)
		tokens, err := uc.Issue(ctx, 2, nil)

		assert.Nil(t, tokens)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("Error_GeneratorFailure", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockGenerator := serviceMocks.NewMockTokenGenerator(t)

		mockTxManager.On("WithTx", ctx).Return(nil).Once()
		mockGenerator.On("Generate").Return("", errors.New("entropy unavailable")).Once()

		uc := NewGenerationTokenUseCase(mockTxManager, tokenMocks.NewMockGenerationTokenRepository(t), mockGenerator)
		_, err := uc.Issue(ctx, 1, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to generate token")
	})
}

func TestGenerationTokenUseCase_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Unused", func(t *testing.T) {
		mockRepo := tokenMocks.NewMockGenerationTokenRepository(t)
		stored := &tokenDomain.GenerationToken{ID: uuid.Must(uuid.NewV7()), Token: "abc123"}
		mockRepo.On("GetByToken", ctx, "abc123").Return(stored, nil).Once()

		uc := NewGenerationTokenUseCase(databaseMocks.NewMockTxManager(t), mockRepo, serviceMocks.NewMockTokenGenerator(t))
		tok, err := uc.Check(ctx, "abc123")

		require.NoError(t, err)
		assert.False(t, tok.IsUsed)
	})

	t.Run("Success_UsedTokenIsReportedNotRejected", func(t *testing.T) {
		mockRepo := tokenMocks.NewMockGenerationTokenRepository(t)
		usedAt := time.Now().UTC()
		stored := &tokenDomain.GenerationToken{Token: "abc123", IsUsed: true, UsedAt: &usedAt}
		mockRepo.On("GetByToken", ctx, "abc123").Return(stored, nil).Once()

		uc := NewGenerationTokenUseCase(databaseMocks.NewMockTxManager(t), mockRepo, serviceMocks.NewMockTokenGenerator(t))
		tok, err := uc.Check(ctx, "abc123")

		require.NoError(t, err)
		assert.True(t, tok.IsUsed)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockRepo := tokenMocks.NewMockGenerationTokenRepository(t)
		mockRepo.On("GetByToken", ctx, "missing").Return(nil, tokenDomain.ErrGenerationTokenNotFound).Once()

		uc := NewGenerationTokenUseCase(databaseMocks.NewMockTxManager(t), mockRepo, serviceMocks.NewMockTokenGenerator(t))
		_, err := uc.Check(ctx, "missing")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Error_BlankToken", func(t *testing.T) {
		uc := NewGenerationTokenUseCase(
			databaseMocks.NewMockTxManager(t),
			tokenMocks.NewMockGenerationTokenRepository(t),
			serviceMocks.NewMockTokenGenerator(t),
		)
		_, err := uc.Check(ctx, "")

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestGenerationTokenUseCase_List(t *testing.T) {
	ctx := context.Background()
	mockRepo := tokenMocks.NewMockGenerationTokenRepository(t)
	expected := []*tokenDomain.GenerationToken{{Token: "b"}, {Token: "a"}}
	mockRepo.On("List", ctx, 0, 50).Return(expected, nil).Once()

	uc := NewGenerationTokenUseCase(databaseMocks.NewMockTxManager(t), mockRepo, serviceMocks.NewMockTokenGenerator(t))
	tokens, err := uc.List(ctx, 0, 50)

	require.NoError(t, err)
	assert.Equal(t, expected, tokens)
}
