package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	databaseMocks "github.com/allisson/docgate/internal/database/mocks"
	documentDomain "github.com/allisson/docgate/internal/document/domain"
	documentMocks "github.com/allisson/docgate/internal/document/usecase/mocks"
	apperrors "github.com/allisson/docgate/internal/errors"
	tokenDomain "github.com/allisson/docgate/internal/token/domain"
	serviceMocks "github.com/allisson/docgate/internal/token/service/mocks"
	tokenMocks "github.com/allisson/docgate/internal/token/usecase/mocks"
)

const testPayload = `{"name":"Jan","surname":"Kowalski","pesel":"90010112345","extra":{"nested":[1,2]}}`

type consumptionFixture struct {
	txManager *databaseMocks.MockTxManager
	tokenRepo *tokenMocks.MockGenerationTokenRepository
	docRepo   *documentMocks.MockDocumentRepository
	linkRepo  *documentMocks.MockAccessLinkRepository
	generator *serviceMocks.MockTokenGenerator
	useCase   ConsumptionUseCase
}

func newConsumptionFixture(t *testing.T) *consumptionFixture {
	f := &consumptionFixture{
		txManager: databaseMocks.NewMockTxManager(t),
		tokenRepo: tokenMocks.NewMockGenerationTokenRepository(t),
		docRepo:   documentMocks.NewMockDocumentRepository(t),
		linkRepo:  documentMocks.NewMockAccessLinkRepository(t),
		generator: serviceMocks.NewMockTokenGenerator(t),
	}
	f.useCase = NewConsumptionUseCase(f.txManager, f.tokenRepo, f.docRepo, f.linkRepo, f.generator)
	return f
}

func TestConsumptionUseCase_Consume(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_StoresPayloadAndMintsLink", func(t *testing.T) {
		f := newConsumptionFixture(t)
		input := &documentDomain.ConsumeInput{Token: "abc123", Payload: json.RawMessage(testPayload)}

		var storedDoc *documentDomain.Document
		f.txManager.On("WithTx", ctx).Return(nil).Once()
		f.tokenRepo.On("MarkUsed", ctx, "abc123", mock.AnythingOfType("time.Time")).
			Return(&tokenDomain.GenerationToken{Token: "abc123", IsUsed: true}, nil).Once()
		f.docRepo.On("Create", ctx, mock.AnythingOfType("*domain.Document")).
			Run(func(args mock.Arguments) { storedDoc = args.Get(1).(*documentDomain.Document) }).
			Return(nil).Once()
		f.generator.On("Generate").Return("access-token-1", nil).Once()
		f.linkRepo.On("Create", ctx, mock.MatchedBy(func(link *documentDomain.AccessLink) bool {
			return link.AccessToken == "access-token-1" &&
				link.ExpiresAt == nil && link.MaxViews == nil && link.ViewCount == 0
		})).Return(nil).Once()

		output, err := f.useCase.Consume(ctx, input)

		require.NoError(t, err)
		require.NotNil(t, storedDoc)
		assert.Equal(t, storedDoc.ID, output.DocumentID)
		assert.Equal(t, "access-token-1", output.AccessToken)
		assert.Equal(t, testPayload, string(storedDoc.Payload))
		assert.Nil(t, storedDoc.OwnerID)
		assert.Equal(t, "Jan", storedDoc.Name)
		assert.Equal(t, "Kowalski", storedDoc.Surname)
		assert.Equal(t, "90010112345", storedDoc.Pesel)
	})

	t.Run("Error_TokenAlreadyUsed", func(t *testing.T) {
		f := newConsumptionFixture(t)

		f.txManager.On("WithTx", ctx).Return(nil).Once()
		f.tokenRepo.On("MarkUsed", ctx, "abc123", mock.Anything).
			Return(nil, tokenDomain.ErrGenerationTokenAlreadyUsed).Once()

		output, err := f.useCase.Consume(ctx, &documentDomain.ConsumeInput{
			Token:   "abc123",
			Payload: json.RawMessage(testPayload),
		})

		assert.Nil(t, output)
		assert.ErrorIs(t, err, tokenDomain.ErrGenerationTokenAlreadyUsed)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Error_TokenNotFound", func(t *testing.T) {
		f := newConsumptionFixture(t)

		f.txManager.On("WithTx", ctx).Return(nil).Once()
		f.tokenRepo.On("MarkUsed", ctx, "nope", mock.Anything).
			Return(nil, tokenDomain.ErrGenerationTokenNotFound).Once()

		_, err := f.useCase.Consume(ctx, &documentDomain.ConsumeInput{
			Token:   "nope",
			Payload: json.RawMessage(testPayload),
		})

		assert.ErrorIs(t, err, tokenDomain.ErrGenerationTokenNotFound)
	})

	t.Run("Error_DocumentStoreFailurePropagates", func(t *testing.T) {
		f := newConsumptionFixture(t)
		storeErr := errors.New("disk full")

		f.txManager.On("WithTx", ctx).Return(nil).Once()
		f.tokenRepo.On("MarkUsed", ctx, "abc123", mock.Anything).
			Return(&tokenDomain.GenerationToken{Token: "abc123", IsUsed: true}, nil).Once()
		f.docRepo.On("Create", ctx, mock.Anything).Return(storeErr).Once()

		_, err := f.useCase.Consume(ctx, &documentDomain.ConsumeInput{
			Token:   "abc123",
			Payload: json.RawMessage(testPayload),
		})

		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("Error_LinkGenerationFailurePropagates", func(t *testing.T) {
		f := newConsumptionFixture(t)

		f.txManager.On("WithTx", ctx).Return(nil).Once()
		f.tokenRepo.On("MarkUsed", ctx, "abc123", mock.Anything).
			Return(&tokenDomain.GenerationToken{Token: "abc123", IsUsed: true}, nil).Once()
		f.docRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.generator.On("Generate").Return("", errors.New("entropy exhausted")).Once()

		_, err := f.useCase.Consume(ctx, &documentDomain.ConsumeInput{
			Token:   "abc123",
			Payload: json.RawMessage(testPayload),
		})

		assert.ErrorContains(t, err, "failed to generate access token")
	})

	invalid := []struct {
		name    string
		token   string
		payload string
	}{
		{name: "EmptyToken", token: "", payload: testPayload},
		{name: "BlankToken", token: "   ", payload: testPayload},
		{name: "EmptyPayload", token: "abc123", payload: ""},
		{name: "ArrayPayload", token: "abc123", payload: `[1,2]`},
		{name: "EmptyObjectPayload", token: "abc123", payload: `{}`},
		{name: "MalformedPayload", token: "abc123", payload: `{"name":`},
	}
	for _, tc := range invalid {
		t.Run("Error_Invalid"+tc.name, func(t *testing.T) {
			f := newConsumptionFixture(t)

			_, err := f.useCase.Consume(ctx, &documentDomain.ConsumeInput{
				Token:   tc.token,
				Payload: json.RawMessage(tc.payload),
			})

			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestConsumptionUseCase_TransactionFailure(t *testing.T) {
	ctx := context.Background()
	f := newConsumptionFixture(t)
	txErr := errors.New("could not begin")

	f.txManager.On("WithTx", ctx).Return(txErr).Once()

	_, err := f.useCase.Consume(ctx, &documentDomain.ConsumeInput{
		Token:   "abc123",
		Payload: json.RawMessage(testPayload),
	})

	assert.ErrorIs(t, err, txErr)
	f.docRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
