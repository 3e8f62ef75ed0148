package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	databaseMocks "github.com/allisson/docgate/internal/database/mocks"
	documentDomain "github.com/allisson/docgate/internal/document/domain"
	documentMocks "github.com/allisson/docgate/internal/document/usecase/mocks"
	apperrors "github.com/allisson/docgate/internal/errors"
	serviceMocks "github.com/allisson/docgate/internal/token/service/mocks"
)

func intPtr(v int) *int {
	return &v
}

func timePtr(v time.Time) *time.Time {
	return &v
}

type accessLinkFixture struct {
	txManager *databaseMocks.MockTxManager
	docRepo   *documentMocks.MockDocumentRepository
	linkRepo  *documentMocks.MockAccessLinkRepository
	generator *serviceMocks.MockTokenGenerator
	useCase   AccessLinkUseCase
}

func newAccessLinkFixture(t *testing.T) *accessLinkFixture {
	f := &accessLinkFixture{
		txManager: databaseMocks.NewMockTxManager(t),
		docRepo:   documentMocks.NewMockDocumentRepository(t),
		linkRepo:  documentMocks.NewMockAccessLinkRepository(t),
		generator: serviceMocks.NewMockTokenGenerator(t),
	}
	f.useCase = NewAccessLinkUseCase(f.txManager, f.docRepo, f.linkRepo, f.generator)
	return f
}

func TestAccessLinkUseCase_Resolve(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	docID := uuid.Must(uuid.NewV7())
	doc := documentDomain.NewDocument(docID, nil, json.RawMessage(testPayload), now)

	t.Run("Success_SpendsOneView", func(t *testing.T) {
		f := newAccessLinkFixture(t)
		link := &documentDomain.AccessLink{
			ID:          uuid.Must(uuid.NewV7()),
			DocumentID:  docID,
			AccessToken: "tok",
			MaxViews:    intPtr(3),
			ViewCount:   2,
			ExpiresAt:   timePtr(now.Add(time.Hour)),
		}

		f.txManager.On("WithTx", ctx).Return(nil).Once()
		f.linkRepo.On("GetByAccessToken", ctx, "tok").Return(link, nil).Once()
		f.linkRepo.On("IncrementViewCount", ctx, link.ID).Return(nil).Once()
		f.docRepo.On("Get", ctx, docID).Return(doc, nil).Once()

		got, err := f.useCase.Resolve(ctx, "tok", now)

		require.NoError(t, err)
		assert.Equal(t, testPayload, string(got.Payload))
	})

	t.Run("Success_UnlimitedLink", func(t *testing.T) {
		f := newAccessLinkFixture(t)
		link := &documentDomain.AccessLink{ID: uuid.Must(uuid.NewV7()), DocumentID: docID, ViewCount: 1000}

		f.txManager.On("WithTx", ctx).Return(nil).Once()
		f.linkRepo.On("GetByAccessToken", ctx, "tok").Return(link, nil).Once()
		f.linkRepo.On("IncrementViewCount", ctx, link.ID).Return(nil).Once()
		f.docRepo.On("Get", ctx, docID).Return(doc, nil).Once()

		_, err := f.useCase.Resolve(ctx, "tok", now)
		assert.NoError(t, err)
	})

	t.Run("Success_AtExactExpiry", func(t *testing.T) {
		f := newAccessLinkFixture(t)
		link := &documentDomain.AccessLink{ID: uuid.Must(uuid.NewV7()), DocumentID: docID, ExpiresAt: timePtr(now)}

		f.txManager.On("WithTx", ctx).Return(nil).Once()
		f.linkRepo.On("GetByAccessToken", ctx, "tok").Return(link, nil).Once()
		f.linkRepo.On("IncrementViewCount", ctx, link.ID).Return(nil).Once()
		f.docRepo.On("Get", ctx, docID).Return(doc, nil).Once()

		_, err := f.useCase.Resolve(ctx, "tok", now)
		assert.NoError(t, err)
	})

	t.Run("Error_UnknownToken", func(t *testing.T) {
		f := newAccessLinkFixture(t)

		f.txManager.On("WithTx", ctx).Return(nil).Once()
		f.linkRepo.On("GetByAccessToken", ctx, "missing").Return(nil, documentDomain.ErrAccessLinkNotFound).Once()

		_, err := f.useCase.Resolve(ctx, "missing", now)
		assert.ErrorIs(t, err, documentDomain.ErrAccessLinkNotFound)
	})

	t.Run("Error_BlankTokenIsNotFound", func(t *testing.T) {
		f := newAccessLinkFixture(t)

		_, err := f.useCase.Resolve(ctx, "  ", now)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Error_ExpiredWinsOverExhausted", func(t *testing.T) {
		f := newAccessLinkFixture(t)
		link := &documentDomain.AccessLink{
			ID:         uuid.Must(uuid.NewV7()),
			DocumentID: docID,
			ExpiresAt:  timePtr(now.Add(-time.Second)),
			MaxViews:   intPtr(1),
			ViewCount:  1,
		}

		f.txManager.On("WithTx", ctx).Return(nil).Once()
		f.linkRepo.On("GetByAccessToken", ctx, "tok").Return(link, nil).Once()

		_, err := f.useCase.Resolve(ctx, "tok", now)

		assert.ErrorIs(t, err, documentDomain.ErrAccessLinkExpired)
		assert.Equal(t, "link_expired", apperrors.Code(err))
		f.linkRepo.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything)
	})

	t.Run("Error_QuotaExhausted", func(t *testing.T) {
		f := newAccessLinkFixture(t)
		link := &documentDomain.AccessLink{
			ID:         uuid.Must(uuid.NewV7()),
			DocumentID: docID,
			MaxViews:   intPtr(2),
			ViewCount:  2,
		}

		f.txManager.On("WithTx", ctx).Return(nil).Once()
		f.linkRepo.On("GetByAccessToken", ctx, "tok").Return(link, nil).Once()

		_, err := f.useCase.Resolve(ctx, "tok", now)

		assert.ErrorIs(t, err, documentDomain.ErrAccessLinkQuotaExceeded)
		assert.ErrorIs(t, err, apperrors.ErrGone)
	})

	t.Run("Error_LostIncrementRace", func(t *testing.T) {
		f := newAccessLinkFixture(t)
		link := &documentDomain.AccessLink{
			ID:         uuid.Must(uuid.NewV7()),
			DocumentID: docID,
			MaxViews:   intPtr(1),
		}

		f.txManager.On("WithTx", ctx).Return(nil).Once()
		f.linkRepo.On("GetByAccessToken", ctx, "tok").Return(link, nil).Once()
		f.linkRepo.On("IncrementViewCount", ctx, link.ID).Return(documentDomain.ErrAccessLinkQuotaExceeded).Once()

		_, err := f.useCase.Resolve(ctx, "tok", now)

		assert.ErrorIs(t, err, documentDomain.ErrAccessLinkQuotaExceeded)
		f.docRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestAccessLinkUseCase_Create(t *testing.T) {
	ctx := context.Background()
	docID := uuid.Must(uuid.NewV7())

	t.Run("Success_WithLimits", func(t *testing.T) {
		f := newAccessLinkFixture(t)
		expiresAt := time.Now().UTC().Add(time.Hour)

		f.generator.On("Generate").Return("fresh", nil).Once()
		f.linkRepo.On("Create", ctx, mock.MatchedBy(func(link *documentDomain.AccessLink) bool {
			return link.DocumentID == docID && link.AccessToken == "fresh" &&
				link.MaxViews != nil && *link.MaxViews == 5 &&
				link.ExpiresAt != nil && link.ExpiresAt.Equal(expiresAt)
		})).Return(nil).Once()

		link, err := f.useCase.Create(ctx, &documentDomain.CreateAccessLinkInput{
			DocumentID: docID,
			ExpiresAt:  &expiresAt,
			MaxViews:   intPtr(5),
		})

		require.NoError(t, err)
		assert.Equal(t, 0, link.ViewCount)
	})

	t.Run("Error_DocumentMissing", func(t *testing.T) {
		f := newAccessLinkFixture(t)

		f.generator.On("Generate").Return("fresh", nil).Once()
		f.linkRepo.On("Create", ctx, mock.Anything).Return(documentDomain.ErrDocumentNotFound).Once()

		_, err := f.useCase.Create(ctx, &documentDomain.CreateAccessLinkInput{DocumentID: docID})
		assert.ErrorIs(t, err, documentDomain.ErrDocumentNotFound)
	})

	invalid := []struct {
		name  string
		input *documentDomain.CreateAccessLinkInput
	}{
		{name: "ZeroViews", input: &documentDomain.CreateAccessLinkInput{DocumentID: docID, MaxViews: intPtr(0)}},
		{name: "NegativeViews", input: &documentDomain.CreateAccessLinkInput{DocumentID: docID, MaxViews: intPtr(-1)}},
		{
			name:  "TooManyViews",
			input: &documentDomain.CreateAccessLinkInput{DocumentID: docID, MaxViews: intPtr(documentDomain.MaxLinkViews + 1)},
		},
		{
			name:  "PastExpiry",
			input: &documentDomain.CreateAccessLinkInput{DocumentID: docID, ExpiresAt: timePtr(time.Now().Add(-time.Minute))},
		},
	}
	for _, tc := range invalid {
		t.Run("Error_"+tc.name, func(t *testing.T) {
			f := newAccessLinkFixture(t)

			_, err := f.useCase.Create(ctx, tc.input)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestAccessLinkUseCase_ListByDocument(t *testing.T) {
	ctx := context.Background()
	docID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		f := newAccessLinkFixture(t)
		links := []*documentDomain.AccessLink{{DocumentID: docID, AccessToken: "a"}}

		f.txManager.On("WithTx", ctx).Return(nil).Once()
		f.docRepo.On("Get", ctx, docID).Return(&documentDomain.Document{ID: docID}, nil).Once()
		f.linkRepo.On("ListByDocument", ctx, docID).Return(links, nil).Once()

		got, err := f.useCase.ListByDocument(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, links, got)
	})

	t.Run("Error_UnknownDocument", func(t *testing.T) {
		f := newAccessLinkFixture(t)

		f.txManager.On("WithTx", ctx).Return(nil).Once()
		f.docRepo.On("Get", ctx, docID).Return(nil, documentDomain.ErrDocumentNotFound).Once()

		got, err := f.useCase.ListByDocument(ctx, docID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, documentDomain.ErrDocumentNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
