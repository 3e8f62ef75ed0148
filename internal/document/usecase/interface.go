// Package usecase implements token consumption, access link resolution and document
// storage.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	documentDomain "github.com/allisson/docgate/internal/document/domain"
	tokenDomain "github.com/allisson/docgate/internal/token/domain"
)

// DocumentRepository defines the interface for document persistence.
type DocumentRepository interface {
	Create(ctx context.Context, doc *documentDomain.Document) error
	Get(ctx context.Context, id uuid.UUID) (*documentDomain.Document, error)

	// List returns summaries without payloads, newest first.
	List(ctx context.Context, offset, limit int) ([]*documentDomain.Document, error)

	// Delete removes the document and its access links.
	Delete(ctx context.Context, id uuid.UUID) error
}

// AccessLinkRepository defines the interface for access link persistence.
type AccessLinkRepository interface {
	Create(ctx context.Context, link *documentDomain.AccessLink) error
	GetByAccessToken(ctx context.Context, accessToken string) (*documentDomain.AccessLink, error)

	// IncrementViewCount adds one view only while the quota allows it, as a single
	// atomic step. Returns ErrAccessLinkQuotaExceeded when no view is left.
	IncrementViewCount(ctx context.Context, id uuid.UUID) error

	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*documentDomain.AccessLink, error)
}

// GenerationTokenConsumer flips a generation token to used, at most once.
type GenerationTokenConsumer interface {
	MarkUsed(ctx context.Context, token string, usedAt time.Time) (*tokenDomain.GenerationToken, error)
}

// ConsumptionUseCase trades a generation token for a stored document.
type ConsumptionUseCase interface {
	// Consume marks the token used, stores the payload and mints an access link, all
	// or nothing. Returns ErrGenerationTokenNotFound or ErrGenerationTokenAlreadyUsed
	// when the token cannot be spent.
	Consume(ctx context.Context, input *documentDomain.ConsumeInput) (*documentDomain.ConsumeOutput, error)
}

// AccessLinkUseCase resolves and mints access links.
type AccessLinkUseCase interface {
	// Resolve spends one view of the link and returns the bound document.
	// Returns ErrAccessLinkNotFound, ErrAccessLinkExpired or ErrAccessLinkQuotaExceeded.
	Resolve(ctx context.Context, accessToken string, now time.Time) (*documentDomain.Document, error)

	// Create mints an additional link for an existing document.
	Create(ctx context.Context, input *documentDomain.CreateAccessLinkInput) (*documentDomain.AccessLink, error)

	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*documentDomain.AccessLink, error)
}

// DocumentUseCase stores and administers documents.
type DocumentUseCase interface {
	// Put stores a payload without minting a link.
	Put(ctx context.Context, input *documentDomain.PutDocumentInput) (*documentDomain.Document, error)

	// Create stores a payload and mints its first access link in one transaction.
	Create(ctx context.Context, input *documentDomain.PutDocumentInput) (*documentDomain.CreateDocumentOutput, error)

	Get(ctx context.Context, id uuid.UUID) (*documentDomain.Document, error)
	List(ctx context.Context, offset, limit int) ([]*documentDomain.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
