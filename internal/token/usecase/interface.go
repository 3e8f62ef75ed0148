// Package usecase implements generation token issuance and inspection.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	tokenDomain "github.com/allisson/docgate/internal/token/domain"
)

// GenerationTokenRepository defines the interface for generation token persistence.
type GenerationTokenRepository interface {
	Create(ctx context.Context, token *tokenDomain.GenerationToken) error
	GetByToken(ctx context.Context, token string) (*tokenDomain.GenerationToken, error)

	// MarkUsed atomically transitions an unused token to used and returns the updated
	// token. Returns ErrGenerationTokenAlreadyUsed when the token was already consumed
	// and ErrGenerationTokenNotFound when it does not exist.
	MarkUsed(ctx context.Context, token string, usedAt time.Time) (*tokenDomain.GenerationToken, error)

	// List retrieves tokens ordered by creation time descending with pagination.
	List(ctx context.Context, offset, limit int) ([]*tokenDomain.GenerationToken, error)
}

// GenerationTokenUseCase defines the interface for generation token operations.
type GenerationTokenUseCase interface {
	// Issue creates min(count, MaxIssueCount) fresh tokens in one transaction.
	// A count below 1 is rejected with ErrInvalidInput.
	Issue(ctx context.Context, count int, issuerID *uuid.UUID) ([]*tokenDomain.GenerationToken, error)

	// Check returns the token without modifying it. The token is usable when IsUsed is false.
	Check(ctx context.Context, token string) (*tokenDomain.GenerationToken, error)

	List(ctx context.Context, offset, limit int) ([]*tokenDomain.GenerationToken, error)
}
