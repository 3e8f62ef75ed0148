package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/docgate/internal/metrics"
	tokenDomain "github.com/allisson/docgate/internal/token/domain"
)

// generationTokenUseCaseWithMetrics decorates GenerationTokenUseCase with metrics instrumentation.
type generationTokenUseCaseWithMetrics struct {
	next    GenerationTokenUseCase
	metrics metrics.BusinessMetrics
}

// NewGenerationTokenUseCaseWithMetrics wraps a GenerationTokenUseCase with metrics recording.
func NewGenerationTokenUseCaseWithMetrics(
	useCase GenerationTokenUseCase,
	m metrics.BusinessMetrics,
) GenerationTokenUseCase {
	return &generationTokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (g *generationTokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	count int,
	issuerID *uuid.UUID,
) ([]*tokenDomain.GenerationToken, error) {
	start := time.Now()
	tokens, err := g.next.Issue(ctx, count, issuerID)
	metrics.Observe(ctx, g.metrics, metrics.DomainGenerationTokens, "issue", start, err)
	return tokens, err
}

func (g *generationTokenUseCaseWithMetrics) Check(
	ctx context.Context,
	token string,
) (*tokenDomain.GenerationToken, error) {
	start := time.Now()
	t, err := g.next.Check(ctx, token)
	metrics.Observe(ctx, g.metrics, metrics.DomainGenerationTokens, "check", start, err)
	return t, err
}

func (g *generationTokenUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*tokenDomain.GenerationToken, error) {
	start := time.Now()
	tokens, err := g.next.List(ctx, offset, limit)
	metrics.Observe(ctx, g.metrics, metrics.DomainGenerationTokens, "list", start, err)
	return tokens, err
}
