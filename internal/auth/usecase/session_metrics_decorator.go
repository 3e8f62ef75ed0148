package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/docgate/internal/auth/domain"
	"github.com/allisson/docgate/internal/metrics"
	userDomain "github.com/allisson/docgate/internal/user/domain"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *sessionUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	start := time.Now()
	output, err := s.next.Login(ctx, input)
	metrics.Observe(ctx, s.metrics, metrics.DomainUsers, "login", start, err)
	return output, err
}

func (s *sessionUseCaseWithMetrics) Authenticate(ctx context.Context, tokenHash string) (*userDomain.User, error) {
	start := time.Now()
	user, err := s.next.Authenticate(ctx, tokenHash)
	metrics.Observe(ctx, s.metrics, metrics.DomainUsers, "authenticate", start, err)
	return user, err
}
