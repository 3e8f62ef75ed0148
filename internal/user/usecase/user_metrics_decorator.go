package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/docgate/internal/metrics"
	userDomain "github.com/allisson/docgate/internal/user/domain"
)

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) Create(
	ctx context.Context,
	input *userDomain.CreateUserInput,
) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.Create(ctx, input)
	metrics.Observe(ctx, u.metrics, metrics.DomainUsers, "create", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.Get(ctx, id)
	metrics.Observe(ctx, u.metrics, metrics.DomainUsers, "get", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*userDomain.User, error) {
	start := time.Now()
	users, err := u.next.List(ctx, offset, limit)
	metrics.Observe(ctx, u.metrics, metrics.DomainUsers, "list", start, err)
	return users, err
}

func (u *userUseCaseWithMetrics) SetAccess(
	ctx context.Context,
	id uuid.UUID,
	hasAccess bool,
) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.SetAccess(ctx, id, hasAccess)
	metrics.Observe(ctx, u.metrics, metrics.DomainUsers, "set_access", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := u.next.Delete(ctx, id)
	metrics.Observe(ctx, u.metrics, metrics.DomainUsers, "delete", start, err)
	return err
}
