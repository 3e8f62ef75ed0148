// Package mocks provides mock implementations of the generation token use case
// interfaces for testing.
package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	tokenDomain "github.com/allisson/docgate/internal/token/domain"
)

// MockGenerationTokenRepository is a mock implementation of GenerationTokenRepository.
type MockGenerationTokenRepository struct {
	mock.Mock
}

// NewMockGenerationTokenRepository creates a mock that asserts its expectations on cleanup.
func NewMockGenerationTokenRepository(t *testing.T) *MockGenerationTokenRepository {
	m := &MockGenerationTokenRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method.
func (m *MockGenerationTokenRepository) Create(ctx context.Context, token *tokenDomain.GenerationToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// GetByToken mocks the GetByToken method.
func (m *MockGenerationTokenRepository) GetByToken(
	ctx context.Context,
	token string,
) (*tokenDomain.GenerationToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.GenerationToken), args.Error(1)
}

// MarkUsed mocks the MarkUsed method.
func (m *MockGenerationTokenRepository) MarkUsed(
	ctx context.Context,
	token string,
	usedAt time.Time,
) (*tokenDomain.GenerationToken, error) {
	args := m.Called(ctx, token, usedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.GenerationToken), args.Error(1)
}

// List mocks the List method.
func (m *MockGenerationTokenRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*tokenDomain.GenerationToken, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tokenDomain.GenerationToken), args.Error(1)
}

// MockGenerationTokenUseCase is a mock implementation of GenerationTokenUseCase.
type MockGenerationTokenUseCase struct {
	mock.Mock
}

// NewMockGenerationTokenUseCase creates a mock that asserts its expectations on cleanup.
func NewMockGenerationTokenUseCase(t *testing.T) *MockGenerationTokenUseCase {
	m := &MockGenerationTokenUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Issue mocks the Issue method.
func (m *MockGenerationTokenUseCase) Issue(
	ctx context.Context,
	count int,
	issuerID *uuid.UUID,
) ([]*tokenDomain.GenerationToken, error) {
	args := m.Called(ctx, count, issuerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tokenDomain.GenerationToken), args.Error(1)
}

// Check mocks the Check method.
func (m *MockGenerationTokenUseCase) Check(ctx context.Context, token string) (*tokenDomain.GenerationToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.GenerationToken), args.Error(1)
}

// List mocks the List method.
func (m *MockGenerationTokenUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*tokenDomain.GenerationToken, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tokenDomain.GenerationToken), args.Error(1)
}
