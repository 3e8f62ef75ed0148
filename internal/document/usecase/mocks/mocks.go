// Package mocks provides mock implementations of the document use case interfaces
// for testing.
package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	documentDomain "github.com/allisson/docgate/internal/document/domain"
)

// MockDocumentRepository is a mock implementation of DocumentRepository.
type MockDocumentRepository struct {
	mock.Mock
}

// NewMockDocumentRepository creates a mock that asserts its expectations on cleanup.
func NewMockDocumentRepository(t *testing.T) *MockDocumentRepository {
	m := &MockDocumentRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method.
func (m *MockDocumentRepository) Create(ctx context.Context, doc *documentDomain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

// Get mocks the Get method.
func (m *MockDocumentRepository) Get(ctx context.Context, id uuid.UUID) (*documentDomain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.Document), args.Error(1)
}

// List mocks the List method.
func (m *MockDocumentRepository) List(ctx context.Context, offset, limit int) ([]*documentDomain.Document, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documentDomain.Document), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAccessLinkRepository is a mock implementation of AccessLinkRepository.
type MockAccessLinkRepository struct {
	mock.Mock
}

// NewMockAccessLinkRepository creates a mock that asserts its expectations on cleanup.
func NewMockAccessLinkRepository(t *testing.T) *MockAccessLinkRepository {
	m := &MockAccessLinkRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method.
func (m *MockAccessLinkRepository) Create(ctx context.Context, link *documentDomain.AccessLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

// GetByAccessToken mocks the GetByAccessToken method.
func (m *MockAccessLinkRepository) GetByAccessToken(
	ctx context.Context,
	accessToken string,
) (*documentDomain.AccessLink, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.AccessLink), args.Error(1)
}

// IncrementViewCount mocks the IncrementViewCount method.
func (m *MockAccessLinkRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ListByDocument mocks the ListByDocument method.
func (m *MockAccessLinkRepository) ListByDocument(
	ctx context.Context,
	documentID uuid.UUID,
) ([]*documentDomain.AccessLink, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documentDomain.AccessLink), args.Error(1)
}

// MockConsumptionUseCase is a mock implementation of ConsumptionUseCase.
type MockConsumptionUseCase struct {
	mock.Mock
}

// NewMockConsumptionUseCase creates a mock that asserts its expectations on cleanup.
func NewMockConsumptionUseCase(t *testing.T) *MockConsumptionUseCase {
	m := &MockConsumptionUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Consume mocks the Consume method.
func (m *MockConsumptionUseCase) Consume(
	ctx context.Context,
	input *documentDomain.ConsumeInput,
) (*documentDomain.ConsumeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.ConsumeOutput), args.Error(1)
}

// MockAccessLinkUseCase is a mock implementation of AccessLinkUseCase.
type MockAccessLinkUseCase struct {
	mock.Mock
}

// NewMockAccessLinkUseCase creates a mock that asserts its expectations on cleanup.
func NewMockAccessLinkUseCase(t *testing.T) *MockAccessLinkUseCase {
	m := &MockAccessLinkUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Resolve mocks the Resolve method.
func (m *MockAccessLinkUseCase) Resolve(
	ctx context.Context,
	accessToken string,
	now time.Time,
) (*documentDomain.Document, error) {
	args := m.Called(ctx, accessToken, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.Document), args.Error(1)
}

// Create mocks the Create method.
func (m *MockAccessLinkUseCase) Create(
	ctx context.Context,
	input *documentDomain.CreateAccessLinkInput,
) (*documentDomain.AccessLink, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.AccessLink), args.Error(1)
}

// ListByDocument mocks the ListByDocument method.
func (m *MockAccessLinkUseCase) ListByDocument(
	ctx context.Context,
	documentID uuid.UUID,
) ([]*documentDomain.AccessLink, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documentDomain.AccessLink), args.Error(1)
}

// MockDocumentUseCase is a mock implementation of DocumentUseCase.
type MockDocumentUseCase struct {
	mock.Mock
}

// NewMockDocumentUseCase creates a mock that asserts its expectations on cleanup.
func NewMockDocumentUseCase(t *testing.T) *MockDocumentUseCase {
	m := &MockDocumentUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Put mocks the Put method.
func (m *MockDocumentUseCase) Put(
	ctx context.Context,
	input *documentDomain.PutDocumentInput,
) (*documentDomain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.Document), args.Error(1)
}

// Create mocks the Create method.
func (m *MockDocumentUseCase) Create(
	ctx context.Context,
	input *documentDomain.PutDocumentInput,
) (*documentDomain.CreateDocumentOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.CreateDocumentOutput), args.Error(1)
}

// Get mocks the Get method.
func (m *MockDocumentUseCase) Get(ctx context.Context, id uuid.UUID) (*documentDomain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.Document), args.Error(1)
}

// List mocks the List method.
func (m *MockDocumentUseCase) List(ctx context.Context, offset, limit int) ([]*documentDomain.Document, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documentDomain.Document), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockDocumentUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
