// Package mocks provides a TokenGenerator double.
package mocks

import (
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockTokenGenerator is a mock implementation of TokenGenerator.
type MockTokenGenerator struct {
	mock.Mock
}

// NewMockTokenGenerator creates a mock that asserts its expectations on cleanup.
func NewMockTokenGenerator(t *testing.T) *MockTokenGenerator {
	m := &MockTokenGenerator{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Generate mocks the Generate method.
func (m *MockTokenGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
