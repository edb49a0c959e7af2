// Package mocks provides mock implementations for testing identity services.
package mocks

import (
	"testing"

	"github.com/stretchr/testify/mock"

	identityDomain "github.com/fs9io/identity/internal/identity/domain"
)

// MockTokenCodec is a mock implementation of TokenCodec for testing.
type MockTokenCodec struct {
	mock.Mock
}

// NewMockTokenCodec creates a new MockTokenCodec with expectations asserted on cleanup.
func NewMockTokenCodec(t *testing.T) *MockTokenCodec {
	m := &MockTokenCodec{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Sign mocks the Sign method of TokenCodec.
func (m *MockTokenCodec) Sign(claims *identityDomain.Claims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

// Verify mocks the Verify method of TokenCodec.
func (m *MockTokenCodec) Verify(tokenString string, allowExpired bool) (*identityDomain.Claims, error) {
	args := m.Called(tokenString, allowExpired)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.Claims), args.Error(1)
}
