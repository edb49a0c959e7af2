// Package mocks provides mock repository implementations for testing use cases.
package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	identityDomain "github.com/fs9io/identity/internal/identity/domain"
)

// MockNamespaceRepository is a mock implementation of NamespaceRepository for testing.
type MockNamespaceRepository struct {
	mock.Mock
}

// NewMockNamespaceRepository creates a new MockNamespaceRepository with expectations asserted on cleanup.
func NewMockNamespaceRepository(t *testing.T) *MockNamespaceRepository {
	m := &MockNamespaceRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method of NamespaceRepository.
func (m *MockNamespaceRepository) Create(ctx context.Context, namespace *identityDomain.Namespace) error {
	args := m.Called(ctx, namespace)
	return args.Error(0)
}

// Get mocks the Get method of NamespaceRepository.
func (m *MockNamespaceRepository) Get(
	ctx context.Context,
	namespaceID uuid.UUID,
) (*identityDomain.Namespace, error) {
	args := m.Called(ctx, namespaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.Namespace), args.Error(1)
}

// GetByName mocks the GetByName method of NamespaceRepository.
func (m *MockNamespaceRepository) GetByName(
	ctx context.Context,
	name string,
) (*identityDomain.Namespace, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.Namespace), args.Error(1)
}

// List mocks the List method of NamespaceRepository.
func (m *MockNamespaceRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*identityDomain.Namespace, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identityDomain.Namespace), args.Error(1)
}

// Delete mocks the Delete method of NamespaceRepository.
func (m *MockNamespaceRepository) Delete(ctx context.Context, namespaceID uuid.UUID) error {
	args := m.Called(ctx, namespaceID)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository for testing.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a new MockUserRepository with expectations asserted on cleanup.
func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method of UserRepository.
func (m *MockUserRepository) Create(ctx context.Context, user *identityDomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Get mocks the Get method of UserRepository.
func (m *MockUserRepository) Get(ctx context.Context, userID uuid.UUID) (*identityDomain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.User), args.Error(1)
}

// GetByUsername mocks the GetByUsername method of UserRepository.
func (m *MockUserRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*identityDomain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.User), args.Error(1)
}

// List mocks the List method of UserRepository.
func (m *MockUserRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*identityDomain.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identityDomain.User), args.Error(1)
}

// Update mocks the Update method of UserRepository.
func (m *MockUserRepository) Update(ctx context.Context, user *identityDomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Delete mocks the Delete method of UserRepository.
func (m *MockUserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// DeleteByNamespace mocks the DeleteByNamespace method of UserRepository.
func (m *MockUserRepository) DeleteByNamespace(
	ctx context.Context,
	namespaceID uuid.UUID,
) (int64, error) {
	args := m.Called(ctx, namespaceID)
	return args.Get(0).(int64), args.Error(1)
}

// MockRevocationRepository is a mock implementation of RevocationRepository for testing.
type MockRevocationRepository struct {
	mock.Mock
}

// NewMockRevocationRepository creates a new MockRevocationRepository with expectations asserted on cleanup.
func NewMockRevocationRepository(t *testing.T) *MockRevocationRepository {
	m := &MockRevocationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Revoke mocks the Revoke method of RevocationRepository.
func (m *MockRevocationRepository) Revoke(
	ctx context.Context,
	record *identityDomain.RevocationRecord,
) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// IsRevoked mocks the IsRevoked method of RevocationRepository.
func (m *MockRevocationRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

// DeleteExpired mocks the DeleteExpired method of RevocationRepository.
func (m *MockRevocationRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// CountExpired mocks the CountExpired method of RevocationRepository.
func (m *MockRevocationRepository) CountExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
