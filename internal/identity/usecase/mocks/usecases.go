package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	identityDomain "github.com/fs9io/identity/internal/identity/domain"
)

// MockTokenUseCase is a mock implementation of TokenUseCase for testing.
type MockTokenUseCase struct {
	mock.Mock
}

// NewMockTokenUseCase creates a new MockTokenUseCase with expectations asserted on cleanup.
func NewMockTokenUseCase(t *testing.T) *MockTokenUseCase {
	m := &MockTokenUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Issue mocks the Issue method of TokenUseCase.
func (m *MockTokenUseCase) Issue(
	ctx context.Context,
	input *identityDomain.IssueTokenInput,
) (*identityDomain.IssueTokenOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.IssueTokenOutput), args.Error(1)
}

// Validate mocks the Validate method of TokenUseCase.
func (m *MockTokenUseCase) Validate(
	ctx context.Context,
	tokenString string,
) (*identityDomain.TokenVerdict, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.TokenVerdict), args.Error(1)
}

// Refresh mocks the Refresh method of TokenUseCase.
func (m *MockTokenUseCase) Refresh(
	ctx context.Context,
	input *identityDomain.RefreshTokenInput,
) (*identityDomain.IssueTokenOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.IssueTokenOutput), args.Error(1)
}

// Revoke mocks the Revoke method of TokenUseCase.
func (m *MockTokenUseCase) Revoke(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

// CleanupRevocations mocks the CleanupRevocations method of TokenUseCase.
func (m *MockTokenUseCase) CleanupRevocations(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// MockNamespaceUseCase is a mock implementation of NamespaceUseCase for testing.
type MockNamespaceUseCase struct {
	mock.Mock
}

// NewMockNamespaceUseCase creates a new MockNamespaceUseCase with expectations asserted on cleanup.
func NewMockNamespaceUseCase(t *testing.T) *MockNamespaceUseCase {
	m := &MockNamespaceUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method of NamespaceUseCase.
func (m *MockNamespaceUseCase) Create(
	ctx context.Context,
	input *identityDomain.CreateNamespaceInput,
) (*identityDomain.Namespace, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.Namespace), args.Error(1)
}

// Get mocks the Get method of NamespaceUseCase.
func (m *MockNamespaceUseCase) Get(ctx context.Context, name string) (*identityDomain.Namespace, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.Namespace), args.Error(1)
}

// List mocks the List method of NamespaceUseCase.
func (m *MockNamespaceUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*identityDomain.Namespace, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identityDomain.Namespace), args.Error(1)
}

// Delete mocks the Delete method of NamespaceUseCase.
func (m *MockNamespaceUseCase) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockUserUseCase is a mock implementation of UserUseCase for testing.
type MockUserUseCase struct {
	mock.Mock
}

// NewMockUserUseCase creates a new MockUserUseCase with expectations asserted on cleanup.
func NewMockUserUseCase(t *testing.T) *MockUserUseCase {
	m := &MockUserUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method of UserUseCase.
func (m *MockUserUseCase) Create(
	ctx context.Context,
	input *identityDomain.CreateUserInput,
) (*identityDomain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.User), args.Error(1)
}

// Get mocks the Get method of UserUseCase.
func (m *MockUserUseCase) Get(ctx context.Context, userID uuid.UUID) (*identityDomain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.User), args.Error(1)
}

// GetByUsername mocks the GetByUsername method of UserUseCase.
func (m *MockUserUseCase) GetByUsername(ctx context.Context, username string) (*identityDomain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.User), args.Error(1)
}

// List mocks the List method of UserUseCase.
func (m *MockUserUseCase) List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identityDomain.User), args.Error(1)
}

// Update mocks the Update method of UserUseCase.
func (m *MockUserUseCase) Update(
	ctx context.Context,
	userID uuid.UUID,
	input *identityDomain.UpdateUserInput,
) (*identityDomain.User, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.User), args.Error(1)
}

// Delete mocks the Delete method of UserUseCase.
func (m *MockUserUseCase) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
