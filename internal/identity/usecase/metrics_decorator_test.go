package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	identityDomain "github.com/fs9io/identity/internal/identity/domain"
	usecaseMocks "github.com/fs9io/identity/internal/identity/usecase/mocks"
	"github.com/fs9io/identity/internal/metrics"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func TestNewTokenUseCaseWithMetrics(t *testing.T) {
	mockUseCase := usecaseMocks.NewMockTokenUseCase(t)
	mockMetrics := &mockBusinessMetrics{}

	decorator := NewTokenUseCaseWithMetrics(mockUseCase, mockMetrics)

	assert.NotNil(t, decorator)
	assert.Implements(t, (*TokenUseCase)(nil), decorator)
}

func TestMetricsDecorator_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := usecaseMocks.NewMockTokenUseCase(t)
		mockMetrics := &mockBusinessMetrics{}

		input := &identityDomain.IssueTokenInput{UserID: uuid.Must(uuid.NewV7())}
		output := &identityDomain.IssueTokenOutput{Token: "signed", ExpiresAt: time.Now().Add(time.Hour)}

		mockUseCase.On("Issue", ctx, input).Return(output, nil)
		mockMetrics.On("RecordOperation", ctx, "tokens", "token_issue", "success")
		mockMetrics.On("RecordDuration", ctx, "tokens", "token_issue", mock.Anything, "success")

		decorator := NewTokenUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.Issue(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, output, result)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := usecaseMocks.NewMockTokenUseCase(t)
		mockMetrics := &mockBusinessMetrics{}

		input := &identityDomain.IssueTokenInput{UserID: uuid.Must(uuid.NewV7())}

		mockUseCase.On("Issue", ctx, input).Return(nil, errors.New("store unavailable"))
		mockMetrics.On("RecordOperation", ctx, "tokens", "token_issue", "error")
		mockMetrics.On("RecordDuration", ctx, "tokens", "token_issue", mock.Anything, "error")

		decorator := NewTokenUseCaseWithMetrics(mockUseCase, mockMetrics)
		_, err := decorator.Issue(ctx, input)

		assert.Error(t, err)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_InvalidVerdictStillCountsAsSuccess", func(t *testing.T) {
		mockUseCase := usecaseMocks.NewMockTokenUseCase(t)
		mockMetrics := &mockBusinessMetrics{}

		verdict := identityDomain.InvalidVerdict(identityDomain.ReasonExpired)

		mockUseCase.On("Validate", ctx, "some-token").Return(verdict, nil)
		mockMetrics.On("RecordOperation", ctx, "tokens", "token_validate", "success")
		mockMetrics.On("RecordDuration", ctx, "tokens", "token_validate", mock.Anything, "success")

		decorator := NewTokenUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.Validate(ctx, "some-token")

		assert.NoError(t, err)
		assert.False(t, result.Valid)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_Revoke(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsRevokeMetrics", func(t *testing.T) {
		mockUseCase := usecaseMocks.NewMockTokenUseCase(t)
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("Revoke", ctx, "some-token").Return(nil)
		mockMetrics.On("RecordOperation", ctx, "tokens", "token_revoke", "success")
		mockMetrics.On("RecordDuration", ctx, "tokens", "token_revoke", mock.Anything, "success")

		decorator := NewTokenUseCaseWithMetrics(mockUseCase, mockMetrics)

		assert.NoError(t, decorator.Revoke(ctx, "some-token"))
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_CleanupRevocations(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsCleanupMetrics", func(t *testing.T) {
		mockUseCase := usecaseMocks.NewMockTokenUseCase(t)
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("CleanupRevocations", ctx, 30, false).Return(int64(5), nil)
		mockMetrics.On("RecordOperation", ctx, "tokens", "revocation_cleanup", "success")
		mockMetrics.On("RecordDuration", ctx, "tokens", "revocation_cleanup", mock.Anything, "success")

		decorator := NewTokenUseCaseWithMetrics(mockUseCase, mockMetrics)
		count, err := decorator.CleanupRevocations(ctx, 30, false)

		assert.NoError(t, err)
		assert.Equal(t, int64(5), count)
		mockMetrics.AssertExpectations(t)
	})
}
