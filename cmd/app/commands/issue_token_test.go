package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	identityDomain "github.com/fs9io/identity/internal/identity/domain"
	identityMocks "github.com/fs9io/identity/internal/identity/usecase/mocks"
)

func testIO(out *bytes.Buffer) IOTuple {
	return IOTuple{
		Reader: bytes.NewReader(nil),
		Writer: out,
	}
}

func TestRunIssueToken(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	userID := uuid.Must(uuid.NewV7())

	t.Run("text-output-default-ttl", func(t *testing.T) {
		mockUseCase := identityMocks.NewMockTokenUseCase(t)

		output := &identityDomain.IssueTokenOutput{
			Token:     "signed-token",
			ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
		}
		mockUseCase.On("Issue", ctx, &identityDomain.IssueTokenInput{UserID: userID}).
			Return(output, nil)

		var out bytes.Buffer
		err := RunIssueToken(ctx, mockUseCase, logger, userID.String(), 0, "text", testIO(&out))

		require.NoError(t, err)
		require.Contains(t, out.String(), "signed-token")
	})

	t.Run("json-output-explicit-ttl", func(t *testing.T) {
		mockUseCase := identityMocks.NewMockTokenUseCase(t)

		ttl := 1 * time.Hour
		output := &identityDomain.IssueTokenOutput{
			Token:     "signed-token",
			ExpiresAt: time.Now().UTC().Add(ttl),
		}
		mockUseCase.On("Issue", ctx, &identityDomain.IssueTokenInput{UserID: userID, TTL: &ttl}).
			Return(output, nil)

		var out bytes.Buffer
		err := RunIssueToken(ctx, mockUseCase, logger, userID.String(), 3600, "json", testIO(&out))

		require.NoError(t, err)
		require.Contains(t, out.String(), `"token": "signed-token"`)
	})

	t.Run("invalid-user-id", func(t *testing.T) {
		mockUseCase := identityMocks.NewMockTokenUseCase(t)

		var out bytes.Buffer
		err := RunIssueToken(ctx, mockUseCase, logger, "not-a-uuid", 0, "text", testIO(&out))

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid user ID format")
		mockUseCase.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})
}

func TestRunRevokeToken(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("success", func(t *testing.T) {
		mockUseCase := identityMocks.NewMockTokenUseCase(t)
		mockUseCase.On("Revoke", ctx, "some-token").Return(nil)

		var out bytes.Buffer
		err := RunRevokeToken(ctx, mockUseCase, logger, "some-token", testIO(&out))

		require.NoError(t, err)
		require.Contains(t, out.String(), "Token revoked successfully")
	})

	t.Run("bad-signature", func(t *testing.T) {
		mockUseCase := identityMocks.NewMockTokenUseCase(t)
		mockUseCase.On("Revoke", ctx, "forged-token").
			Return(identityDomain.ErrTokenSignatureInvalid)

		var out bytes.Buffer
		err := RunRevokeToken(ctx, mockUseCase, logger, "forged-token", testIO(&out))

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to revoke token")
	})
}
