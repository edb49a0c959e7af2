package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	identityDomain "github.com/fs9io/identity/internal/identity/domain"
	identityMocks "github.com/fs9io/identity/internal/identity/usecase/mocks"
)

func TestRunCreateNamespace(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := identityMocks.NewMockNamespaceUseCase(t)

		namespace := &identityDomain.Namespace{
			ID:          uuid.Must(uuid.NewV7()),
			Name:        "engineering",
			Description: "Engineering tenant",
			CreatedAt:   time.Now().UTC(),
		}
		input := &identityDomain.CreateNamespaceInput{
			Name:        "engineering",
			Description: "Engineering tenant",
		}
		mockUseCase.On("Create", ctx, input).Return(namespace, nil)

		var out bytes.Buffer
		err := RunCreateNamespace(ctx, mockUseCase, logger, "engineering", "Engineering tenant", "text", testIO(&out))

		require.NoError(t, err)
		require.Contains(t, out.String(), "Namespace created successfully")
		require.Contains(t, out.String(), "engineering")
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := identityMocks.NewMockNamespaceUseCase(t)

		namespace := &identityDomain.Namespace{
			ID:        uuid.Must(uuid.NewV7()),
			Name:      "engineering",
			CreatedAt: time.Now().UTC(),
		}
		mockUseCase.On("Create", ctx, &identityDomain.CreateNamespaceInput{Name: "engineering"}).
			Return(namespace, nil)

		var out bytes.Buffer
		err := RunCreateNamespace(ctx, mockUseCase, logger, "engineering", "", "json", testIO(&out))

		require.NoError(t, err)
		require.Contains(t, out.String(), `"name": "engineering"`)
	})

	t.Run("create-error", func(t *testing.T) {
		mockUseCase := identityMocks.NewMockNamespaceUseCase(t)
		mockUseCase.On("Create", ctx, &identityDomain.CreateNamespaceInput{Name: "Bad Name"}).
			Return(nil, identityDomain.ErrInvalidRole)

		var out bytes.Buffer
		err := RunCreateNamespace(ctx, mockUseCase, logger, "Bad Name", "", "text", testIO(&out))

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create namespace")
	})
}

func TestRunDeleteNamespace(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("success", func(t *testing.T) {
		mockUseCase := identityMocks.NewMockNamespaceUseCase(t)
		mockUseCase.On("Delete", ctx, "engineering").Return(nil)

		var out bytes.Buffer
		err := RunDeleteNamespace(ctx, mockUseCase, logger, "engineering", testIO(&out))

		require.NoError(t, err)
		require.Contains(t, out.String(), "deleted")
	})

	t.Run("protected-namespace", func(t *testing.T) {
		mockUseCase := identityMocks.NewMockNamespaceUseCase(t)
		mockUseCase.On("Delete", ctx, "default").Return(identityDomain.ErrNamespaceProtected)

		var out bytes.Buffer
		err := RunDeleteNamespace(ctx, mockUseCase, logger, "default", testIO(&out))

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to delete namespace")
	})
}
