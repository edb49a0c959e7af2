package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	databaseMocks "github.com/fs9io/identity/internal/database/mocks"
	apperrors "github.com/fs9io/identity/internal/errors"
	identityDomain "github.com/fs9io/identity/internal/identity/domain"
	usecaseMocks "github.com/fs9io/identity/internal/identity/usecase/mocks"
)

func TestNamespaceUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreateNamespace", func(t *testing.T) {
		txManager := databaseMocks.NewMockTxManager(t)
		namespaceRepo := usecaseMocks.NewMockNamespaceRepository(t)
		userRepo := usecaseMocks.NewMockUserRepository(t)

		namespaceRepo.On("Create", ctx, mock.MatchedBy(func(ns *identityDomain.Namespace) bool {
			return ns.Name == "tenant-a" && ns.ID != uuid.Nil
		})).Return(nil)

		uc := NewNamespaceUseCase(txManager, namespaceRepo, userRepo)
		namespace, err := uc.Create(ctx, &identityDomain.CreateNamespaceInput{
			Name:        "tenant-a",
			Description: "first tenant",
		})

		require.NoError(t, err)
		assert.Equal(t, "tenant-a", namespace.Name)
		assert.Equal(t, "first tenant", namespace.Description)
	})

	t.Run("Error_InvalidName", func(t *testing.T) {
		txManager := databaseMocks.NewMockTxManager(t)
		namespaceRepo := usecaseMocks.NewMockNamespaceRepository(t)
		userRepo := usecaseMocks.NewMockUserRepository(t)

		uc := NewNamespaceUseCase(txManager, namespaceRepo, userRepo)

		for _, name := range []string{"", "Tenant A", "tenant/a", "-tenant"} {
			_, err := uc.Create(ctx, &identityDomain.CreateNamespaceInput{Name: name})
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "name %q", name)
		}
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		txManager := databaseMocks.NewMockTxManager(t)
		namespaceRepo := usecaseMocks.NewMockNamespaceRepository(t)
		userRepo := usecaseMocks.NewMockUserRepository(t)

		namespaceRepo.On("Create", ctx, mock.Anything).Return(apperrors.ErrConflict)

		uc := NewNamespaceUseCase(txManager, namespaceRepo, userRepo)
		_, err := uc.Create(ctx, &identityDomain.CreateNamespaceInput{Name: "tenant-a"})

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestNamespaceUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DeleteNamespaceWithUsers", func(t *testing.T) {
		txManager := databaseMocks.NewMockTxManager(t)
		namespaceRepo := usecaseMocks.NewMockNamespaceRepository(t)
		userRepo := usecaseMocks.NewMockUserRepository(t)

		namespace := &identityDomain.Namespace{
			ID:        uuid.Must(uuid.NewV7()),
			Name:      "tenant-a",
			CreatedAt: time.Now().UTC(),
		}

		namespaceRepo.On("GetByName", ctx, "tenant-a").Return(namespace, nil)
		txManager.On("WithTx", ctx, mock.Anything).
			Return(func(ctx context.Context, fn func(ctx context.Context) error) error {
				return fn(ctx)
			})
		userRepo.On("DeleteByNamespace", ctx, namespace.ID).Return(int64(2), nil)
		namespaceRepo.On("Delete", ctx, namespace.ID).Return(nil)

		uc := NewNamespaceUseCase(txManager, namespaceRepo, userRepo)

		assert.NoError(t, uc.Delete(ctx, "tenant-a"))
	})

	t.Run("Error_ProtectedDefaultNamespace", func(t *testing.T) {
		txManager := databaseMocks.NewMockTxManager(t)
		namespaceRepo := usecaseMocks.NewMockNamespaceRepository(t)
		userRepo := usecaseMocks.NewMockUserRepository(t)

		namespace := &identityDomain.Namespace{
			ID:   uuid.Must(uuid.NewV7()),
			Name: identityDomain.DefaultNamespaceName,
		}

		namespaceRepo.On("GetByName", ctx, "default").Return(namespace, nil)

		uc := NewNamespaceUseCase(txManager, namespaceRepo, userRepo)
		err := uc.Delete(ctx, "default")

		assert.ErrorIs(t, err, identityDomain.ErrNamespaceProtected)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("Error_NamespaceNotFound", func(t *testing.T) {
		txManager := databaseMocks.NewMockTxManager(t)
		namespaceRepo := usecaseMocks.NewMockNamespaceRepository(t)
		userRepo := usecaseMocks.NewMockUserRepository(t)

		namespaceRepo.On("GetByName", ctx, "ghost").Return(nil, identityDomain.ErrNamespaceNotFound)

		uc := NewNamespaceUseCase(txManager, namespaceRepo, userRepo)

		assert.ErrorIs(t, uc.Delete(ctx, "ghost"), apperrors.ErrNotFound)
	})

	t.Run("Error_UserDeletionFailureAbortsTransaction", func(t *testing.T) {
		txManager := databaseMocks.NewMockTxManager(t)
		namespaceRepo := usecaseMocks.NewMockNamespaceRepository(t)
		userRepo := usecaseMocks.NewMockUserRepository(t)

		namespace := &identityDomain.Namespace{
			ID:   uuid.Must(uuid.NewV7()),
			Name: "tenant-a",
		}

		namespaceRepo.On("GetByName", ctx, "tenant-a").Return(namespace, nil)
		txManager.On("WithTx", ctx, mock.Anything).
			Return(func(ctx context.Context, fn func(ctx context.Context) error) error {
				return fn(ctx)
			})
		userRepo.On("DeleteByNamespace", ctx, namespace.ID).Return(int64(0), apperrors.New("write failed"))

		uc := NewNamespaceUseCase(txManager, namespaceRepo, userRepo)

		// Namespace deletion was never attempted.
		assert.Error(t, uc.Delete(ctx, "tenant-a"))
		namespaceRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestNamespaceUseCase_GetAndList(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Get", func(t *testing.T) {
		txManager := databaseMocks.NewMockTxManager(t)
		namespaceRepo := usecaseMocks.NewMockNamespaceRepository(t)
		userRepo := usecaseMocks.NewMockUserRepository(t)

		namespace := &identityDomain.Namespace{ID: uuid.Must(uuid.NewV7()), Name: "tenant-a"}
		namespaceRepo.On("GetByName", ctx, "tenant-a").Return(namespace, nil)

		uc := NewNamespaceUseCase(txManager, namespaceRepo, userRepo)
		got, err := uc.Get(ctx, "tenant-a")

		require.NoError(t, err)
		assert.Equal(t, namespace, got)
	})

	t.Run("Success_List", func(t *testing.T) {
		txManager := databaseMocks.NewMockTxManager(t)
		namespaceRepo := usecaseMocks.NewMockNamespaceRepository(t)
		userRepo := usecaseMocks.NewMockUserRepository(t)

		namespaces := []*identityDomain.Namespace{
			{ID: uuid.Must(uuid.NewV7()), Name: "default"},
			{ID: uuid.Must(uuid.NewV7()), Name: "tenant-a"},
		}
		namespaceRepo.On("List", ctx, 0, 50).Return(namespaces, nil)

		uc := NewNamespaceUseCase(txManager, namespaceRepo, userRepo)
		got, err := uc.List(ctx, 0, 50)

		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
