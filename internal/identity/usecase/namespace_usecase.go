package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/fs9io/identity/internal/database"
	apperrors "github.com/fs9io/identity/internal/errors"
	identityDomain "github.com/fs9io/identity/internal/identity/domain"
	appValidation "github.com/fs9io/identity/internal/validation"
)

// namespaceUseCase implements the NamespaceUseCase interface.
type namespaceUseCase struct {
	txManager     database.TxManager
	namespaceRepo NamespaceRepository
	userRepo      UserRepository
}

// validateCreateNamespaceInput validates namespace creation parameters.
func (n *namespaceUseCase) validateCreateNamespaceInput(input *identityDomain.CreateNamespaceInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Name,
			validation.Required,
			appValidation.NotBlank,
			appValidation.NamespaceName,
			validation.Length(1, 64),
		),
		validation.Field(&input.Description,
			validation.Length(0, 255),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create registers a new namespace.
func (n *namespaceUseCase) Create(
	ctx context.Context,
	input *identityDomain.CreateNamespaceInput,
) (*identityDomain.Namespace, error) {
	if err := n.validateCreateNamespaceInput(input); err != nil {
		return nil, err
	}

	namespace := &identityDomain.Namespace{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
	}

	if err := n.namespaceRepo.Create(ctx, namespace); err != nil {
		return nil, err
	}

	return namespace, nil
}

// Get retrieves a namespace by name.
func (n *namespaceUseCase) Get(ctx context.Context, name string) (*identityDomain.Namespace, error) {
	return n.namespaceRepo.GetByName(ctx, name)
}

// List retrieves namespaces ordered by creation time.
func (n *namespaceUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*identityDomain.Namespace, error) {
	return n.namespaceRepo.List(ctx, offset, limit)
}

// Delete removes a namespace together with all its users in one transaction.
// Tokens already issued against the namespace are not revoked here: their
// subjects disappear with the user records, so validation fails on the
// liveness check from this point on.
func (n *namespaceUseCase) Delete(ctx context.Context, name string) error {
	namespace, err := n.namespaceRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}

	if namespace.IsProtected() {
		return identityDomain.ErrNamespaceProtected
	}

	return n.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := n.userRepo.DeleteByNamespace(ctx, namespace.ID); err != nil {
			return apperrors.Wrap(err, "failed to delete namespace users")
		}
		return n.namespaceRepo.Delete(ctx, namespace.ID)
	})
}

// NewNamespaceUseCase creates a new NamespaceUseCase with the given dependencies.
func NewNamespaceUseCase(
	txManager database.TxManager,
	namespaceRepo NamespaceRepository,
	userRepo UserRepository,
) NamespaceUseCase {
	return &namespaceUseCase{
		txManager:     txManager,
		namespaceRepo: namespaceRepo,
		userRepo:      userRepo,
	}
}
