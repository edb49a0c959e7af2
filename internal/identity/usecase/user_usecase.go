package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	identityDomain "github.com/fs9io/identity/internal/identity/domain"
	appValidation "github.com/fs9io/identity/internal/validation"
)

// userUseCase implements the UserUseCase interface.
type userUseCase struct {
	userRepo      UserRepository
	namespaceRepo NamespaceRepository
}

// validateCreateUserInput validates user creation parameters.
func (u *userUseCase) validateCreateUserInput(input *identityDomain.CreateUserInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Username,
			validation.Required,
			appValidation.NotBlank,
			appValidation.Username,
			validation.Length(1, 64),
		),
		validation.Field(&input.Namespace,
			validation.Required,
			appValidation.NotBlank,
			appValidation.NamespaceName,
		),
		validation.Field(&input.Roles,
			validation.Required,
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create registers a new user in an existing namespace.
func (u *userUseCase) Create(
	ctx context.Context,
	input *identityDomain.CreateUserInput,
) (*identityDomain.User, error) {
	if err := u.validateCreateUserInput(input); err != nil {
		return nil, err
	}

	// Roles arrive pre-parsed; re-check so a handler bug can never persist a
	// role outside the vocabulary.
	for _, role := range input.Roles {
		if !identityDomain.IsValidRole(role) {
			return nil, identityDomain.ErrInvalidRole
		}
	}

	namespace, err := u.namespaceRepo.GetByName(ctx, input.Namespace)
	if err != nil {
		return nil, err
	}

	user := &identityDomain.User{
		ID:          uuid.Must(uuid.NewV7()),
		Username:    strings.TrimSpace(input.Username),
		NamespaceID: namespace.ID,
		Roles:       input.Roles,
		IsActive:    input.IsActive,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Get retrieves a user by ID.
func (u *userUseCase) Get(ctx context.Context, userID uuid.UUID) (*identityDomain.User, error) {
	return u.userRepo.Get(ctx, userID)
}

// GetByUsername retrieves a user by its unique username.
func (u *userUseCase) GetByUsername(ctx context.Context, username string) (*identityDomain.User, error) {
	return u.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
}

// List retrieves users ordered by creation time.
func (u *userUseCase) List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error) {
	return u.userRepo.List(ctx, offset, limit)
}

// Update modifies a user's role set and active flag. Outstanding tokens keep
// the role snapshot taken at their issuance; deactivation, by contrast, takes
// effect on the next validation.
func (u *userUseCase) Update(
	ctx context.Context,
	userID uuid.UUID,
	input *identityDomain.UpdateUserInput,
) (*identityDomain.User, error) {
	for _, role := range input.Roles {
		if !identityDomain.IsValidRole(role) {
			return nil, identityDomain.ErrInvalidRole
		}
	}

	user, err := u.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user.Roles = input.Roles
	user.IsActive = input.IsActive
	user.UpdatedAt = &now

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes a user from the directory.
func (u *userUseCase) Delete(ctx context.Context, userID uuid.UUID) error {
	return u.userRepo.Delete(ctx, userID)
}

// NewUserUseCase creates a new UserUseCase with the given dependencies.
func NewUserUseCase(userRepo UserRepository, namespaceRepo NamespaceRepository) UserUseCase {
	return &userUseCase{
		userRepo:      userRepo,
		namespaceRepo: namespaceRepo,
	}
}
