package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// User is a directory record owned by exactly one namespace. The roles set is
// a snapshot source for token claims; the active flag is the only field
// re-checked against the directory during token validation.
type User struct {
	ID          uuid.UUID
	Username    string
	NamespaceID uuid.UUID
	Roles       []Role
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	return slices.Contains(u.Roles, role)
}

// ParseRoles converts raw role strings into the validated vocabulary.
// Duplicates are collapsed; an unknown role yields ErrInvalidRole.
func ParseRoles(raw []string) ([]Role, error) {
	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		role := Role(r)
		if !IsValidRole(role) {
			return nil, ErrInvalidRole
		}
		if !slices.Contains(roles, role) {
			roles = append(roles, role)
		}
	}
	return roles, nil
}

// RolesToStrings converts a role set to its wire representation.
func RolesToStrings(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}

// CreateUserInput contains the parameters for creating a new directory user.
type CreateUserInput struct {
	Username  string
	Namespace string // namespace name, resolved to its ID at create time
	Roles     []Role
	IsActive  bool
}

// UpdateUserInput contains the mutable fields of a directory user.
// Username and owning namespace are immutable after creation.
type UpdateUserInput struct {
	Roles    []Role
	IsActive bool
}
