// Package usecase defines business logic interfaces for the identity service:
// the token lifecycle (issue, validate, refresh, revoke) and the directory
// administration surface (namespaces and users).
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	identityDomain "github.com/fs9io/identity/internal/identity/domain"
)

// NamespaceRepository defines persistence operations for namespaces.
// Implementations must support transaction-aware operations via context propagation.
type NamespaceRepository interface {
	// Create stores a new namespace in the repository.
	Create(ctx context.Context, namespace *identityDomain.Namespace) error

	// Get retrieves a namespace by ID. Returns ErrNamespaceNotFound if not found.
	Get(ctx context.Context, namespaceID uuid.UUID) (*identityDomain.Namespace, error)

	// GetByName retrieves a namespace by its unique name.
	// Returns ErrNamespaceNotFound if not found.
	GetByName(ctx context.Context, name string) (*identityDomain.Namespace, error)

	// List retrieves namespaces ordered by creation time.
	List(ctx context.Context, offset, limit int) ([]*identityDomain.Namespace, error)

	// Delete removes a namespace by ID.
	Delete(ctx context.Context, namespaceID uuid.UUID) error
}

// UserRepository defines persistence operations for directory users. The token
// core consumes it read-only; the administration surface owns the mutations.
type UserRepository interface {
	// Create stores a new user in the repository.
	Create(ctx context.Context, user *identityDomain.User) error

	// Get retrieves a user by ID. Returns ErrUserNotFound if not found.
	Get(ctx context.Context, userID uuid.UUID) (*identityDomain.User, error)

	// GetByUsername retrieves a user by its unique username.
	// Returns ErrUserNotFound if not found.
	GetByUsername(ctx context.Context, username string) (*identityDomain.User, error)

	// List retrieves users ordered by creation time.
	List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error)

	// Update modifies an existing user in the repository.
	Update(ctx context.Context, user *identityDomain.User) error

	// Delete removes a user by ID.
	Delete(ctx context.Context, userID uuid.UUID) error

	// DeleteByNamespace removes all users owned by the namespace and returns
	// the number of deleted records. Callers are expected to run this inside
	// a transaction together with the namespace deletion itself.
	DeleteByNamespace(ctx context.Context, namespaceID uuid.UUID) (int64, error)
}

// RevocationRepository is the durable set of revoked token identifiers.
//
// Ordering requirement: a Revoke must be visible to any IsRevoked call on the
// same jti that starts after Revoke returns. Cross-key ordering is not required.
type RevocationRepository interface {
	// Revoke marks a token identifier as revoked. Revoking an already-revoked
	// jti is a no-op success, never an error.
	Revoke(ctx context.Context, record *identityDomain.RevocationRecord) error

	// IsRevoked reports whether the token identifier has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// DeleteExpired removes revocation records whose token expiry passed
	// before the cutoff and returns the number of deleted records. Expired
	// tokens already fail validation on the expiry check, so dropping their
	// records never changes a verdict.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)

	// CountExpired returns how many records DeleteExpired would remove.
	CountExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// TokenUseCase is the token lifecycle state machine: issuance, validation,
// refresh-with-grace-period, and the revocation bookkeeping that makes
// logically deleted tokens unusable before their natural expiry.
type TokenUseCase interface {
	// Issue mints a signed token for the user with a freshly generated unique
	// jti, snapshotting the user's namespace and roles at this instant. A nil
	// TTL selects the configured default; a non-positive TTL is rejected.
	//
	// Issue is intentionally not idempotent: each invocation mints a distinct
	// jti, so retries produce additional valid tokens. Callers needing
	// exactly-once issuance must de-duplicate above this layer.
	Issue(ctx context.Context, input *identityDomain.IssueTokenInput) (*identityDomain.IssueTokenOutput, error)

	// Validate checks signature, expiry, revocation and user liveness, in
	// that order, short-circuiting on the first failure. It always answers
	// with a structured verdict; a non-nil error is reserved for
	// infrastructure failures (store unreachable), never for invalid tokens.
	//
	// A successful verdict carries the claims as issued, not the user's
	// current namespace/roles: a role change does not retroactively affect
	// an already-issued, unexpired, unrevoked token.
	Validate(ctx context.Context, tokenString string) (*identityDomain.TokenVerdict, error)

	// Refresh exchanges a token for a brand-new one with a brand-new jti.
	// Unlike Validate it tolerates an already-expired token as long as the
	// expiry is within the refresh grace period, letting clients renew
	// silently while bounding how long a leaked token stays refreshable.
	// The predecessor token is not revoked; both remain independently
	// valid/invalid per their own expiry and revocation state.
	//
	// Returns ErrTokenTooOldToRefresh past the grace period and an
	// unauthorized error for bad signatures and missing/inactive users.
	Refresh(ctx context.Context, input *identityDomain.RefreshTokenInput) (*identityDomain.IssueTokenOutput, error)

	// Revoke durably invalidates the token's jti. Idempotent: revoking an
	// already-revoked token is a no-op success. Once revoked, a jti can never
	// again produce a valid verdict, even before its natural expiry.
	Revoke(ctx context.Context, tokenString string) error

	// CleanupRevocations garbage-collects revocation records whose token
	// expired more than the given number of days ago. With dryRun it only
	// counts. This is out-of-band maintenance with no request-path role.
	CleanupRevocations(ctx context.Context, days int, dryRun bool) (int64, error)
}

// NamespaceUseCase manages the tenant boundary records.
type NamespaceUseCase interface {
	// Create registers a new namespace with a validated unique name.
	Create(ctx context.Context, input *identityDomain.CreateNamespaceInput) (*identityDomain.Namespace, error)

	// Get retrieves a namespace by name.
	Get(ctx context.Context, name string) (*identityDomain.Namespace, error)

	// List retrieves namespaces ordered by creation time.
	List(ctx context.Context, offset, limit int) ([]*identityDomain.Namespace, error)

	// Delete removes a namespace and all its users as one atomic batch:
	// users first, then the namespace, inside a single transaction. The
	// "default" namespace is protected and cannot be deleted.
	Delete(ctx context.Context, name string) error
}

// UserUseCase manages directory user records.
type UserUseCase interface {
	// Create registers a new user in an existing namespace with a validated
	// role set.
	Create(ctx context.Context, input *identityDomain.CreateUserInput) (*identityDomain.User, error)

	// Get retrieves a user by ID.
	Get(ctx context.Context, userID uuid.UUID) (*identityDomain.User, error)

	// GetByUsername retrieves a user by its unique username.
	GetByUsername(ctx context.Context, username string) (*identityDomain.User, error)

	// List retrieves users ordered by creation time.
	List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error)

	// Update modifies a user's role set and active flag. Deactivating a user
	// makes every outstanding token for that user fail validation on the
	// liveness check.
	Update(ctx context.Context, userID uuid.UUID, input *identityDomain.UpdateUserInput) (*identityDomain.User, error)

	// Delete removes a user from the directory.
	Delete(ctx context.Context, userID uuid.UUID) error
}
