package domain

import (
	"github.com/fs9io/identity/internal/errors"
)

// Identity domain errors.
var (
	// ErrNamespaceNotFound indicates a namespace with the specified name was not found.
	ErrNamespaceNotFound = errors.Wrap(errors.ErrNotFound, "namespace not found")

	// ErrNamespaceProtected indicates an attempt to delete the protected default namespace.
	ErrNamespaceProtected = errors.Wrap(errors.ErrForbidden, "namespace is protected")

	// ErrUserNotFound indicates a user with the specified ID was not found.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserInactive indicates the user exists but is deactivated.
	ErrUserInactive = errors.Wrap(errors.ErrUnauthorized, "user is inactive")

	// ErrInvalidRole indicates a role outside the allowed vocabulary.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")

	// ErrTokenMalformed indicates the token string is not structurally valid.
	ErrTokenMalformed = errors.Wrap(errors.ErrUnauthorized, "malformed token")

	// ErrTokenSignatureInvalid indicates the token signature does not verify.
	ErrTokenSignatureInvalid = errors.Wrap(errors.ErrUnauthorized, "invalid token signature")

	// ErrTokenExpired indicates the token is past its expiry.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrTokenTooOldToRefresh indicates the token expired beyond the refresh grace period.
	ErrTokenTooOldToRefresh = errors.Wrap(errors.ErrUnauthorized, "token too old to refresh")

	// ErrMissingSigningSecret indicates the token signing secret is not configured.
	// This is fatal at startup and never surfaced per-request.
	ErrMissingSigningSecret = errors.Wrap(errors.ErrConfig, "missing token signing secret")
)
