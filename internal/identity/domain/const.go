// Package domain defines the identity domain models: namespaces, users,
// token claims, validation verdicts, and revocation records.
package domain

// Role defines the access level a user holds inside its namespace.
// Roles are a closed vocabulary checked at write time.
type Role string

const (
	// RoleReadOnly allows reading namespace resources.
	RoleReadOnly Role = "read-only"

	// RoleReadWrite allows reading and mutating namespace resources.
	RoleReadWrite Role = "read-write"

	// RoleAdmin allows administrative operations inside the namespace.
	RoleAdmin Role = "admin"
)

// DefaultNamespaceName is the protected namespace that cannot be deleted.
const DefaultNamespaceName = "default"

// InvalidReason identifies why a token failed validation. Reasons are part of
// the wire contract: validation always answers with a verdict, never an error.
type InvalidReason string

const (
	// ReasonMalformedToken indicates the token string is not a structurally valid token.
	ReasonMalformedToken InvalidReason = "malformed_token"

	// ReasonSignatureInvalid indicates the token signature does not verify.
	ReasonSignatureInvalid InvalidReason = "signature_invalid"

	// ReasonExpired indicates the token is past its expiry.
	ReasonExpired InvalidReason = "expired"

	// ReasonRevoked indicates the token identifier was explicitly revoked.
	ReasonRevoked InvalidReason = "revoked"

	// ReasonUserNotFound indicates the token subject no longer exists in the directory.
	ReasonUserNotFound InvalidReason = "user_not_found"

	// ReasonUserInactive indicates the token subject exists but is deactivated.
	ReasonUserInactive InvalidReason = "user_inactive"
)

// ValidRoles returns the full role vocabulary.
func ValidRoles() []Role {
	return []Role{RoleReadOnly, RoleReadWrite, RoleAdmin}
}

// IsValidRole reports whether the given role belongs to the vocabulary.
func IsValidRole(role Role) bool {
	switch role {
	case RoleReadOnly, RoleReadWrite, RoleAdmin:
		return true
	default:
		return false
	}
}
