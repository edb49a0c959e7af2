package domain

import (
	"time"

	"github.com/google/uuid"
)

// Claims is the payload embedded in a signed token. Claims are a point-in-time
// snapshot taken at issuance: namespace and roles are never re-synchronized
// against live directory state during validation, only the user's active flag
// is re-checked. A role change therefore does not affect an already-issued,
// unexpired, unrevoked token.
type Claims struct {
	Subject   string // user ID
	Namespace string // namespace name at issuance
	Roles     []Role // role snapshot at issuance
	IssuedAt  time.Time
	ExpiresAt time.Time
	JTI       string // 32-character hex token identifier, 128 bits of randomness
}

// TokenVerdict is the structured result of token validation. Validation is a
// boundary API called on every authorized downstream operation, so it always
// answers with a verdict instead of forcing error handling onto callers.
type TokenVerdict struct {
	Valid     bool
	Reason    InvalidReason // set only when Valid is false
	Subject   string
	Namespace string
	Roles     []Role
	ExpiresAt time.Time
}

// InvalidVerdict builds a failed verdict for the given reason.
func InvalidVerdict(reason InvalidReason) *TokenVerdict {
	return &TokenVerdict{Valid: false, Reason: reason}
}

// ValidVerdict builds a successful verdict carrying the claims as issued.
func ValidVerdict(claims *Claims) *TokenVerdict {
	return &TokenVerdict{
		Valid:     true,
		Subject:   claims.Subject,
		Namespace: claims.Namespace,
		Roles:     claims.Roles,
		ExpiresAt: claims.ExpiresAt,
	}
}

// IssueTokenInput contains the parameters for issuing a token.
// A nil TTL selects the configured default.
type IssueTokenInput struct {
	UserID uuid.UUID
	TTL    *time.Duration
}

// IssueTokenOutput contains the result of issuing or refreshing a token.
type IssueTokenOutput struct {
	Token     string
	ExpiresAt time.Time
}

// RefreshTokenInput contains the parameters for refreshing a token.
// A nil TTL selects the configured default for the replacement token.
type RefreshTokenInput struct {
	Token string
	TTL   *time.Duration
}
