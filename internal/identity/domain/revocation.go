package domain

import (
	"time"

	"github.com/google/uuid"
)

// RevocationRecord marks a token identifier as unusable before its natural
// expiry. The token itself is never stored, only its jti. Records become
// eligible for garbage collection once ExpiresAt has passed, since an expired
// token already fails validation regardless of revocation state.
type RevocationRecord struct {
	JTI       string // unique, 32-character hex
	UserID    uuid.UUID
	ExpiresAt time.Time
	Revoked   bool
	RevokedAt time.Time
}
