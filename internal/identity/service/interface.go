// Package service implements stateless identity services: the token codec
// that signs and verifies claim sets, and token identifier generation.
package service

import (
	"github.com/fs9io/identity/internal/identity/domain"
)

// TokenCodec signs a claim set into a token string and verifies/parses a
// token string back into a claim set. Both directions are pure
// transformations with no side effects.
type TokenCodec interface {
	// Sign encodes and signs the claim set, returning the token string.
	Sign(claims *domain.Claims) (string, error)

	// Verify parses and verifies a token string. When allowExpired is true an
	// expiry-only failure is suppressed and the claims are still returned;
	// malformed input and signature failures are rejected either way.
	// Returns ErrTokenMalformed, ErrTokenSignatureInvalid or ErrTokenExpired.
	Verify(tokenString string, allowExpired bool) (*domain.Claims, error)
}
