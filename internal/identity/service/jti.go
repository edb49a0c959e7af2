package service

import (
	"crypto/rand"
	"encoding/hex"

	apperrors "github.com/fs9io/identity/internal/errors"
)

// NewJTI generates a unique token identifier: 128 bits of cryptographically
// secure randomness encoded as a 32-character hex string. Identifiers are
// never reused; revocation tracks them instead of the token itself.
func NewJTI() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", apperrors.Wrap(err, "failed to generate token identifier")
	}
	return hex.EncodeToString(buf), nil
}
