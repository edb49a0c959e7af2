package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fs9io/identity/internal/identity/domain"
	apperrors "github.com/fs9io/identity/internal/errors"
)

// tokenClaims is the wire representation of a claim set: three base64url
// segments joined by ".", signed with HMAC-SHA256 over header.claims.
// Registered claims carry sub/iat/exp/jti; ns and roles are custom.
type tokenClaims struct {
	Namespace string   `json:"ns"`
	Roles     []string `json:"roles"`
	jwt.RegisteredClaims
}

// hmacTokenCodec implements TokenCodec with a pre-shared symmetric secret
// and a fixed HS256 algorithm. No algorithm negotiation is supported.
type hmacTokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a TokenCodec signing with the given pre-shared secret.
// An empty secret is a fatal configuration error: it aborts process startup
// and is never retried.
func NewTokenCodec(secret string) (TokenCodec, error) {
	if secret == "" {
		return nil, domain.ErrMissingSigningSecret
	}
	return &hmacTokenCodec{secret: []byte(secret)}, nil
}

// Sign encodes the claim set and signs it with HMAC-SHA256.
func (c *hmacTokenCodec) Sign(claims *domain.Claims) (string, error) {
	wire := tokenClaims{
		Namespace: claims.Namespace,
		Roles:     domain.RolesToStrings(claims.Roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
			ID:        claims.JTI,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, wire)

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// Verify parses the token string, checks the signature and, unless
// allowExpired is set, the expiry. All other claim content is returned as-is:
// claims are a snapshot from issuance, not live directory state.
func (c *hmacTokenCodec) Verify(tokenString string, allowExpired bool) (*domain.Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if allowExpired {
		// The refresher re-checks expiry against the grace period itself.
		options = append(options, jwt.WithoutClaimsValidation())
	}

	parser := jwt.NewParser(options...)
	wire := &tokenClaims{}

	_, err := parser.ParseWithClaims(tokenString, wire, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenSignatureInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		default:
			return nil, domain.ErrTokenMalformed
		}
	}

	return claimsFromWire(wire)
}

// claimsFromWire converts the parsed wire claims into domain claims,
// rejecting tokens missing the registered claims this service always sets.
func claimsFromWire(wire *tokenClaims) (*domain.Claims, error) {
	if wire.Subject == "" || wire.ID == "" || wire.ExpiresAt == nil || wire.IssuedAt == nil {
		return nil, domain.ErrTokenMalformed
	}

	roles, err := domain.ParseRoles(wire.Roles)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	return &domain.Claims{
		Subject:   wire.Subject,
		Namespace: wire.Namespace,
		Roles:     roles,
		IssuedAt:  wire.IssuedAt.Time.UTC().Truncate(time.Second),
		ExpiresAt: wire.ExpiresAt.Time.UTC().Truncate(time.Second),
		JTI:       wire.ID,
	}, nil
}
