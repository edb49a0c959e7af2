package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fs9io/identity/internal/config"
	apperrors "github.com/fs9io/identity/internal/errors"
	identityDomain "github.com/fs9io/identity/internal/identity/domain"
	identityService "github.com/fs9io/identity/internal/identity/service"
)

// tokenUseCase implements the TokenUseCase interface.
type tokenUseCase struct {
	codec              identityService.TokenCodec
	userRepo           UserRepository
	namespaceRepo      NamespaceRepository
	revocationRepo     RevocationRepository
	defaultTTL         time.Duration
	refreshGracePeriod time.Duration
}

// Issue mints a signed token for the user.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	input *identityDomain.IssueTokenInput,
) (*identityDomain.IssueTokenOutput, error) {
	ttl, err := t.resolveTTL(input.TTL)
	if err != nil {
		return nil, err
	}

	user, err := t.userRepo.Get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return t.issueForUser(ctx, user, ttl)
}

// Validate checks the token and always answers with a verdict. A non-nil error
// means the check itself could not be carried out (store unreachable), not that
// the token is invalid.
func (t *tokenUseCase) Validate(
	ctx context.Context,
	tokenString string,
) (*identityDomain.TokenVerdict, error) {
	// Signature and structure first: claims from a token that fails
	// verification are untrusted and never reach the stores.
	claims, err := t.codec.Verify(tokenString, false)
	if err != nil {
		switch {
		case errors.Is(err, identityDomain.ErrTokenExpired):
			return identityDomain.InvalidVerdict(identityDomain.ReasonExpired), nil
		case errors.Is(err, identityDomain.ErrTokenSignatureInvalid):
			return identityDomain.InvalidVerdict(identityDomain.ReasonSignatureInvalid), nil
		default:
			return identityDomain.InvalidVerdict(identityDomain.ReasonMalformedToken), nil
		}
	}

	revoked, err := t.revocationRepo.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to check token revocation")
	}
	if revoked {
		return identityDomain.InvalidVerdict(identityDomain.ReasonRevoked), nil
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return identityDomain.InvalidVerdict(identityDomain.ReasonMalformedToken), nil
	}

	user, err := t.userRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return identityDomain.InvalidVerdict(identityDomain.ReasonUserNotFound), nil
		}
		return nil, apperrors.Wrap(err, "failed to look up token subject")
	}
	if !user.IsActive {
		return identityDomain.InvalidVerdict(identityDomain.ReasonUserInactive), nil
	}

	return identityDomain.ValidVerdict(claims), nil
}

// Refresh exchanges a possibly-expired token for a fresh one.
func (t *tokenUseCase) Refresh(
	ctx context.Context,
	input *identityDomain.RefreshTokenInput,
) (*identityDomain.IssueTokenOutput, error) {
	ttl, err := t.resolveTTL(input.TTL)
	if err != nil {
		return nil, err
	}

	// Expiry is tolerated here, but only within the grace period checked
	// below. Signature and structure failures are not.
	claims, err := t.codec.Verify(input.Token, true)
	if err != nil {
		return nil, err
	}

	if time.Now().UTC().After(claims.ExpiresAt.Add(t.refreshGracePeriod)) {
		return nil, identityDomain.ErrTokenTooOldToRefresh
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "token subject is not a valid user ID")
	}

	user, err := t.userRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "token subject no longer exists")
		}
		return nil, apperrors.Wrap(err, "failed to look up token subject")
	}
	if !user.IsActive {
		return nil, identityDomain.ErrUserInactive
	}

	// The replacement snapshots the user's current namespace and roles, so a
	// role change applied since the original issuance takes effect here.
	return t.issueForUser(ctx, user, ttl)
}

// Revoke durably invalidates the token's jti.
func (t *tokenUseCase) Revoke(ctx context.Context, tokenString string) error {
	// Expired tokens remain revocable: the record keeps the jti unusable in
	// case of clock skew and is garbage-collected later.
	claims, err := t.codec.Verify(tokenString, true)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "token subject is not a valid user ID")
	}

	record := &identityDomain.RevocationRecord{
		JTI:       claims.JTI,
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt,
		Revoked:   true,
		RevokedAt: time.Now().UTC(),
	}
	if err := t.revocationRepo.Revoke(ctx, record); err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}

	return nil
}

// CleanupRevocations garbage-collects revocation records for tokens that
// expired more than the given number of days ago.
func (t *tokenUseCase) CleanupRevocations(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "days must not be negative")
	}

	cutoff := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	if dryRun {
		return t.revocationRepo.CountExpired(ctx, cutoff)
	}
	return t.revocationRepo.DeleteExpired(ctx, cutoff)
}

// issueForUser mints a token from a live user record, snapshotting its
// namespace name and roles into the claims.
func (t *tokenUseCase) issueForUser(
	ctx context.Context,
	user *identityDomain.User,
	ttl time.Duration,
) (*identityDomain.IssueTokenOutput, error) {
	namespace, err := t.namespaceRepo.Get(ctx, user.NamespaceID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to resolve user namespace")
	}

	jti, err := identityService.NewJTI()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate token ID")
	}

	now := time.Now().UTC().Truncate(time.Second)
	claims := &identityDomain.Claims{
		Subject:   user.ID.String(),
		Namespace: namespace.Name,
		Roles:     user.Roles,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		JTI:       jti,
	}

	token, err := t.codec.Sign(claims)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign token")
	}

	return &identityDomain.IssueTokenOutput{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// resolveTTL applies the configured default and rejects non-positive values.
func (t *tokenUseCase) resolveTTL(ttl *time.Duration) (time.Duration, error) {
	if ttl == nil {
		return t.defaultTTL, nil
	}
	if *ttl <= 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "ttl must be positive")
	}
	return *ttl, nil
}

// NewTokenUseCase creates a new TokenUseCase with the given dependencies.
func NewTokenUseCase(
	codec identityService.TokenCodec,
	userRepo UserRepository,
	namespaceRepo NamespaceRepository,
	revocationRepo RevocationRepository,
	cfg *config.Config,
) TokenUseCase {
	return &tokenUseCase{
		codec:              codec,
		userRepo:           userRepo,
		namespaceRepo:      namespaceRepo,
		revocationRepo:     revocationRepo,
		defaultTTL:         cfg.TokenDefaultTTL,
		refreshGracePeriod: cfg.TokenRefreshGracePeriod,
	}
}
