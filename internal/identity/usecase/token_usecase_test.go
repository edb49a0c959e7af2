package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fs9io/identity/internal/config"
	apperrors "github.com/fs9io/identity/internal/errors"
	identityDomain "github.com/fs9io/identity/internal/identity/domain"
	identityService "github.com/fs9io/identity/internal/identity/service"
	usecaseMocks "github.com/fs9io/identity/internal/identity/usecase/mocks"
)

const testSigningSecret = "test-signing-secret-at-least-32-bytes!!"

func newTestTokenUseCase(
	t *testing.T,
	cfg *config.Config,
) (TokenUseCase, *usecaseMocks.MockUserRepository, *usecaseMocks.MockNamespaceRepository, *usecaseMocks.MockRevocationRepository) {
	t.Helper()

	codec, err := identityService.NewTokenCodec(testSigningSecret)
	require.NoError(t, err)

	userRepo := usecaseMocks.NewMockUserRepository(t)
	namespaceRepo := usecaseMocks.NewMockNamespaceRepository(t)
	revocationRepo := usecaseMocks.NewMockRevocationRepository(t)

	if cfg == nil {
		cfg = &config.Config{
			TokenDefaultTTL:         24 * time.Hour,
			TokenRefreshGracePeriod: 168 * time.Hour,
		}
	}

	uc := NewTokenUseCase(codec, userRepo, namespaceRepo, revocationRepo, cfg)
	return uc, userRepo, namespaceRepo, revocationRepo
}

func testUserAndNamespace() (*identityDomain.User, *identityDomain.Namespace) {
	namespace := &identityDomain.Namespace{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      "tenant-a",
		CreatedAt: time.Now().UTC(),
	}
	user := &identityDomain.User{
		ID:          uuid.Must(uuid.NewV7()),
		Username:    "alice",
		NamespaceID: namespace.ID,
		Roles:       []identityDomain.Role{identityDomain.RoleReadWrite},
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	return user, namespace
}

func TestTokenUseCase_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_IssueWithDefaultTTL", func(t *testing.T) {
		uc, userRepo, namespaceRepo, _ := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil)
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)

		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID})

		require.NoError(t, err)
		assert.NotEmpty(t, output.Token)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), output.ExpiresAt, 5*time.Second)
	})

	t.Run("Success_IssueWithExplicitTTL", func(t *testing.T) {
		uc, userRepo, namespaceRepo, _ := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil)
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)

		ttl := time.Hour
		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID, TTL: &ttl})

		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), output.ExpiresAt, 5*time.Second)
	})

	t.Run("Success_DistinctTokensPerIssue", func(t *testing.T) {
		uc, userRepo, namespaceRepo, _ := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil).Twice()
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil).Twice()

		first, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID})
		require.NoError(t, err)
		second, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID})
		require.NoError(t, err)

		// Each issuance mints a fresh jti, so the tokens differ even when
		// claims and timestamps coincide.
		assert.NotEqual(t, first.Token, second.Token)
	})

	t.Run("Error_NonPositiveTTL", func(t *testing.T) {
		uc, _, _, _ := newTestTokenUseCase(t, nil)
		user, _ := testUserAndNamespace()

		ttl := -time.Hour
		_, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID, TTL: &ttl})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_UserNotFound", func(t *testing.T) {
		uc, userRepo, _, _ := newTestTokenUseCase(t, nil)
		missingID := uuid.Must(uuid.NewV7())

		userRepo.On("Get", ctx, missingID).Return(nil, identityDomain.ErrUserNotFound)

		_, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: missingID})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestTokenUseCase_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ValidToken", func(t *testing.T) {
		uc, userRepo, namespaceRepo, revocationRepo := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil)
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)
		revocationRepo.On("IsRevoked", ctx, mock.Anything).Return(false, nil)

		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID})
		require.NoError(t, err)

		verdict, err := uc.Validate(ctx, output.Token)

		require.NoError(t, err)
		assert.True(t, verdict.Valid)
		assert.Equal(t, user.ID.String(), verdict.Subject)
		assert.Equal(t, "tenant-a", verdict.Namespace)
		assert.Equal(t, []identityDomain.Role{identityDomain.RoleReadWrite}, verdict.Roles)
	})

	t.Run("Success_InvalidVerdict_Garbage", func(t *testing.T) {
		uc, _, _, _ := newTestTokenUseCase(t, nil)

		verdict, err := uc.Validate(ctx, "not-a-token")

		// Invalid input is a verdict, never an error.
		require.NoError(t, err)
		assert.False(t, verdict.Valid)
		assert.Equal(t, identityDomain.ReasonMalformedToken, verdict.Reason)
	})

	t.Run("Success_InvalidVerdict_Expired", func(t *testing.T) {
		uc, userRepo, namespaceRepo, _ := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil)
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)

		ttl := time.Second
		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID, TTL: &ttl})
		require.NoError(t, err)

		time.Sleep(1100 * time.Millisecond)

		verdict, err := uc.Validate(ctx, output.Token)

		require.NoError(t, err)
		assert.False(t, verdict.Valid)
		assert.Equal(t, identityDomain.ReasonExpired, verdict.Reason)
	})

	t.Run("Success_InvalidVerdict_Revoked", func(t *testing.T) {
		uc, userRepo, namespaceRepo, revocationRepo := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil)
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)
		revocationRepo.On("IsRevoked", ctx, mock.Anything).Return(true, nil)

		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID})
		require.NoError(t, err)

		verdict, err := uc.Validate(ctx, output.Token)

		require.NoError(t, err)
		assert.False(t, verdict.Valid)
		assert.Equal(t, identityDomain.ReasonRevoked, verdict.Reason)
	})

	t.Run("Success_InvalidVerdict_UserDeleted", func(t *testing.T) {
		uc, userRepo, namespaceRepo, revocationRepo := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil).Once()
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)
		revocationRepo.On("IsRevoked", ctx, mock.Anything).Return(false, nil)

		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID})
		require.NoError(t, err)

		// Directory record gone between issuance and validation.
		userRepo.On("Get", ctx, user.ID).Return(nil, identityDomain.ErrUserNotFound).Once()

		verdict, err := uc.Validate(ctx, output.Token)

		require.NoError(t, err)
		assert.False(t, verdict.Valid)
		assert.Equal(t, identityDomain.ReasonUserNotFound, verdict.Reason)
	})

	t.Run("Success_InvalidVerdict_UserDeactivated", func(t *testing.T) {
		uc, userRepo, namespaceRepo, revocationRepo := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil).Once()
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)
		revocationRepo.On("IsRevoked", ctx, mock.Anything).Return(false, nil)

		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID})
		require.NoError(t, err)

		inactive := *user
		inactive.IsActive = false
		userRepo.On("Get", ctx, user.ID).Return(&inactive, nil).Once()

		verdict, err := uc.Validate(ctx, output.Token)

		require.NoError(t, err)
		assert.False(t, verdict.Valid)
		assert.Equal(t, identityDomain.ReasonUserInactive, verdict.Reason)
	})

	t.Run("Success_ExpiryCheckedBeforeRevocation", func(t *testing.T) {
		uc, userRepo, namespaceRepo, _ := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil)
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)

		ttl := time.Second
		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID, TTL: &ttl})
		require.NoError(t, err)

		time.Sleep(1100 * time.Millisecond)

		// The revocation repository has no expectations: an expired token
		// must short-circuit before the store is consulted.
		verdict, err := uc.Validate(ctx, output.Token)

		require.NoError(t, err)
		assert.Equal(t, identityDomain.ReasonExpired, verdict.Reason)
	})

	t.Run("Error_RevocationStoreUnavailable", func(t *testing.T) {
		uc, userRepo, namespaceRepo, revocationRepo := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil)
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)
		revocationRepo.On("IsRevoked", ctx, mock.Anything).Return(false, errors.New("connection refused"))

		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID})
		require.NoError(t, err)

		verdict, err := uc.Validate(ctx, output.Token)

		// Infrastructure failure is an error, not an invalid verdict.
		assert.Error(t, err)
		assert.Nil(t, verdict)
	})
}

func TestTokenUseCase_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RefreshUnexpiredToken", func(t *testing.T) {
		uc, userRepo, namespaceRepo, _ := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil)
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)

		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID})
		require.NoError(t, err)

		refreshed, err := uc.Refresh(ctx, &identityDomain.RefreshTokenInput{Token: output.Token})

		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.Token)
		assert.NotEqual(t, output.Token, refreshed.Token)
	})

	t.Run("Success_RefreshExpiredTokenWithinGrace", func(t *testing.T) {
		uc, userRepo, namespaceRepo, _ := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil)
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)

		ttl := time.Second
		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID, TTL: &ttl})
		require.NoError(t, err)

		time.Sleep(1100 * time.Millisecond)

		refreshed, err := uc.Refresh(ctx, &identityDomain.RefreshTokenInput{Token: output.Token})

		require.NoError(t, err)
		assert.True(t, refreshed.ExpiresAt.After(time.Now()))
	})

	t.Run("Success_RefreshPicksUpRoleChanges", func(t *testing.T) {
		uc, userRepo, namespaceRepo, revocationRepo := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil).Once()
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)
		revocationRepo.On("IsRevoked", ctx, mock.Anything).Return(false, nil)

		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID})
		require.NoError(t, err)

		promoted := *user
		promoted.Roles = []identityDomain.Role{identityDomain.RoleAdmin}
		userRepo.On("Get", ctx, user.ID).Return(&promoted, nil)

		refreshed, err := uc.Refresh(ctx, &identityDomain.RefreshTokenInput{Token: output.Token})
		require.NoError(t, err)

		verdict, err := uc.Validate(ctx, refreshed.Token)
		require.NoError(t, err)
		assert.Equal(t, []identityDomain.Role{identityDomain.RoleAdmin}, verdict.Roles)
	})

	t.Run("Error_PastGracePeriod", func(t *testing.T) {
		cfg := &config.Config{
			TokenDefaultTTL:         24 * time.Hour,
			TokenRefreshGracePeriod: time.Second,
		}
		uc, userRepo, namespaceRepo, _ := newTestTokenUseCase(t, cfg)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil)
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)

		ttl := time.Second
		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID, TTL: &ttl})
		require.NoError(t, err)

		time.Sleep(2100 * time.Millisecond)

		_, err = uc.Refresh(ctx, &identityDomain.RefreshTokenInput{Token: output.Token})

		assert.ErrorIs(t, err, identityDomain.ErrTokenTooOldToRefresh)
	})

	t.Run("Error_TamperedToken", func(t *testing.T) {
		uc, _, _, _ := newTestTokenUseCase(t, nil)

		_, err := uc.Refresh(ctx, &identityDomain.RefreshTokenInput{Token: "garbage.token.value"})

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_SubjectDeleted", func(t *testing.T) {
		uc, userRepo, namespaceRepo, _ := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil).Once()
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)

		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID})
		require.NoError(t, err)

		userRepo.On("Get", ctx, user.ID).Return(nil, identityDomain.ErrUserNotFound).Once()

		_, err = uc.Refresh(ctx, &identityDomain.RefreshTokenInput{Token: output.Token})

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_SubjectDeactivated", func(t *testing.T) {
		uc, userRepo, namespaceRepo, _ := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil).Once()
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)

		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID})
		require.NoError(t, err)

		inactive := *user
		inactive.IsActive = false
		userRepo.On("Get", ctx, user.ID).Return(&inactive, nil).Once()

		_, err = uc.Refresh(ctx, &identityDomain.RefreshTokenInput{Token: output.Token})

		assert.ErrorIs(t, err, identityDomain.ErrUserInactive)
	})

	t.Run("Success_PredecessorStillValidAfterRefresh", func(t *testing.T) {
		uc, userRepo, namespaceRepo, revocationRepo := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil)
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)
		revocationRepo.On("IsRevoked", ctx, mock.Anything).Return(false, nil)

		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID})
		require.NoError(t, err)

		_, err = uc.Refresh(ctx, &identityDomain.RefreshTokenInput{Token: output.Token})
		require.NoError(t, err)

		// Refresh does not revoke the replaced token.
		verdict, err := uc.Validate(ctx, output.Token)
		require.NoError(t, err)
		assert.True(t, verdict.Valid)
	})
}

func TestTokenUseCase_Revoke(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RevokeToken", func(t *testing.T) {
		uc, userRepo, namespaceRepo, revocationRepo := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil)
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)

		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID})
		require.NoError(t, err)

		revocationRepo.On("Revoke", ctx, mock.MatchedBy(func(r *identityDomain.RevocationRecord) bool {
			return r.Revoked && r.UserID == user.ID && len(r.JTI) == 32
		})).Return(nil)

		err = uc.Revoke(ctx, output.Token)

		assert.NoError(t, err)
	})

	t.Run("Success_RevokeIsIdempotent", func(t *testing.T) {
		uc, userRepo, namespaceRepo, revocationRepo := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil)
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)
		revocationRepo.On("Revoke", ctx, mock.Anything).Return(nil).Twice()

		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID})
		require.NoError(t, err)

		assert.NoError(t, uc.Revoke(ctx, output.Token))
		assert.NoError(t, uc.Revoke(ctx, output.Token))
	})

	t.Run("Success_RevokeExpiredToken", func(t *testing.T) {
		uc, userRepo, namespaceRepo, revocationRepo := newTestTokenUseCase(t, nil)
		user, namespace := testUserAndNamespace()

		userRepo.On("Get", ctx, user.ID).Return(user, nil)
		namespaceRepo.On("Get", ctx, namespace.ID).Return(namespace, nil)
		revocationRepo.On("Revoke", ctx, mock.Anything).Return(nil)

		ttl := time.Second
		output, err := uc.Issue(ctx, &identityDomain.IssueTokenInput{UserID: user.ID, TTL: &ttl})
		require.NoError(t, err)

		time.Sleep(1100 * time.Millisecond)

		assert.NoError(t, uc.Revoke(ctx, output.Token))
	})

	t.Run("Error_MalformedToken", func(t *testing.T) {
		uc, _, _, _ := newTestTokenUseCase(t, nil)

		err := uc.Revoke(ctx, "garbage")

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestTokenUseCase_CleanupRevocations(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DeleteExpired", func(t *testing.T) {
		uc, _, _, revocationRepo := newTestTokenUseCase(t, nil)

		revocationRepo.On("DeleteExpired", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
			expected := time.Now().UTC().Add(-30 * 24 * time.Hour)
			return cutoff.Sub(expected).Abs() < 5*time.Second
		})).Return(int64(7), nil)

		count, err := uc.CleanupRevocations(ctx, 30, false)

		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})

	t.Run("Success_DryRunOnlyCounts", func(t *testing.T) {
		uc, _, _, revocationRepo := newTestTokenUseCase(t, nil)

		revocationRepo.On("CountExpired", ctx, mock.Anything).Return(int64(3), nil)

		count, err := uc.CleanupRevocations(ctx, 30, true)

		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("Error_NegativeDays", func(t *testing.T) {
		uc, _, _, _ := newTestTokenUseCase(t, nil)

		_, err := uc.CleanupRevocations(ctx, -1, false)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}
