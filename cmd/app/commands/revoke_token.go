package commands

import (
	"context"
	"fmt"
	"log/slog"

	identityUseCase "github.com/fs9io/identity/internal/identity/usecase"
)

// RunRevokeToken durably invalidates a token before its natural expiry.
// Idempotent: revoking an already-revoked token succeeds.
//
// Requirements: Database must be migrated and accessible.
func RunRevokeToken(
	ctx context.Context,
	tokenUseCase identityUseCase.TokenUseCase,
	logger *slog.Logger,
	token string,
	io IOTuple,
) error {
	logger.Info("revoking token")

	if err := tokenUseCase.Revoke(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	_, _ = fmt.Fprintln(io.Writer, "Token revoked successfully")

	logger.Info("token revoked successfully")

	return nil
}
