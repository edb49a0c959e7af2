package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	identityDomain "github.com/fs9io/identity/internal/identity/domain"
	identityUseCase "github.com/fs9io/identity/internal/identity/usecase"
)

// RunIssueToken mints a signed token for a directory user.
// A ttlSeconds of zero selects the configured default lifetime.
// Outputs the token and its expiry in either text or JSON format.
//
// SECURITY: The token is printed once and must be saved securely.
//
// Requirements: Database must be migrated and accessible.
func RunIssueToken(
	ctx context.Context,
	tokenUseCase identityUseCase.TokenUseCase,
	logger *slog.Logger,
	userIDStr string,
	ttlSeconds int,
	format string,
	io IOTuple,
) error {
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return fmt.Errorf("invalid user ID format: must be a valid UUID")
	}

	logger.Info("issuing token", slog.String("user_id", userID.String()))

	input := &identityDomain.IssueTokenInput{
		UserID: userID,
	}
	if ttlSeconds > 0 {
		ttl := time.Duration(ttlSeconds) * time.Second
		input.TTL = &ttl
	}

	output, err := tokenUseCase.Issue(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	// Output result based on format
	if format == "json" {
		writeJSON(io.Writer, map[string]interface{}{
			"token":      output.Token,
			"expires_at": output.ExpiresAt,
		})
	} else {
		_, _ = fmt.Fprintf(io.Writer, "Token issued successfully\n")
		_, _ = fmt.Fprintf(io.Writer, "Token:      %s\n", output.Token)
		_, _ = fmt.Fprintf(io.Writer, "Expires at: %s\n", output.ExpiresAt.Format(time.RFC3339))
	}

	logger.Info("token issued successfully",
		slog.String("user_id", userID.String()),
		slog.Time("expires_at", output.ExpiresAt),
	)

	return nil
}
