package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	identityUseCase "github.com/fs9io/identity/internal/identity/usecase"
)

// RunCleanRevocations deletes revocation records whose token expired more than
// the specified number of days ago. Expired tokens already fail validation on
// the expiry check, so dropping their records never changes a verdict.
// Supports dry-run mode to preview deletion count and both text/JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanRevocations(
	ctx context.Context,
	tokenUseCase identityUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	// Validate days parameter
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	logger.Info("cleaning revocation records",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	count, err := tokenUseCase.CleanupRevocations(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("failed to cleanup revocation records: %w", err)
	}

	// Output result based on format
	if format == "json" {
		writeJSON(writer, map[string]interface{}{
			"count":   count,
			"days":    days,
			"dry_run": dryRun,
		})
	} else if dryRun {
		_, _ = fmt.Fprintf(writer, "Dry-run mode: Would delete %d revocation record(s) older than %d day(s)\n", count, days)
	} else {
		_, _ = fmt.Fprintf(writer, "Successfully deleted %d revocation record(s) older than %d day(s)\n", count, days)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}
