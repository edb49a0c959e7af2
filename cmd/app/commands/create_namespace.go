package commands

import (
	"context"
	"fmt"
	"log/slog"

	identityDomain "github.com/fs9io/identity/internal/identity/domain"
	identityUseCase "github.com/fs9io/identity/internal/identity/usecase"
)

// RunCreateNamespace registers a new namespace in the directory.
// Outputs the created namespace in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateNamespace(
	ctx context.Context,
	namespaceUseCase identityUseCase.NamespaceUseCase,
	logger *slog.Logger,
	name string,
	description string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating namespace", slog.String("name", name))

	input := &identityDomain.CreateNamespaceInput{
		Name:        name,
		Description: description,
	}

	namespace, err := namespaceUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create namespace: %w", err)
	}

	// Output result based on format
	if format == "json" {
		writeJSON(io.Writer, map[string]interface{}{
			"id":          namespace.ID.String(),
			"name":        namespace.Name,
			"description": namespace.Description,
			"created_at":  namespace.CreatedAt,
		})
	} else {
		_, _ = fmt.Fprintf(io.Writer, "Namespace created successfully\n")
		_, _ = fmt.Fprintf(io.Writer, "ID:   %s\n", namespace.ID.String())
		_, _ = fmt.Fprintf(io.Writer, "Name: %s\n", namespace.Name)
	}

	logger.Info("namespace created successfully",
		slog.String("namespace_id", namespace.ID.String()),
		slog.String("name", name),
	)

	return nil
}

// RunDeleteNamespace removes a namespace and all its users.
// The "default" namespace is protected and cannot be deleted.
//
// Requirements: Database must be migrated and accessible.
func RunDeleteNamespace(
	ctx context.Context,
	namespaceUseCase identityUseCase.NamespaceUseCase,
	logger *slog.Logger,
	name string,
	io IOTuple,
) error {
	logger.Info("deleting namespace", slog.String("name", name))

	if err := namespaceUseCase.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete namespace: %w", err)
	}

	_, _ = fmt.Fprintf(io.Writer, "Namespace %q and all its users deleted\n", name)

	logger.Info("namespace deleted successfully", slog.String("name", name))

	return nil
}
