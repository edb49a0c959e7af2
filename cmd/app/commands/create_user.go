package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	identityDomain "github.com/fs9io/identity/internal/identity/domain"
	identityUseCase "github.com/fs9io/identity/internal/identity/usecase"
)

// RunCreateUser registers a new directory user in an existing namespace.
// Roles are given as a comma-separated list (read-only, read-write, admin).
// Outputs the created user in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase identityUseCase.UserUseCase,
	logger *slog.Logger,
	username string,
	namespace string,
	rolesCSV string,
	isActive bool,
	format string,
	io IOTuple,
) error {
	logger.Info("creating user",
		slog.String("username", username),
		slog.String("namespace", namespace),
	)

	roles, err := parseRolesCSV(rolesCSV)
	if err != nil {
		return err
	}

	input := &identityDomain.CreateUserInput{
		Username:  username,
		Namespace: namespace,
		Roles:     roles,
		IsActive:  isActive,
	}

	user, err := userUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Output result based on format
	if format == "json" {
		writeJSON(io.Writer, map[string]interface{}{
			"id":           user.ID.String(),
			"username":     user.Username,
			"namespace_id": user.NamespaceID.String(),
			"roles":        identityDomain.RolesToStrings(user.Roles),
			"is_active":    user.IsActive,
			"created_at":   user.CreatedAt,
		})
	} else {
		_, _ = fmt.Fprintf(io.Writer, "User created successfully\n")
		_, _ = fmt.Fprintf(io.Writer, "ID:       %s\n", user.ID.String())
		_, _ = fmt.Fprintf(io.Writer, "Username: %s\n", user.Username)
		_, _ = fmt.Fprintf(io.Writer, "Roles:    %s\n", strings.Join(identityDomain.RolesToStrings(user.Roles), ","))
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", username),
		slog.Bool("is_active", isActive),
	)

	return nil
}

// parseRolesCSV converts a comma-separated role list into the validated vocabulary.
func parseRolesCSV(rolesCSV string) ([]identityDomain.Role, error) {
	parts := strings.Split(rolesCSV, ",")
	raw := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			raw = append(raw, trimmed)
		}
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("at least one role is required")
	}

	roles, err := identityDomain.ParseRoles(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid roles %q (valid options: read-only, read-write, admin)", rolesCSV)
	}
	return roles, nil
}
