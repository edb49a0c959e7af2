// Package repository provides data persistence implementations for the
// identity directory and the token revocation store, for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/fs9io/identity/internal/database"
	apperrors "github.com/fs9io/identity/internal/errors"
	identityDomain "github.com/fs9io/identity/internal/identity/domain"
)

// PostgreSQLNamespaceRepository implements Namespace persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLNamespaceRepository struct {
	db *sql.DB
}

// Create inserts a new Namespace into the PostgreSQL database.
func (p *PostgreSQLNamespaceRepository) Create(
	ctx context.Context,
	namespace *identityDomain.Namespace,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO namespaces (id, name, description, created_at)
			  VALUES ($1, $2, $3, NOW())`

	_, err := querier.ExecContext(ctx, query, namespace.ID, namespace.Name, namespace.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "namespace already exists")
		}
		return apperrors.Wrap(err, "failed to create namespace")
	}
	return nil
}

// Get retrieves a Namespace by ID from the PostgreSQL database.
func (p *PostgreSQLNamespaceRepository) Get(
	ctx context.Context,
	namespaceID uuid.UUID,
) (*identityDomain.Namespace, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, description, created_at
			  FROM namespaces WHERE id = $1`

	var namespace identityDomain.Namespace
	err := querier.QueryRowContext(ctx, query, namespaceID).Scan(
		&namespace.ID, &namespace.Name, &namespace.Description, &namespace.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrNamespaceNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get namespace by id")
	}

	return &namespace, nil
}

// GetByName retrieves a Namespace by its unique name from the PostgreSQL database.
func (p *PostgreSQLNamespaceRepository) GetByName(
	ctx context.Context,
	name string,
) (*identityDomain.Namespace, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, description, created_at
			  FROM namespaces WHERE name = $1`

	var namespace identityDomain.Namespace
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&namespace.ID, &namespace.Name, &namespace.Description, &namespace.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrNamespaceNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get namespace by name")
	}

	return &namespace, nil
}

// List retrieves Namespaces ordered by creation time from the PostgreSQL database.
func (p *PostgreSQLNamespaceRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*identityDomain.Namespace, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, description, created_at
			  FROM namespaces
			  ORDER BY created_at
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list namespaces")
	}
	defer func() { _ = rows.Close() }()

	var namespaces []*identityDomain.Namespace
	for rows.Next() {
		var namespace identityDomain.Namespace
		if err := rows.Scan(
			&namespace.ID, &namespace.Name, &namespace.Description, &namespace.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan namespace")
		}
		namespaces = append(namespaces, &namespace)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate namespaces")
	}

	return namespaces, nil
}

// Delete removes a Namespace by ID from the PostgreSQL database.
func (p *PostgreSQLNamespaceRepository) Delete(ctx context.Context, namespaceID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM namespaces WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, namespaceID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete namespace")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return identityDomain.ErrNamespaceNotFound
	}

	return nil
}

// NewPostgreSQLNamespaceRepository creates a new PostgreSQLNamespaceRepository.
func NewPostgreSQLNamespaceRepository(db *sql.DB) *PostgreSQLNamespaceRepository {
	return &PostgreSQLNamespaceRepository{db: db}
}

// isUniqueViolation checks if the error is a unique constraint violation.
// Works for both PostgreSQL ("duplicate key value violates unique constraint")
// and MySQL ("Error 1062 ... Duplicate entry").
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "duplicate entry")
}
