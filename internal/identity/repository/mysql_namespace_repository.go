package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/fs9io/identity/internal/database"
	apperrors "github.com/fs9io/identity/internal/errors"
	identityDomain "github.com/fs9io/identity/internal/identity/domain"
)

// MySQLNamespaceRepository implements Namespace persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLNamespaceRepository struct {
	db *sql.DB
}

// Create inserts a new Namespace into the MySQL database.
func (m *MySQLNamespaceRepository) Create(
	ctx context.Context,
	namespace *identityDomain.Namespace,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := namespace.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal namespace id")
	}

	query := `INSERT INTO namespaces (id, name, description, created_at)
			  VALUES (?, ?, ?, NOW())`

	_, err = querier.ExecContext(ctx, query, id, namespace.Name, namespace.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "namespace already exists")
		}
		return apperrors.Wrap(err, "failed to create namespace")
	}
	return nil
}

// Get retrieves a Namespace by ID from the MySQL database.
func (m *MySQLNamespaceRepository) Get(
	ctx context.Context,
	namespaceID uuid.UUID,
) (*identityDomain.Namespace, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := namespaceID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal namespace id")
	}

	query := `SELECT id, name, description, created_at
			  FROM namespaces WHERE id = ?`

	return scanMySQLNamespace(querier.QueryRowContext(ctx, query, id))
}

// GetByName retrieves a Namespace by its unique name from the MySQL database.
func (m *MySQLNamespaceRepository) GetByName(
	ctx context.Context,
	name string,
) (*identityDomain.Namespace, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, description, created_at
			  FROM namespaces WHERE name = ?`

	return scanMySQLNamespace(querier.QueryRowContext(ctx, query, name))
}

// List retrieves Namespaces ordered by creation time from the MySQL database.
func (m *MySQLNamespaceRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*identityDomain.Namespace, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, description, created_at
			  FROM namespaces
			  ORDER BY created_at
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list namespaces")
	}
	defer func() { _ = rows.Close() }()

	var namespaces []*identityDomain.Namespace
	for rows.Next() {
		namespace, err := scanMySQLNamespace(rows)
		if err != nil {
			return nil, err
		}
		namespaces = append(namespaces, namespace)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate namespaces")
	}

	return namespaces, nil
}

// Delete removes a Namespace by ID from the MySQL database.
func (m *MySQLNamespaceRepository) Delete(ctx context.Context, namespaceID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := namespaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal namespace id")
	}

	query := `DELETE FROM namespaces WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, id)
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

// NewMySQLNamespaceRepository creates a new MySQLNamespaceRepository.
func NewMySQLNamespaceRepository(db *sql.DB) *MySQLNamespaceRepository {
	return &MySQLNamespaceRepository{db: db}
}

// scanMySQLNamespace scans a namespace row, decoding the BINARY(16) id column.
func scanMySQLNamespace(row rowScanner) (*identityDomain.Namespace, error) {
	var namespace identityDomain.Namespace
	var idBytes []byte

	err := row.Scan(&idBytes, &namespace.Name, &namespace.Description, &namespace.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrNamespaceNotFound
		}
		return nil, apperrors.Wrap(err, "failed to scan namespace")
	}

	if err := namespace.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal namespace id")
	}

	return &namespace, nil
}
