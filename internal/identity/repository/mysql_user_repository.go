package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/fs9io/identity/internal/database"
	apperrors "github.com/fs9io/identity/internal/errors"
	identityDomain "github.com/fs9io/identity/internal/identity/domain"
)

// MySQLUserRepository implements User persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
// Roles are stored as a JSON array to keep the column shape identical
// across drivers.
type MySQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new User into the MySQL database.
func (m *MySQLUserRepository) Create(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	namespaceID, err := user.NamespaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal namespace id")
	}

	rolesJSON, err := marshalRoles(user.Roles)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (id, username, namespace_id, roles, is_active, created_at)
			  VALUES (?, ?, ?, ?, ?, NOW())`

	_, err = querier.ExecContext(ctx, query, id, user.Username, namespaceID, rolesJSON, user.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "username already exists")
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Get retrieves a User by ID from the MySQL database.
func (m *MySQLUserRepository) Get(
	ctx context.Context,
	userID uuid.UUID,
) (*identityDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT id, username, namespace_id, roles, is_active, created_at, updated_at
			  FROM users WHERE id = ?`

	return scanMySQLUser(querier.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves a User by its unique username from the MySQL database.
func (m *MySQLUserRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*identityDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, username, namespace_id, roles, is_active, created_at, updated_at
			  FROM users WHERE username = ?`

	return scanMySQLUser(querier.QueryRowContext(ctx, query, username))
}

// List retrieves Users ordered by creation time from the MySQL database.
func (m *MySQLUserRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*identityDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, username, namespace_id, roles, is_active, created_at, updated_at
			  FROM users
			  ORDER BY created_at
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer func() { _ = rows.Close() }()

	var users []*identityDomain.User
	for rows.Next() {
		user, err := scanMySQLUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}

	return users, nil
}

// Update modifies an existing User in the MySQL database.
func (m *MySQLUserRepository) Update(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	rolesJSON, err := marshalRoles(user.Roles)
	if err != nil {
		return err
	}

	query := `UPDATE users
			  SET roles = ?,
			  	  is_active = ?,
				  updated_at = NOW()
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, rolesJSON, user.IsActive, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return identityDomain.ErrUserNotFound
	}

	return nil
}

// Delete removes a User by ID from the MySQL database.
func (m *MySQLUserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `DELETE FROM users WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return identityDomain.ErrUserNotFound
	}

	return nil
}

// DeleteByNamespace removes all Users owned by the namespace from the MySQL database.
func (m *MySQLUserRepository) DeleteByNamespace(
	ctx context.Context,
	namespaceID uuid.UUID,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := namespaceID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal namespace id")
	}

	query := `DELETE FROM users WHERE namespace_id = ?`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete users by namespace")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}

	return rowsAffected, nil
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// scanMySQLUser scans a user row, decoding BINARY(16) ids and the roles JSON column.
func scanMySQLUser(row rowScanner) (*identityDomain.User, error) {
	var user identityDomain.User
	var idBytes []byte
	var namespaceIDBytes []byte
	var rolesJSON []byte

	err := row.Scan(
		&idBytes,
		&user.Username,
		&namespaceIDBytes,
		&rolesJSON,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to scan user")
	}

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}
	if err := user.NamespaceID.UnmarshalBinary(namespaceIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal namespace id")
	}
	if err := json.Unmarshal(rolesJSON, &user.Roles); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user roles")
	}

	return &user, nil
}
