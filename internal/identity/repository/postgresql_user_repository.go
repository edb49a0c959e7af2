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

// PostgreSQLUserRepository implements User persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
// Roles are stored as a JSON array to keep the column shape identical
// across drivers.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new User into the PostgreSQL database.
func (p *PostgreSQLUserRepository) Create(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, p.db)

	rolesJSON, err := marshalRoles(user.Roles)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (id, username, namespace_id, roles, is_active, created_at)
			  VALUES ($1, $2, $3, $4, $5, NOW())`

	_, err = querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.NamespaceID,
		rolesJSON,
		user.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "username already exists")
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Get retrieves a User by ID from the PostgreSQL database.
func (p *PostgreSQLUserRepository) Get(
	ctx context.Context,
	userID uuid.UUID,
) (*identityDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, username, namespace_id, roles, is_active, created_at, updated_at
			  FROM users WHERE id = $1`

	return scanUser(querier.QueryRowContext(ctx, query, userID))
}

// GetByUsername retrieves a User by its unique username from the PostgreSQL database.
func (p *PostgreSQLUserRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*identityDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, username, namespace_id, roles, is_active, created_at, updated_at
			  FROM users WHERE username = $1`

	return scanUser(querier.QueryRowContext(ctx, query, username))
}

// List retrieves Users ordered by creation time from the PostgreSQL database.
func (p *PostgreSQLUserRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*identityDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, username, namespace_id, roles, is_active, created_at, updated_at
			  FROM users
			  ORDER BY created_at
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer func() { _ = rows.Close() }()

	var users []*identityDomain.User
	for rows.Next() {
		user, err := scanUser(rows)
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

// Update modifies an existing User in the PostgreSQL database.
func (p *PostgreSQLUserRepository) Update(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, p.db)

	rolesJSON, err := marshalRoles(user.Roles)
	if err != nil {
		return err
	}

	query := `UPDATE users
			  SET roles = $1,
			  	  is_active = $2,
				  updated_at = NOW()
			  WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, rolesJSON, user.IsActive, user.ID)
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

// Delete removes a User by ID from the PostgreSQL database.
func (p *PostgreSQLUserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM users WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, userID)
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

// DeleteByNamespace removes all Users owned by the namespace from the PostgreSQL database.
func (p *PostgreSQLUserRepository) DeleteByNamespace(
	ctx context.Context,
	namespaceID uuid.UUID,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM users WHERE namespace_id = $1`

	result, err := querier.ExecContext(ctx, query, namespaceID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete users by namespace")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}

	return rowsAffected, nil
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser scans a user row, decoding the roles JSON column.
func scanUser(row rowScanner) (*identityDomain.User, error) {
	var user identityDomain.User
	var rolesJSON []byte

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.NamespaceID,
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

	if err := json.Unmarshal(rolesJSON, &user.Roles); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user roles")
	}

	return &user, nil
}

// marshalRoles encodes the role set as a JSON array for storage.
func marshalRoles(roles []identityDomain.Role) ([]byte, error) {
	rolesJSON, err := json.Marshal(identityDomain.RolesToStrings(roles))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user roles")
	}
	return rolesJSON, nil
}
