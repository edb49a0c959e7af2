package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fs9io/identity/internal/database"
	apperrors "github.com/fs9io/identity/internal/errors"
	identityDomain "github.com/fs9io/identity/internal/identity/domain"
)

// MySQLRevocationRepository implements the revocation store for MySQL.
// Rows are keyed by jti; the insert is an idempotent upsert so revoking an
// already-revoked token never fails.
type MySQLRevocationRepository struct {
	db *sql.DB
}

// Revoke marks a token identifier as revoked in the MySQL database.
func (m *MySQLRevocationRepository) Revoke(
	ctx context.Context,
	record *identityDomain.RevocationRecord,
) error {
	querier := database.GetTx(ctx, m.db)

	userID, err := record.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	// INSERT IGNORE keeps the original revocation timestamp.
	query := `INSERT IGNORE INTO revocations (jti, user_id, expires_at, revoked, revoked_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		record.JTI,
		userID,
		record.ExpiresAt,
		record.Revoked,
		record.RevokedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}
	return nil
}

// IsRevoked reports whether the token identifier has been revoked.
func (m *MySQLRevocationRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT revoked FROM revocations WHERE jti = ?`

	var revoked bool
	err := querier.QueryRowContext(ctx, query, jti).Scan(&revoked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.Wrap(err, "failed to check token revocation")
	}

	return revoked, nil
}

// DeleteExpired removes revocation records whose token expired before the cutoff.
func (m *MySQLRevocationRepository) DeleteExpired(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM revocations WHERE expires_at < ?`

	result, err := querier.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired revocations")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}

	return rowsAffected, nil
}

// CountExpired returns how many revocation records DeleteExpired would remove.
func (m *MySQLRevocationRepository) CountExpired(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM revocations WHERE expires_at < ?`

	var count int64
	if err := querier.QueryRowContext(ctx, query, cutoff).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired revocations")
	}

	return count, nil
}

// NewMySQLRevocationRepository creates a new MySQLRevocationRepository.
func NewMySQLRevocationRepository(db *sql.DB) *MySQLRevocationRepository {
	return &MySQLRevocationRepository{db: db}
}
