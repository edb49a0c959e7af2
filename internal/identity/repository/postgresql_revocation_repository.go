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

// PostgreSQLRevocationRepository implements the revocation store for PostgreSQL.
// Rows are keyed by jti; the insert is an idempotent upsert so revoking an
// already-revoked token never fails.
type PostgreSQLRevocationRepository struct {
	db *sql.DB
}

// Revoke marks a token identifier as revoked in the PostgreSQL database.
func (p *PostgreSQLRevocationRepository) Revoke(
	ctx context.Context,
	record *identityDomain.RevocationRecord,
) error {
	querier := database.GetTx(ctx, p.db)

	// ON CONFLICT DO NOTHING keeps the original revocation timestamp.
	query := `INSERT INTO revocations (jti, user_id, expires_at, revoked, revoked_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (jti) DO NOTHING`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.JTI,
		record.UserID,
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
func (p *PostgreSQLRevocationRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT revoked FROM revocations WHERE jti = $1`

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
func (p *PostgreSQLRevocationRepository) DeleteExpired(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM revocations WHERE expires_at < $1`

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
func (p *PostgreSQLRevocationRepository) CountExpired(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM revocations WHERE expires_at < $1`

	var count int64
	if err := querier.QueryRowContext(ctx, query, cutoff).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired revocations")
	}

	return count, nil
}

// NewPostgreSQLRevocationRepository creates a new PostgreSQLRevocationRepository.
func NewPostgreSQLRevocationRepository(db *sql.DB) *PostgreSQLRevocationRepository {
	return &PostgreSQLRevocationRepository{db: db}
}
