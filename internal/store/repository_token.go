package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jmrodas/parkings-api/internal/logger"
	"github.com/jmrodas/parkings-api/models"
)

// TokenStore implements TokenRepository on the tokens table.
type TokenStore struct {
	db      *Database
	builder sq.StatementBuilderType
}

var _ TokenRepository = (*TokenStore)(nil)

// NewTokenStore builds a TokenStore bound to db.
func NewTokenStore(db *Database) *TokenStore {
	var placeholder sq.PlaceholderFormat = sq.Question
	if db.Driver() == DriverPostgres {
		placeholder = sq.Dollar
	}

	return &TokenStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// Save stores a newly issued token record.
func (s *TokenStore) Save(ctx context.Context, record models.TokenRecord) error {
	query, args, err := s.builder.
		Insert("tokens").
		Columns("token_hash", "user_id", "issued_at", "expires_at", "revoked").
		Values(record.TokenHash, record.UserID, record.IssuedAt, record.ExpiresAt, record.Revoked).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	logQuery(ctx, query, args)

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Find loads a token record by digest.
func (s *TokenStore) Find(ctx context.Context, tokenHash string) (models.TokenRecord, error) {
	query, args, err := s.builder.
		Select("token_hash", "user_id", "issued_at", "expires_at", "revoked").
		From("tokens").
		Where(sq.Eq{"token_hash": tokenHash}).
		ToSql()
	if err != nil {
		return models.TokenRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	logQuery(ctx, query, args)

	var record models.TokenRecord
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&record.TokenHash,
		&record.UserID,
		&record.IssuedAt,
		&record.ExpiresAt,
		&record.Revoked,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TokenRecord{}, ErrTokenNotFound
	}
	if err != nil {
		return models.TokenRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return record, nil
}

// Revoke marks the token revoked. Unknown digests are ignored.
func (s *TokenStore) Revoke(ctx context.Context, tokenHash string) error {
	query, args, err := s.builder.
		Update("tokens").
		Set("revoked", true).
		Where(sq.Eq{"token_hash": tokenHash}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	logQuery(ctx, query, args)

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// PurgeExpired deletes token records past their expiry.
func (s *TokenStore) PurgeExpired(ctx context.Context) (int64, error) {
	query, args, err := s.builder.
		Delete("tokens").
		Where(sq.Lt{"expires_at": time.Now()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	logQuery(ctx, query, args)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if purged > 0 {
		logger.FromContext(ctx).Info().Int64("purged", purged).Msg("expired tokens purged")
	}

	return purged, nil
}
