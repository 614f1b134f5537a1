package store

import (
	"context"

	"github.com/jmrodas/parkings-api/models"
)

// RecordQuerier is the generic table access contract consumed by the service
// layer. Every method takes the table name; callers are responsible for only
// passing registered table and column names.
type RecordQuerier interface {
	// ByID fetches one record. Returns ErrInvalidID for non-positive ids and
	// ErrRecordNotFound when no row matches.
	ByID(ctx context.Context, table string, id int64) (models.Row, error)

	// All fetches every record of the table ordered by id.
	All(ctx context.Context, table string) ([]models.Row, error)

	// Filtered fetches records matching all filters (exact equality), with
	// an optional ORDER BY clause and row limit (0 means no limit).
	Filtered(ctx context.Context, table string, filters map[string]any, order string, limit int) ([]models.Row, error)

	// TextSearch fetches records where any of the fields contains text as a
	// literal substring, case-sensitively per backend collation.
	TextSearch(ctx context.Context, table, text string, fields []string) ([]models.Row, error)

	// Paginated fetches one page of records ordered by id, plus the total
	// row count of the table.
	Paginated(ctx context.Context, table string, page, perPage int) ([]models.Row, int64, error)

	// Insert persists a new record and returns its generated id. Reports
	// unique violations as *DuplicateError.
	Insert(ctx context.Context, table string, row models.Row) (int64, error)

	// Update modifies the given columns of one record and returns the full
	// updated row. Returns ErrRecordNotFound when the id does not exist and
	// reports unique violations as *DuplicateError.
	Update(ctx context.Context, table string, id int64, row models.Row) (models.Row, error)

	// Delete removes one record, reporting whether a row was deleted.
	Delete(ctx context.Context, table string, id int64) (bool, error)
}

// TokenRepository persists issued bearer tokens keyed by digest.
type TokenRepository interface {
	// Save stores a newly issued token record.
	Save(ctx context.Context, record models.TokenRecord) error

	// Find loads a token record by digest. Returns ErrTokenNotFound when
	// the digest is unknown.
	Find(ctx context.Context, tokenHash string) (models.TokenRecord, error)

	// Revoke marks the token revoked. Revoking an unknown or already
	// revoked token is not an error.
	Revoke(ctx context.Context, tokenHash string) error

	// PurgeExpired deletes token records past their expiry, returning the
	// number removed.
	PurgeExpired(ctx context.Context) (int64, error)
}
