package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/sethvargo/go-retry"

	"github.com/jmrodas/parkings-api/internal/logger"
	"github.com/jmrodas/parkings-api/models"
)

// Queries implements RecordQuerier on top of a Database using parameterized
// statements built with squirrel.
type Queries struct {
	db      *Database
	builder sq.StatementBuilderType
}

var _ RecordQuerier = (*Queries)(nil)

// NewQueries builds a Queries bound to db, selecting the placeholder format
// the backend expects.
func NewQueries(db *Database) *Queries {
	var placeholder sq.PlaceholderFormat = sq.Question
	if db.Driver() == DriverPostgres {
		placeholder = sq.Dollar
	}

	return &Queries{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// withRetry runs fn, retrying transient backend errors with exponential
// backoff.
func (q *Queries) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(50*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && q.db.Classifier().Retryable(err) {
			return retry.RetryableError(err)
		}

		return err
	})
}

func logQuery(ctx context.Context, query string, args []any) {
	log := logger.FromContext(ctx)
	log.Debug().Str("query", query).Any("args", args).Msg("executing SQL query")
}

// ByID fetches one record by primary key.
func (q *Queries) ByID(ctx context.Context, table string, id int64) (models.Row, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	query, args, err := q.builder.
		Select("*").
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	logQuery(ctx, query, args)

	var rows []models.Row
	err = q.withRetry(ctx, func(ctx context.Context) error {
		sqlRows, queryErr := q.db.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
		}
		defer sqlRows.Close()

		rows, queryErr = scanRows(sqlRows)

		return queryErr
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrRecordNotFound
	}

	return rows[0], nil
}

// All fetches every record of the table ordered by id.
func (q *Queries) All(ctx context.Context, table string) ([]models.Row, error) {
	return q.Filtered(ctx, table, nil, "id", 0)
}

// Filtered fetches records matching all filters exactly, sorted by the given
// ORDER BY clause. A zero limit means no limit.
func (q *Queries) Filtered(ctx context.Context, table string, filters map[string]any, order string, limit int) ([]models.Row, error) {
	builder := q.builder.Select("*").From(table)

	// Stable ordering of filter columns keeps the generated SQL
	// deterministic for logs and tests.
	for _, col := range sortedKeys(filters) {
		builder = builder.Where(sq.Eq{col: filters[col]})
	}
	if order != "" {
		builder = builder.OrderBy(order)
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	logQuery(ctx, query, args)

	return q.queryRows(ctx, query, args)
}

// TextSearch fetches records where any of fields contains text as a literal
// substring. LIKE wildcards in text are escaped so they match literally.
func (q *Queries) TextSearch(ctx context.Context, table, text string, fields []string) ([]models.Row, error) {
	pattern := "%" + escapeLike(text) + "%"

	conditions := make(sq.Or, 0, len(fields))
	for _, field := range fields {
		conditions = append(conditions, sq.Expr(field+` LIKE ? ESCAPE '\'`, pattern))
	}

	query, args, err := q.builder.
		Select("*").
		From(table).
		Where(conditions).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	logQuery(ctx, query, args)

	return q.queryRows(ctx, query, args)
}

// Paginated fetches one page ordered by id plus the table's total row count.
func (q *Queries) Paginated(ctx context.Context, table string, page, perPage int) ([]models.Row, int64, error) {
	offset := (page - 1) * perPage

	query, args, err := q.builder.
		Select("*").
		From(table).
		OrderBy("id").
		Limit(uint64(perPage)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	logQuery(ctx, query, args)

	rows, err := q.queryRows(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := q.builder.
		Select("COUNT(*)").
		From(table).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	logQuery(ctx, countQuery, countArgs)

	var total int64
	err = q.withRetry(ctx, func(ctx context.Context) error {
		if scanErr := q.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); scanErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
		}

		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// Insert persists a new record and returns its generated id.
func (q *Queries) Insert(ctx context.Context, table string, row models.Row) (int64, error) {
	if len(row) == 0 {
		return 0, ErrNoFields
	}

	columns := sortedKeys(row)
	values := make([]any, 0, len(columns))
	for _, col := range columns {
		values = append(values, row[col])
	}

	builder := q.builder.Insert(table).Columns(columns...).Values(values...)

	var id int64
	var err error
	if q.db.Driver() == DriverPostgres {
		query, args, buildErr := builder.Suffix("RETURNING id").ToSql()
		if buildErr != nil {
			return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}
		logQuery(ctx, query, args)

		err = q.withRetry(ctx, func(ctx context.Context) error {
			return q.db.QueryRowContext(ctx, query, args...).Scan(&id)
		})
	} else {
		query, args, buildErr := builder.ToSql()
		if buildErr != nil {
			return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}
		logQuery(ctx, query, args)

		err = q.withRetry(ctx, func(ctx context.Context) error {
			result, execErr := q.db.ExecContext(ctx, query, args...)
			if execErr != nil {
				return execErr
			}
			id, execErr = result.LastInsertId()

			return execErr
		})
	}
	if err != nil {
		if dup := q.db.Classifier().Duplicate(err); dup != nil {
			return 0, dup
		}

		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return id, nil
}

// Update modifies the given columns of one record inside a transaction and
// returns the full updated row.
func (q *Queries) Update(ctx context.Context, table string, id int64, row models.Row) (models.Row, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	if len(row) == 0 {
		return nil, ErrNoFields
	}

	builder := q.builder.Update(table)
	for _, col := range sortedKeys(row) {
		builder = builder.Set(col, row[col])
	}
	query, args, err := builder.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	logQuery(ctx, query, args)

	selectQuery, selectArgs, err := q.builder.
		Select("*").
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.Row
	err = q.withRetry(ctx, func(ctx context.Context) error {
		tx, txErr := q.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("%w: %w", ErrBeginningTransaction, txErr)
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		result, execErr := tx.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr := result.RowsAffected()
		if execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		if affected == 0 {
			return ErrRecordNotFound
		}

		sqlRows, queryErr := tx.QueryContext(ctx, selectQuery, selectArgs...)
		if queryErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
		}
		rows, scanErr := scanRows(sqlRows)
		sqlRows.Close()
		if scanErr != nil {
			return scanErr
		}
		if len(rows) == 0 {
			return ErrRecordNotFound
		}
		updated = rows[0]

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		if dup := q.db.Classifier().Duplicate(err); dup != nil {
			return nil, dup
		}

		return nil, err
	}

	return updated, nil
}

// Delete removes one record, reporting whether a row was deleted.
func (q *Queries) Delete(ctx context.Context, table string, id int64) (bool, error) {
	if id <= 0 {
		return false, ErrInvalidID
	}

	query, args, err := q.builder.
		Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	logQuery(ctx, query, args)

	var affected int64
	err = q.withRetry(ctx, func(ctx context.Context) error {
		result, execErr := q.db.ExecContext(ctx, query, args...)
		if execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		affected, execErr = result.RowsAffected()

		return execErr
	})
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (q *Queries) queryRows(ctx context.Context, query string, args []any) ([]models.Row, error) {
	var rows []models.Row
	err := q.withRetry(ctx, func(ctx context.Context) error {
		sqlRows, queryErr := q.db.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
		}
		defer sqlRows.Close()

		rows, queryErr = scanRows(sqlRows)

		return queryErr
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// escapeLike escapes LIKE wildcards so the search text matches literally.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

	return replacer.Replace(s)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
