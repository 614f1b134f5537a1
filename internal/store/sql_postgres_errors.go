package store

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// postgresErrors classifies errors reported by the pgx driver.
type postgresErrors struct{}

// Retryable reports whether a postgres error is transient: connection
// exceptions, transaction rollbacks and an unavailable server.
func (postgresErrors) Retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgerrcode.IsConnectionException(pgErr.Code) ||
		pgerrcode.IsTransactionRollback(pgErr.Code) ||
		pgErr.Code == pgerrcode.CannotConnectNow
}

// duplicateDetailRe matches the detail message postgres attaches to
// unique-constraint violations: Key (usuario)=(admin) already exists.
var duplicateDetailRe = regexp.MustCompile(`Key \((.+?)\)=\((.+?)\) already exists`)

// Duplicate decodes a unique-constraint violation into a *DuplicateError.
func (postgresErrors) Duplicate(err error) *DuplicateError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}

	dup := &DuplicateError{Err: err}
	if m := duplicateDetailRe.FindStringSubmatch(pgErr.Detail); m != nil {
		dup.Campo = m[1]
		dup.Valor = m[2]

		return dup
	}

	// Without the detail, fall back to the constraint name, which carries
	// the column by migration convention (table_column_key).
	if name, ok := strings.CutSuffix(pgErr.ConstraintName, "_key"); ok {
		if _, campo, found := strings.Cut(name, "_"); found {
			dup.Campo = campo
		}
	}

	return dup
}
