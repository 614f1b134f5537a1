// Package store implements the persistence layer: database connection
// management, the parameterized query builder for resource tables, and the
// bearer-token repository.
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Supported database drivers.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// Database wraps an open *sql.DB together with the driver name and the
// driver-specific error classifier.
type Database struct {
	*sql.DB
	driver     string
	classifier ErrorClassifier
}

// ErrorClassifier interprets backend-specific errors.
type ErrorClassifier interface {
	// Retryable reports whether the error is transient and the operation
	// may be retried.
	Retryable(err error) bool
	// Duplicate decodes a unique-constraint violation into a
	// *DuplicateError, or returns nil when err is not one.
	Duplicate(err error) *DuplicateError
}

// Driver returns the driver name the database was opened with.
func (d *Database) Driver() string {
	return d.driver
}

// Classifier returns the backend error classifier.
func (d *Database) Classifier() ErrorClassifier {
	return d.classifier
}

// NewConnect opens a database connection for the given driver and DSN and
// verifies it with a ping.
func NewConnect(ctx context.Context, driver, dsn string) (*Database, error) {
	switch driver {
	case DriverPostgres:
		return newConnectPostgres(ctx, dsn)
	case DriverSQLite:
		return newConnectSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
