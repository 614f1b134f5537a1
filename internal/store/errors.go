package store

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidID indicates a non-positive record identifier.
	ErrInvalidID = errors.New("invalid record id")
	// ErrRecordNotFound indicates that no record matched the given id.
	ErrRecordNotFound = errors.New("record not found")
	// ErrNoFields indicates a write operation received no columns to persist.
	ErrNoFields = errors.New("no fields to persist")
	// ErrTokenNotFound indicates the token digest has no stored record.
	ErrTokenNotFound = errors.New("token not found")
	// ErrBuildingSQLQuery indicates a failure assembling the SQL statement.
	ErrBuildingSQLQuery = errors.New("error building SQL query")
	// ErrExecutingQuery indicates a row-returning query failed.
	ErrExecutingQuery = errors.New("error executing query")
	// ErrExecutingStatement indicates a non-query statement failed.
	ErrExecutingStatement = errors.New("error executing statement")
	// ErrBeginningTransaction indicates the transaction could not be started.
	ErrBeginningTransaction = errors.New("error beginning transaction")
	// ErrCommitingTransaction indicates the transaction could not be committed.
	ErrCommitingTransaction = errors.New("error commiting transaction")
	// ErrScanningRows indicates a failure reading the result set.
	ErrScanningRows = errors.New("error scanning rows")
)

// DuplicateError reports a unique-constraint violation decoded from the
// backend's error message. Campo and Valor may be empty when the backend did
// not expose them.
type DuplicateError struct {
	Campo string
	Valor string
	Err   error
}

func (e *DuplicateError) Error() string {
	if e.Campo != "" {
		return fmt.Sprintf("duplicate value for %s: %v", e.Campo, e.Err)
	}

	return fmt.Sprintf("duplicate value: %v", e.Err)
}

func (e *DuplicateError) Unwrap() error {
	return e.Err
}
