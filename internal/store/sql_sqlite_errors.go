package store

import "strings"

// sqliteErrors classifies errors reported by the go-sqlite3 driver. The
// driver exposes its details through the error message, so classification is
// string-based.
type sqliteErrors struct{}

// Retryable reports whether a sqlite error is transient lock contention.
func (sqliteErrors) Retryable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()

	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "busy")
}

// Duplicate decodes a unique-constraint violation. SQLite reports them as
// "UNIQUE constraint failed: tabla.campo".
func (sqliteErrors) Duplicate(err error) *DuplicateError {
	if err == nil {
		return nil
	}

	const marker = "UNIQUE constraint failed: "
	msg := err.Error()
	idx := strings.Index(msg, marker)
	if idx < 0 {
		return nil
	}

	dup := &DuplicateError{Err: err}
	qualified := strings.TrimSpace(msg[idx+len(marker):])
	if _, campo, found := strings.Cut(qualified, "."); found {
		dup.Campo = campo
	}

	return dup
}
