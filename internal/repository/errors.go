package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicate is returned when a write violates a unique constraint, i.e.
// another transaction already recorded the same row.
var ErrDuplicate = errors.New("duplicate record")

// pgUniqueViolation is the Postgres SQLSTATE for unique_violation
const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err comes from a unique or primary key
// constraint on either supported engine.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			// primary code only, when extended result codes are off
			return strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
		}
	}
	return false
}

// mapWriteError turns constraint violations into ErrDuplicate and leaves
// everything else untouched.
func mapWriteError(err error) error {
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}
