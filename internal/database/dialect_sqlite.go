package database

import (
	"strings"
)

// SQLiteDialect implements Dialect for the modernc.org/sqlite driver.
type SQLiteDialect struct{}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite"
}

// Placeholder returns "?" for all positions.
func (d *SQLiteDialect) Placeholder(position int) string {
	return "?"
}

// InitStatements returns the PRAGMAs every connection needs.
func (d *SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

func (d *SQLiteDialect) TimestampType() string {
	return "TIMESTAMP"
}

// IsDuplicateKeyError returns true if the error is a SQLite UNIQUE constraint violation.
func (d *SQLiteDialect) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
