package database

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgresDialect implements Dialect for PostgreSQL through lib/pq.
type PostgresDialect struct{}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

// Placeholder returns "$N" for the given position.
func (d *PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

// InitStatements is empty; PostgreSQL needs no session setup here.
func (d *PostgresDialect) InitStatements() []string {
	return nil
}

func (d *PostgresDialect) TimestampType() string {
	return "TIMESTAMPTZ"
}

// IsDuplicateKeyError reports a unique_violation (SQLSTATE 23505).
func (d *PostgresDialect) IsDuplicateKeyError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
