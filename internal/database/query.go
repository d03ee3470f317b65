package database

import (
	"strings"
)

// QueryBuilder rewrites queries written with ? placeholders into the
// dialect's placeholder syntax.
type QueryBuilder struct {
	dialect Dialect
}

// NewQueryBuilder creates a new QueryBuilder for the given dialect.
func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build converts ? placeholders to the dialect's form.
//
//	input:    "SELECT 1 FROM cleared_dungeons WHERE x = ? AND y = ?"
//	SQLite:   unchanged
//	Postgres: "SELECT 1 FROM cleared_dungeons WHERE x = $1 AND y = $2"
func (qb *QueryBuilder) Build(query string) string {
	if _, ok := qb.dialect.(*SQLiteDialect); ok {
		return query
	}

	var result strings.Builder
	result.Grow(len(query) + 8)
	position := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result.WriteString(qb.dialect.Placeholder(position))
			position++
			continue
		}
		result.WriteByte(query[i])
	}
	return result.String()
}
