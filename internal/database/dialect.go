package database

// Dialect abstracts the SQL differences between SQLite and PostgreSQL.
type Dialect interface {
	// DriverName returns the driver name for sql.Open().
	DriverName() string

	// Placeholder returns the parameter placeholder for the given position (1-indexed).
	// SQLite: "?", PostgreSQL: "$1", "$2", etc.
	Placeholder(position int) string

	// InitStatements run once after connecting.
	InitStatements() []string

	// TimestampType is the column type used for wall-clock times.
	TimestampType() string

	// IsDuplicateKeyError returns true if the error is a unique constraint violation.
	IsDuplicateKeyError(err error) bool
}

// DialectType identifies the database dialect.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect creates a new Dialect for the given type. Unknown types get SQLite.
func NewDialect(dialectType DialectType) Dialect {
	switch dialectType {
	case DialectPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}
