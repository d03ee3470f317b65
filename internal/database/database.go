// Package database persists which dungeon entrances have been cleared. SQLite
// (modernc.org/sqlite) is the default backend; PostgreSQL (lib/pq) is
// available for shared deployments.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Database wraps the connection together with its dialect.
type Database struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open opens or creates the SQLite database at the given path.
func Open(path string) (*Database, error) {
	return OpenWithConfig(DefaultConfig(path))
}

// OpenWithConfig connects using cfg and brings the schema up to date.
func OpenWithConfig(cfg Config) (*Database, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dialect := NewDialect(DialectType(cfg.Driver))

	var dsn string
	switch DialectType(cfg.Driver) {
	case DialectPostgres:
		dsn = cfg.Postgres.DSN()
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = cfg.SQLitePath
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if DialectType(cfg.Driver) == DialectSQLite {
		// PRAGMAs are per connection; one writer avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run %q: %w", stmt, err)
		}
	}

	d := &Database{db: db, dialect: dialect, qb: NewQueryBuilder(dialect)}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return d, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// Dialect returns the SQL dialect in use.
func (d *Database) Dialect() Dialect {
	return d.dialect
}

// migrate creates the schema if it doesn't exist.
func (d *Database) migrate() error {
	migrations := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS cleared_dungeons (
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			cleared_at %s NOT NULL,
			PRIMARY KEY (x, y)
		)`, d.dialect.TimestampType()),

		`CREATE INDEX IF NOT EXISTS idx_cleared_dungeons_cleared_at ON cleared_dungeons(cleared_at)`,
	}

	for _, migration := range migrations {
		if _, err := d.db.Exec(migration); err != nil {
			return err
		}
	}
	return nil
}
