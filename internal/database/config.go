package database

import (
	"fmt"
	"time"
)

// Config holds database connection configuration. It is the `database:`
// section of the generator config file.
type Config struct {
	// Driver selects the backend: "sqlite" or "postgres".
	Driver string `yaml:"driver"`

	SQLitePath string `yaml:"sqlite_path"`

	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL-specific configuration.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`

	// Connection pool settings
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DefaultConfig returns a SQLite Config stored at sqlitePath.
func DefaultConfig(sqlitePath string) Config {
	return Config{
		Driver:     string(DialectSQLite),
		SQLitePath: sqlitePath,
		Postgres:   DefaultPostgresConfig(),
	}
}

// DefaultPostgresConfig returns PostgresConfig with recommended pool settings.
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "procgen",
		Database:        "procgen",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// Validate checks that the selected driver has what it needs to connect.
func (c Config) Validate() error {
	switch DialectType(c.Driver) {
	case DialectSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("database: sqlite_path is required for the sqlite driver")
		}
	case DialectPostgres:
		if c.Postgres.Host == "" || c.Postgres.Database == "" {
			return fmt.Errorf("database: postgres host and database are required")
		}
		if c.Postgres.Port <= 0 {
			return fmt.Errorf("database: invalid postgres port %d", c.Postgres.Port)
		}
	default:
		return fmt.Errorf("database: unknown driver %q", c.Driver)
	}
	return nil
}

// DSN returns the lib/pq connection string.
func (p PostgresConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", p.Host, p.Port, p.Database, p.SSLMode)
	if p.User != "" {
		dsn += " user=" + p.User
	}
	if p.Password != "" {
		dsn += " password=" + p.Password
	}
	return dsn
}
