// Package sqldb implements the store interfaces on database/sql.
//
// The default backend is a local SQLite file via the pure-Go
// modernc.org/sqlite driver, which keeps the whole application a single
// binary with a single data file. A postgres:// database URL switches to
// the pgx stdlib driver instead. Schema is managed by goose migrations
// embedded in the binary and applied on open.
package sqldb

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // Registers the pgx driver
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Open creates a database connection for the given URL and ensures the
// schema is up to date. URLs with a postgres scheme use the pgx driver;
// anything else is treated as a SQLite file path (or ":memory:").
func Open(databaseURL string) (*sql.DB, error) {
	driver, dialect := driverFor(databaseURL)

	db, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == "sqlite" {
		// SQLite permits one writer; a single pooled connection also keeps
		// an in-memory database from fragmenting across connections.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db, dialect); err != nil {
		return nil, err
	}

	return db, nil
}

// driverFor maps a database URL to the database/sql driver name and the
// matching goose dialect.
func driverFor(databaseURL string) (driver, dialect string) {
	if strings.HasPrefix(databaseURL, "postgres://") ||
		strings.HasPrefix(databaseURL, "postgresql://") {
		return "pgx", "postgres"
	}
	return "sqlite", "sqlite3"
}

// migrate applies all pending schema migrations.
func migrate(db *sql.DB, dialect string) error {
	goose.SetBaseFS(migrationFiles)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
