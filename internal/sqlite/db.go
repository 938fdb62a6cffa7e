package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/rpggio/portfolio/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection.
//
// The pool is limited to one connection: SQLite allows a single writer, and
// an in-memory database lives only as long as its connection.
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations applies an embedded schema file (migrations.Stats or
// migrations.Content). Schemas are idempotent and run on every start.
func (db *DB) RunMigrations(schema string) error {
	data, err := migrations.FS.ReadFile(schema)
	if err != nil {
		return fmt.Errorf("failed to read schema %s: %w", schema, err)
	}
	if _, err := db.Exec(string(data)); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// OpenStats opens the counters and comments store and applies its schema.
func OpenStats(dataSourceName string) (*DB, error) {
	return open(dataSourceName, migrations.Stats)
}

// OpenContent opens the projects and achievements store and applies its schema.
func OpenContent(dataSourceName string) (*DB, error) {
	return open(dataSourceName, migrations.Content)
}

func open(dataSourceName, schema string) (*DB, error) {
	db, err := New(dataSourceName)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
