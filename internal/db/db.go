// Package db opens the gardet SQLite database and keeps its schema current.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// PathEnv overrides the default database location.
const PathEnv = "GARDET_DB"

// busyTimeoutMS lets `gardet user add` and a running server share the file.
// It goes in the DSN so every pooled connection gets it.
const busyTimeoutMS = 5000

// DefaultPath returns $GARDET_DB, or ~/.gardet/gardet.db when it is unset.
func DefaultPath() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".gardet", "gardet.db"), nil
}

// Open opens or creates the database at path, applies the connection
// pragmas and migrates the schema.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d&_foreign_keys=on", path, busyTimeoutMS)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := configure(db); err != nil {
		return nil, errors.Join(err, closeWith(db))
	}
	if err := migrate(db); err != nil {
		return nil, errors.Join(fmt.Errorf("running migrations: %w", err), closeWith(db))
	}

	return db, nil
}

func closeWith(db *sql.DB) error {
	if err := db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

func configure(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("executing %s: %w", p, err)
		}
	}

	return nil
}
