// Package database sets up/opens the program database.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"mash/internal/domain/consts"

	_ "github.com/mattn/go-sqlite3"
)

const dbDriver = "sqlite3"

// Database wraps the program's sqlite handle.
type Database struct {
	DB *sql.DB
}

// InitDB opens (creating if needed) the database at the given path and
// ensures the schema exists.
func InitDB(path string) (*Database, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open(dbDriver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path %q: %w", path, err)
	}

	d := &Database{DB: db}
	if err := d.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}
	return d, nil
}

// Close closes the database handle.
func (d *Database) Close() error {
	return d.DB.Close()
}

// initTables initializes the SQL tables.
func (d *Database) initTables() error {
	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		%s INTEGER PRIMARY KEY AUTOINCREMENT,
		%s TEXT NOT NULL,
		%s TEXT NOT NULL DEFAULT '',
		%s TEXT NOT NULL DEFAULT '',
		%s BOOLEAN NOT NULL,
		%s TEXT NOT NULL DEFAULT '',
		%s TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
		consts.DBHistory,
		consts.QHistID,
		consts.QHistURL,
		consts.QHistPreset,
		consts.QHistProfile,
		consts.QHistSuccess,
		consts.QHistError,
		consts.QHistCreatedAt,
	)

	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create %s table: %w", consts.DBHistory, err)
	}
	return nil
}
