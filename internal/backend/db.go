package backend

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// OpenDB opens the backend's SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode, enables foreign keys, and runs migrations.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		title       TEXT PRIMARY KEY,
		description TEXT NOT NULL DEFAULT '',
		due_date    INTEGER NOT NULL,
		status      INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dailies (
		text        TEXT PRIMARY KEY,
		is_complete INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS goals (
		text         TEXT PRIMARY KEY,
		target_date  INTEGER NOT NULL,
		is_completed INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		day        TEXT PRIMARY KEY,
		date       INTEGER NOT NULL,
		score      INTEGER NOT NULL CHECK(score BETWEEN 1 AND 10),
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reflections (
		day        TEXT PRIMARY KEY,
		content    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}

func migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
