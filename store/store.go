// Package store implements SQLite persistence for goals, daily tasks,
// check-ins, boss events, and subscriptions.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed implementation of the domain store
// interfaces.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and ensures the
// schema exists. The parent directory is created if missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS goals (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			title      TEXT NOT NULL,
			intensity  TEXT NOT NULL,
			start_date TEXT NOT NULL,
			end_date   TEXT NOT NULL,
			status     TEXT NOT NULL,
			boss_type  TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_goals_user_status ON goals(user_id, status)`,
		`CREATE TABLE IF NOT EXISTS daily_tasks (
			id          TEXT PRIMARY KEY,
			goal_id     TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
			date        TEXT NOT NULL,
			description TEXT NOT NULL,
			status      TEXT NOT NULL,
			UNIQUE (goal_id, date)
		)`,
		`CREATE TABLE IF NOT EXISTS check_ins (
			id         TEXT PRIMARY KEY,
			task_id    TEXT NOT NULL UNIQUE REFERENCES daily_tasks(id) ON DELETE CASCADE,
			user_id    TEXT NOT NULL,
			status     TEXT NOT NULL,
			note       TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS boss_events (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			severity   TEXT NOT NULL,
			context    TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_user_created ON boss_events(user_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
			user_id                  TEXT PRIMARY KEY,
			plan                     TEXT NOT NULL,
			status                   TEXT NOT NULL,
			interval                 TEXT NOT NULL,
			provider_customer_id     TEXT NOT NULL DEFAULT '',
			provider_subscription_id TEXT NOT NULL DEFAULT '',
			updated_at               TEXT NOT NULL
		)`,
	}
	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
