package persistence

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteDB creates a new SQLite database connection
func NewSQLiteDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	// The engine state is one versioned snapshot row; the CHECK keeps the
	// table single-row so every save is a full, atomic replacement.
	snapshotTable := `
	CREATE TABLE IF NOT EXISTS snapshot (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		schema_version INTEGER NOT NULL,
		data TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := db.Exec(snapshotTable)
	if err != nil {
		return fmt.Errorf("failed to create snapshot table: %w", err)
	}

	// Queryable mirror of the per-day activity log, rewritten inside the
	// same transaction as the snapshot row.
	activityDaysTable := `
	CREATE TABLE IF NOT EXISTS activity_days (
		day TEXT PRIMARY KEY,
		lessons INTEGER NOT NULL DEFAULT 0,
		exercises INTEGER NOT NULL DEFAULT 0,
		flashcards INTEGER NOT NULL DEFAULT 0,
		quizzes INTEGER NOT NULL DEFAULT 0,
		points INTEGER NOT NULL DEFAULT 0
	);`

	_, err = db.Exec(activityDaysTable)
	if err != nil {
		return fmt.Errorf("failed to create activity_days table: %w", err)
	}

	return nil
}
