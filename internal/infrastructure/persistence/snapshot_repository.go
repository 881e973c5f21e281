package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"learning-progress-engine/internal/domain/progress"
)

// SnapshotRepository implements progress.Repository using SQLite
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Load retrieves the persisted snapshot. When no snapshot has been saved
// yet, a fresh empty one is returned. Fields missing from an older schema
// default to empty rather than failing the load.
func (r *SnapshotRepository) Load(ctx context.Context) (*progress.Snapshot, error) {
	var data string
	err := r.db.QueryRowContext(ctx, "SELECT data FROM snapshot WHERE id = 1").Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snapshot progress.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	snapshot.Normalize()

	return &snapshot, nil
}

// Save persists the full snapshot in one transaction: the versioned blob
// and the activity mirror commit together or not at all. The caller's
// snapshot is not modified; the current schema version is stamped on a copy.
func (r *SnapshotRepository) Save(ctx context.Context, snapshot *progress.Snapshot) error {
	stamped := *snapshot
	stamped.SchemaVersion = progress.SchemaVersion

	data, err := json.Marshal(&stamped)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshot (id, schema_version, data, updated_at)
		VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP`,
		stamped.SchemaVersion, string(data))
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM activity_days"); err != nil {
		return fmt.Errorf("failed to clear activity mirror: %w", err)
	}
	for day, counts := range snapshot.ActivityLog {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO activity_days (day, lessons, exercises, flashcards, quizzes, points)
			VALUES (?, ?, ?, ?, ?, ?)`,
			day, counts.Lessons, counts.Exercises, counts.Flashcards, counts.Quizzes, counts.Points)
		if err != nil {
			return fmt.Errorf("failed to write activity mirror for %s: %w", day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return nil
}
