package progress

import "context"

// Repository defines the contract for snapshot persistence
type Repository interface {
	// Load retrieves the persisted snapshot, or a fresh empty snapshot when
	// nothing has been stored yet.
	Load(ctx context.Context) (*Snapshot, error)

	// Save persists the full snapshot atomically. Either every component's
	// state is committed or none of it is.
	Save(ctx context.Context, snapshot *Snapshot) error
}
