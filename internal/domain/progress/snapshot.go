package progress

import (
	"encoding/json"
	"fmt"

	"learning-progress-engine/internal/domain/activity"
	"learning-progress-engine/internal/domain/challenge"
	"learning-progress-engine/internal/domain/memory"
	"learning-progress-engine/internal/domain/points"
	"learning-progress-engine/internal/domain/revision"
	"learning-progress-engine/internal/domain/streak"
)

// SchemaVersion is stamped on every persisted snapshot.
const SchemaVersion = 1

// Snapshot is the single persisted state blob of the progress engine. Every
// component's state lives here and is written in one atomic save, so partial
// application of an event can never reach disk.
type Snapshot struct {
	SchemaVersion int                            `json:"schema_version"`
	MemoryStates  map[string]*memory.MemoryState `json:"memory_states"`
	RevisionPlans map[string]*revision.Plan      `json:"revision_plans"`
	Streak        streak.State                   `json:"streak"`
	ActivityLog   activity.Log                   `json:"activity_log"`
	Challenges    challenge.State                `json:"challenges"`
	Ledger        *points.Ledger                 `json:"ledger"`
}

// NewSnapshot creates an empty snapshot with initialized collections.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		SchemaVersion: SchemaVersion,
		MemoryStates:  make(map[string]*memory.MemoryState),
		RevisionPlans: make(map[string]*revision.Plan),
		ActivityLog:   make(activity.Log),
		Ledger:        points.NewLedger(),
	}
}

// Normalize fills in collections that are missing from an older or partial
// persisted snapshot. Unknown fields are already dropped by the JSON decoder;
// missing ones default to empty rather than failing the load.
func (s *Snapshot) Normalize() {
	if s.MemoryStates == nil {
		s.MemoryStates = make(map[string]*memory.MemoryState)
	}
	if s.RevisionPlans == nil {
		s.RevisionPlans = make(map[string]*revision.Plan)
	}
	if s.ActivityLog == nil {
		s.ActivityLog = make(activity.Log)
	}
	if s.Ledger == nil {
		s.Ledger = points.NewLedger()
	}
}

// Clone returns a deep copy of the snapshot. The orchestrator applies an
// event to a clone and only adopts it after the save succeeds, keeping
// memory and disk from diverging on a failed write.
func (s *Snapshot) Clone() (*Snapshot, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	var clone Snapshot
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	clone.Normalize()
	return &clone, nil
}
