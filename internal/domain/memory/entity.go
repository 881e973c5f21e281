package memory

import "time"

// Status represents the learning status of an item.
type Status string

const (
	StatusNew      Status = "new"
	StatusLearning Status = "learning"
	StatusReview   Status = "review"
	StatusMastered Status = "mastered"
)

// MemoryState tracks a learner's memory of a single flashcard-like item.
// It is created lazily on first review and mutated only through RecordReview.
type MemoryState struct {
	ItemID          string     `json:"item_id"`
	EaseFactor      float64    `json:"ease_factor"`
	RepetitionCount int        `json:"repetition_count"`
	Status          Status     `json:"status"`
	LastReviewedAt  *time.Time `json:"last_reviewed_at,omitempty"`
	NextReviewAt    time.Time  `json:"next_review_at"`
}

// IsDue checks if the item is due for review at the given instant.
func (m *MemoryState) IsDue(now time.Time) bool {
	return !m.NextReviewAt.After(now)
}
