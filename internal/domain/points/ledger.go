package points

import "time"

// Entry is one point grant. The ledger is append-only: entries are never
// updated or deleted, and corrections would be expressed as new entries
// with a negative amount.
type Entry struct {
	OccurredAt time.Time `json:"occurred_at"`
	Amount     int       `json:"amount"`
	Reason     string    `json:"reason"`
	EventID    string    `json:"event_id,omitempty"`
}

// Ledger records point grants and maintains derived running statistics
// incrementally so reads are O(1). AppliedEventIDs holds the idempotency
// keys of granted events; replaying an event after a failed persist cannot
// double-grant.
type Ledger struct {
	Entries          []Entry         `json:"entries"`
	Total            int             `json:"total"`
	QuizCount        int             `json:"quiz_count"`
	AverageQuizScore float64         `json:"average_quiz_score"`
	AppliedEventIDs  map[string]bool `json:"applied_event_ids,omitempty"`
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{AppliedEventIDs: make(map[string]bool)}
}

// Grant appends an entry and updates the running total. It reports whether
// the grant was applied; a grant whose eventID was already applied is
// skipped. An empty eventID bypasses the idempotency check.
func (l *Ledger) Grant(amount int, reason, eventID string, now time.Time) bool {
	if eventID != "" {
		if l.AppliedEventIDs[eventID] {
			return false
		}
		if l.AppliedEventIDs == nil {
			l.AppliedEventIDs = make(map[string]bool)
		}
		l.AppliedEventIDs[eventID] = true
	}

	l.Entries = append(l.Entries, Entry{
		OccurredAt: now,
		Amount:     amount,
		Reason:     reason,
		EventID:    eventID,
	})
	l.Total += amount
	return true
}

// Applied reports whether an event ID has already been granted.
func (l *Ledger) Applied(eventID string) bool {
	return eventID != "" && l.AppliedEventIDs[eventID]
}

// RecordQuizScore folds a quiz score percentage into the running weighted
// average. The result equals the arithmetic mean of every score recorded.
func (l *Ledger) RecordQuizScore(percent float64) {
	l.AverageQuizScore = (l.AverageQuizScore*float64(l.QuizCount) + percent) / float64(l.QuizCount+1)
	l.QuizCount++
}
