package memory

import (
	"fmt"
	"math"
	"time"
)

// Scheduling parameters - these can be tuned based on learner performance
const (
	// DefaultEaseFactor is the ease assigned to an item on first review.
	DefaultEaseFactor = 2.5
	// MinEaseFactor and MaxEaseFactor bound the ease factor at all times.
	MinEaseFactor = 1.3
	MaxEaseFactor = 3.0

	// Ease adjustments per grade
	againEasePenalty = 0.2
	hardEasePenalty  = 0.15
	easyEaseBonus    = 0.15

	// Repetitions of Good required before an item counts as mastered
	masteryThreshold = 5

	// Growth rate of the base interval between consecutive repetitions
	intervalGrowth = 2.0

	// MaxIntervalDays caps the review interval. Without a cap the geometric
	// curve overflows time arithmetic after enough repetitions and the
	// computed next review lands in the past.
	MaxIntervalDays = 365
)

// RecordReview applies a graded review to an item's memory state and returns
// the updated state. A nil state is initialized lazily with default ease and
// zero repetitions. The input state is never mutated.
func RecordReview(state *MemoryState, itemID string, grade Grade, now time.Time) (*MemoryState, error) {
	if !grade.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGrade, int(grade))
	}

	var next MemoryState
	if state == nil {
		next = MemoryState{
			ItemID:     itemID,
			EaseFactor: DefaultEaseFactor,
			Status:     StatusNew,
		}
	} else {
		next = *state
	}

	switch grade {
	case Again:
		next.EaseFactor = clampEase(next.EaseFactor - againEasePenalty)
		next.RepetitionCount = 0
		next.Status = StatusLearning
	case Hard:
		next.EaseFactor = clampEase(next.EaseFactor - hardEasePenalty)
		next.RepetitionCount++
		next.Status = StatusReview
	case Good:
		next.RepetitionCount++
		if next.RepetitionCount >= masteryThreshold {
			next.Status = StatusMastered
		} else {
			next.Status = StatusReview
		}
	case Easy:
		next.EaseFactor = clampEase(next.EaseFactor + easyEaseBonus)
		next.RepetitionCount += 2
		next.Status = StatusMastered
	}

	reviewedAt := now
	next.LastReviewedAt = &reviewedAt
	next.NextReviewAt = now.AddDate(0, 0, intervalDays(next.RepetitionCount, next.EaseFactor))

	return &next, nil
}

// intervalDays calculates the review interval in days. The base interval is
// 0 for zero repetitions (same-day retry), 1 for the first repetition, and
// grows geometrically afterwards; the ease factor scales the result. The
// interval never exceeds MaxIntervalDays.
func intervalDays(repetitions int, ease float64) int {
	if repetitions <= 0 {
		return 0
	}
	base := 1.0
	for i := 2; i <= repetitions; i++ {
		base *= intervalGrowth
		if base*ease >= MaxIntervalDays {
			return MaxIntervalDays
		}
	}
	days := int(math.Round(base * ease))
	if days > MaxIntervalDays {
		return MaxIntervalDays
	}
	return days
}

// clampEase keeps the ease factor within its configured bounds.
func clampEase(ease float64) float64 {
	return math.Max(MinEaseFactor, math.Min(MaxEaseFactor, ease))
}
