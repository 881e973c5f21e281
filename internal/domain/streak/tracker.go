package streak

import "time"

// State tracks the learner's consecutive-day activity streak.
type State struct {
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
}

// Record counts activity on the given day and returns the updated state.
// It mutates the streak at most once per calendar day: repeated calls with
// the same day are equivalent to a single call. A gap of more than one day,
// or a day earlier than the last recorded one, breaks the streak but never
// lowers the longest streak.
func Record(state State, today time.Time) State {
	day := DayOf(today)

	if state.LastActivityDate == nil {
		state.CurrentStreak = 1
		if state.LongestStreak < 1 {
			state.LongestStreak = 1
		}
		state.LastActivityDate = &day
		return state
	}

	last := DayOf(*state.LastActivityDate)
	gap := int(day.Sub(last).Hours() / 24)

	switch {
	case gap == 0:
		return state
	case gap == 1:
		state.CurrentStreak++
		if state.CurrentStreak > state.LongestStreak {
			state.LongestStreak = state.CurrentStreak
		}
	default:
		// Missed at least one day, or the clock moved backward.
		state.CurrentStreak = 1
	}

	state.LastActivityDate = &day
	return state
}

// DayOf truncates an instant to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two instants fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}
