package activity

import "time"

// DayKeyFormat is the calendar-date key format of the activity log.
const DayKeyFormat = "2006-01-02"

// DailyCounts aggregates the learner's activity for one calendar day.
type DailyCounts struct {
	Lessons    int `json:"lessons"`
	Exercises  int `json:"exercises"`
	Flashcards int `json:"flashcards"`
	Quizzes    int `json:"quizzes"`
	Points     int `json:"points"`
}

// Log maps calendar-date keys to daily activity counts. Buckets are created
// on the first event of a day and only ever incremented afterwards.
type Log map[string]*DailyCounts

// DayKey returns the log key for the UTC calendar day of t.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyFormat)
}

// Bucket returns the counts bucket for the day of now, creating it on the
// first event of that day.
func (l Log) Bucket(now time.Time) *DailyCounts {
	key := DayKey(now)
	bucket, ok := l[key]
	if !ok {
		bucket = &DailyCounts{}
		l[key] = bucket
	}
	return bucket
}

// Totals sums all daily buckets.
func (l Log) Totals() DailyCounts {
	var total DailyCounts
	for _, b := range l {
		total.Lessons += b.Lessons
		total.Exercises += b.Exercises
		total.Flashcards += b.Flashcards
		total.Quizzes += b.Quizzes
		total.Points += b.Points
	}
	return total
}
