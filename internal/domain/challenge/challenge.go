package challenge

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownChallengeKind is returned when a template catalog names a kind
// the engine does not know. Catalogs are validated at load time so this is
// never surfaced at runtime.
var ErrUnknownChallengeKind = errors.New("challenge: unknown challenge kind")

// Kind identifies what learner activity a challenge counts.
type Kind string

const (
	KindLessons     Kind = "lessons"
	KindExercises   Kind = "exercises"
	KindQuizzes     Kind = "quizzes"
	KindStreak      Kind = "streak"
	KindPoints      Kind = "points"
	KindFlashcards  Kind = "flashcards"
	KindPerfectQuiz Kind = "perfect_quiz"
)

// IsValid reports whether k is a known challenge kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindLessons, KindExercises, KindQuizzes, KindStreak, KindPoints, KindFlashcards, KindPerfectQuiz:
		return true
	}
	return false
}

// Period identifies which rotating pool a challenge belongs to.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Challenge is a rotating goal instantiated from a template. Once
// CompletedAt is set the challenge is immutable except for archival.
type Challenge struct {
	ID           string     `json:"id"`
	Kind         Kind       `json:"kind"`
	Description  string     `json:"description"`
	Target       int        `json:"target"`
	Current      int        `json:"current"`
	RewardPoints int        `json:"reward_points"`
	Period       Period     `json:"period"`
	ExpiresAt    time.Time  `json:"expires_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Expired      bool       `json:"expired,omitempty"`
}

// IsCompleted reports whether the challenge has been completed.
func (c *Challenge) IsCompleted() bool {
	return c.CompletedAt != nil
}

// Template defines a challenge that the rotation engine can instantiate.
type Template struct {
	Kind         Kind   `json:"kind"`
	Description  string `json:"description"`
	Target       int    `json:"target"`
	RewardPoints int    `json:"reward_points"`
}

// Validate checks template fields for correctness.
func (t Template) Validate() error {
	if !t.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownChallengeKind, t.Kind)
	}
	if t.Description == "" {
		return fmt.Errorf("challenge: template description is required")
	}
	if t.Target <= 0 {
		return fmt.Errorf("challenge: template %q target must be positive", t.Description)
	}
	if t.RewardPoints <= 0 {
		return fmt.Errorf("challenge: template %q reward must be positive", t.Description)
	}
	return nil
}

// Catalog holds the template pools per period.
type Catalog struct {
	Daily   []Template `json:"daily"`
	Weekly  []Template `json:"weekly"`
	Monthly []Template `json:"monthly"`
}

// Templates returns the template pool for a period.
func (c *Catalog) Templates(period Period) []Template {
	switch period {
	case PeriodDaily:
		return c.Daily
	case PeriodWeekly:
		return c.Weekly
	case PeriodMonthly:
		return c.Monthly
	}
	return nil
}

// Validate checks every template in the catalog.
func (c *Catalog) Validate() error {
	for _, period := range []Period{PeriodDaily, PeriodWeekly, PeriodMonthly} {
		templates := c.Templates(period)
		if len(templates) == 0 {
			return fmt.Errorf("challenge: %s catalog must not be empty", period)
		}
		for _, t := range templates {
			if err := t.Validate(); err != nil {
				return fmt.Errorf("%s catalog: %w", period, err)
			}
		}
	}
	return nil
}

// BuiltinCatalog returns the built-in challenge templates.
func BuiltinCatalog() *Catalog {
	return &Catalog{
		Daily: []Template{
			{Kind: KindFlashcards, Description: "Review 10 flashcards", Target: 10, RewardPoints: 20},
			{Kind: KindFlashcards, Description: "Review 25 flashcards", Target: 25, RewardPoints: 50},
			{Kind: KindExercises, Description: "Complete 5 exercises", Target: 5, RewardPoints: 25},
			{Kind: KindQuizzes, Description: "Finish a quiz", Target: 1, RewardPoints: 30},
			{Kind: KindLessons, Description: "Master a lesson", Target: 1, RewardPoints: 40},
			{Kind: KindPoints, Description: "Earn 100 points", Target: 100, RewardPoints: 25},
		},
		Weekly: []Template{
			{Kind: KindLessons, Description: "Master 3 lessons this week", Target: 3, RewardPoints: 150},
			{Kind: KindExercises, Description: "Complete 25 exercises this week", Target: 25, RewardPoints: 100},
			{Kind: KindQuizzes, Description: "Finish 5 quizzes this week", Target: 5, RewardPoints: 120},
			{Kind: KindStreak, Description: "Practice 5 days this week", Target: 5, RewardPoints: 200},
			{Kind: KindPoints, Description: "Earn 750 points this week", Target: 750, RewardPoints: 150},
			{Kind: KindFlashcards, Description: "Review 100 flashcards this week", Target: 100, RewardPoints: 120},
			{Kind: KindPerfectQuiz, Description: "Score a perfect quiz this week", Target: 1, RewardPoints: 180},
		},
		Monthly: []Template{
			{Kind: KindLessons, Description: "Master 10 lessons this month", Target: 10, RewardPoints: 500},
			{Kind: KindStreak, Description: "Practice 20 days this month", Target: 20, RewardPoints: 600},
			{Kind: KindPoints, Description: "Earn 3000 points this month", Target: 3000, RewardPoints: 450},
			{Kind: KindPerfectQuiz, Description: "Score 5 perfect quizzes this month", Target: 5, RewardPoints: 550},
		},
	}
}
