package activity

import (
	"github.com/google/uuid"

	"learning-progress-engine/internal/domain/memory"
)

// Event is the single input type of the progress engine. It is a closed set
// of variants; the orchestrator matches on the concrete type to route an
// event to the interested components. Events carry only IDs and outcome
// data, never content text.
type Event interface {
	// EventID returns the unique event identifier, used as the ledger
	// idempotency key so a retried event never double-grants points.
	EventID() string

	isActivityEvent()
}

// FlashcardReviewed records that the learner graded a flashcard.
type FlashcardReviewed struct {
	ID     string
	ItemID string
	Grade  memory.Grade
}

// LessonMastered records that a unit of content reached mastery.
type LessonMastered struct {
	ID     string
	UnitID string
}

// ExerciseCompleted records a finished exercise and whether it was correct.
type ExerciseCompleted struct {
	ID        string
	IsCorrect bool
}

// QuizCompleted records a finished quiz with its raw score.
type QuizCompleted struct {
	ID          string
	QuizID      string
	Score       int
	Total       int
	BonusPoints int
}

// NewFlashcardReviewed creates a flashcard review event with a fresh ID.
func NewFlashcardReviewed(itemID string, grade memory.Grade) FlashcardReviewed {
	return FlashcardReviewed{ID: uuid.NewString(), ItemID: itemID, Grade: grade}
}

// NewLessonMastered creates a lesson mastery event with a fresh ID.
func NewLessonMastered(unitID string) LessonMastered {
	return LessonMastered{ID: uuid.NewString(), UnitID: unitID}
}

// NewExerciseCompleted creates an exercise completion event with a fresh ID.
func NewExerciseCompleted(isCorrect bool) ExerciseCompleted {
	return ExerciseCompleted{ID: uuid.NewString(), IsCorrect: isCorrect}
}

// NewQuizCompleted creates a quiz completion event with a fresh ID.
func NewQuizCompleted(quizID string, score, total, bonusPoints int) QuizCompleted {
	return QuizCompleted{ID: uuid.NewString(), QuizID: quizID, Score: score, Total: total, BonusPoints: bonusPoints}
}

func (e FlashcardReviewed) EventID() string { return e.ID }
func (e LessonMastered) EventID() string    { return e.ID }
func (e ExerciseCompleted) EventID() string { return e.ID }
func (e QuizCompleted) EventID() string     { return e.ID }

func (FlashcardReviewed) isActivityEvent() {}
func (LessonMastered) isActivityEvent()    {}
func (ExerciseCompleted) isActivityEvent() {}
func (QuizCompleted) isActivityEvent()     {}
