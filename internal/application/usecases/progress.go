package usecases

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"learning-progress-engine/internal/domain/activity"
	"learning-progress-engine/internal/domain/challenge"
	"learning-progress-engine/internal/domain/memory"
	"learning-progress-engine/internal/domain/points"
	"learning-progress-engine/internal/domain/progress"
	"learning-progress-engine/internal/domain/revision"
	"learning-progress-engine/internal/domain/streak"
)

// Point values per event outcome.
const (
	pointsGradeAgain = 1
	pointsGradeHard  = 2
	pointsGradeGood  = 4
	pointsGradeEasy  = 5

	pointsLessonMastered    = 50
	pointsExerciseCorrect   = 10
	pointsExerciseIncorrect = 2
)

// ProgressUseCase orchestrates the progress engine: it receives one activity
// event, fans it out to the components in a fixed order (streak, ledger,
// challenges, then the scheduler or revision generator), and persists the
// combined snapshot atomically. Components never call into each other.
type ProgressUseCase struct {
	repo      progress.Repository
	generator *revision.Generator
	rotation  *challenge.Engine
	ladder    *points.Ladder

	snapshot *progress.Snapshot
}

// NewProgressUseCase creates the orchestrator and loads the persisted
// snapshot. Nil collaborators fall back to defaults.
func NewProgressUseCase(
	ctx context.Context,
	repo progress.Repository,
	generator *revision.Generator,
	rotation *challenge.Engine,
	ladder *points.Ladder,
) (*ProgressUseCase, error) {
	if generator == nil {
		generator = revision.NewGenerator(nil)
	}
	if rotation == nil {
		rotation = challenge.NewEngine(nil, nil)
	}
	if ladder == nil {
		var err error
		ladder, err = points.NewLadder(points.BuiltinStages())
		if err != nil {
			return nil, err
		}
	}

	snapshot, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	snapshot.Normalize()

	return &ProgressUseCase{
		repo:      repo,
		generator: generator,
		rotation:  rotation,
		ladder:    ladder,
		snapshot:  snapshot,
	}, nil
}

// Apply routes one activity event through every interested component and
// persists the result. The event is applied to a clone of the snapshot and
// the clone is only adopted once the save succeeds, so a failed write leaves
// the committed state untouched and the same event can be retried safely.
func (uc *ProgressUseCase) Apply(ctx context.Context, event activity.Event, now time.Time) error {
	next, err := uc.snapshot.Clone()
	if err != nil {
		return err
	}

	// Lazy period rollover: pools are corrected the moment they are touched.
	uc.rotation.Refresh(&next.Challenges, now)

	// A replayed event ID must not touch anything, including the streak: a
	// duplicate arriving on a later calendar day is not new activity.
	if next.Ledger.Applied(event.EventID()) {
		return uc.commit(ctx, next)
	}

	// 1. Streak. Idempotent within a calendar day.
	prevStreak := next.Streak
	next.Streak = streak.Record(prevStreak, now)
	firstActivityOfDay := prevStreak.LastActivityDate == nil ||
		!streak.SameDay(*prevStreak.LastActivityDate, now)

	// 2. Ledger. The event ID is the idempotency key; retrying after a
	// failed write never double-counts anything.
	amount, reason := pointValue(event)
	if granted := next.Ledger.Grant(amount, reason, event.EventID(), now); granted {
		if quiz, ok := event.(activity.QuizCompleted); ok {
			next.Ledger.RecordQuizScore(quizPercent(quiz))
		}

		bucket := next.ActivityLog.Bucket(now)
		bucket.Points += amount

		// 3. Challenges.
		var completed []challenge.Challenge
		if firstActivityOfDay {
			completed = append(completed, next.Challenges.ApplyProgress(challenge.KindStreak, 1, now)...)
		}
		for _, kind := range challengeKinds(event) {
			bumpDailyCounts(bucket, kind)
			completed = append(completed, next.Challenges.ApplyProgress(kind, 1, now)...)
		}
		if amount > 0 {
			completed = append(completed, next.Challenges.ApplyProgress(challenge.KindPoints, amount, now)...)
		}

		// Completed challenges pay out their reward. Rewards do not feed
		// back into points-kind challenge progress, which would cascade.
		for _, c := range completed {
			if next.Ledger.Grant(c.RewardPoints, "challenge: "+c.Description, "challenge:"+c.ID, now) {
				bucket.Points += c.RewardPoints
			}
		}

		// 4. Scheduler or revision generator, depending on the event kind.
		switch ev := event.(type) {
		case activity.FlashcardReviewed:
			updated, err := memory.RecordReview(next.MemoryStates[ev.ItemID], ev.ItemID, ev.Grade, now)
			if err != nil {
				return err
			}
			next.MemoryStates[ev.ItemID] = updated
		case activity.LessonMastered:
			next.RevisionPlans[ev.UnitID] = uc.generator.OnMastered(next.RevisionPlans[ev.UnitID], ev.UnitID, now)
		}
	}

	return uc.commit(ctx, next)
}

// CompleteReminder marks a revision reminder as done and persists the result.
func (uc *ProgressUseCase) CompleteReminder(ctx context.Context, unitID string, offsetDays int, now time.Time) error {
	plan := uc.snapshot.RevisionPlans[unitID]
	if plan == nil {
		return nil
	}

	next, err := uc.snapshot.Clone()
	if err != nil {
		return err
	}
	next.RevisionPlans[unitID] = uc.generator.CompleteReminder(next.RevisionPlans[unitID], offsetDays, now)
	return uc.commit(ctx, next)
}

// Rollover refreshes the challenge pools for the period containing now and
// persists the result. Idempotent within a period: a second call changes
// nothing. Intended for session start, before any event arrives.
func (uc *ProgressUseCase) Rollover(ctx context.Context, now time.Time) error {
	next, err := uc.snapshot.Clone()
	if err != nil {
		return err
	}
	uc.rotation.Refresh(&next.Challenges, now)
	return uc.commit(ctx, next)
}

func (uc *ProgressUseCase) commit(ctx context.Context, next *progress.Snapshot) error {
	if err := uc.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	uc.snapshot = next
	return nil
}

// DueFlashcards returns the IDs of items whose next review is at or before
// now, sorted for stable output.
func (uc *ProgressUseCase) DueFlashcards(now time.Time) []string {
	var due []string
	for id, state := range uc.snapshot.MemoryStates {
		if state.IsDue(now) {
			due = append(due, id)
		}
	}
	sort.Strings(due)
	return due
}

// DueReminder pairs a due revision reminder with its unit.
type DueReminder struct {
	UnitID   string
	Reminder revision.Reminder
}

// DueReminders returns every uncompleted revision reminder scheduled at or
// before now, ordered by unit then offset.
func (uc *ProgressUseCase) DueReminders(now time.Time) []DueReminder {
	var due []DueReminder
	for unitID, plan := range uc.snapshot.RevisionPlans {
		for _, r := range plan.DueReminders(now) {
			due = append(due, DueReminder{UnitID: unitID, Reminder: r})
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].UnitID != due[j].UnitID {
			return due[i].UnitID < due[j].UnitID
		}
		return due[i].Reminder.OffsetDays < due[j].Reminder.OffsetDays
	})
	return due
}

// ActiveChallenges returns the current challenges of one pool, or of all
// three pools when period is empty.
func (uc *ProgressUseCase) ActiveChallenges(period challenge.Period) []challenge.Challenge {
	return uc.snapshot.Challenges.Active(period)
}

// StreakState returns the current streak state.
func (uc *ProgressUseCase) StreakState() streak.State {
	return uc.snapshot.Streak
}

// PointsTotal returns the running ledger total.
func (uc *ProgressUseCase) PointsTotal() int {
	return uc.snapshot.Ledger.Total
}

// StageForPoints maps a point total to its progression stage.
func (uc *ProgressUseCase) StageForPoints(pointTotal int) points.Stage {
	return uc.ladder.StageFor(pointTotal)
}

// Stage returns the learner's current progression stage.
func (uc *ProgressUseCase) Stage() points.Stage {
	return uc.ladder.StageFor(uc.snapshot.Ledger.Total)
}

// Stats summarizes the learner's overall progress.
type Stats struct {
	TotalLessons     int
	TotalExercises   int
	TotalFlashcards  int
	TotalQuizzes     int
	TotalPoints      int
	AverageQuizScore float64
	CurrentStreak    int
	LongestStreak    int
	ActiveDays       int
	TrackedItems     int
	MasteredItems    int
}

// Stats aggregates the activity log, ledger, and memory states.
func (uc *ProgressUseCase) Stats() Stats {
	totals := uc.snapshot.ActivityLog.Totals()

	mastered := 0
	for _, state := range uc.snapshot.MemoryStates {
		if state.Status == memory.StatusMastered {
			mastered++
		}
	}

	return Stats{
		TotalLessons:     totals.Lessons,
		TotalExercises:   totals.Exercises,
		TotalFlashcards:  totals.Flashcards,
		TotalQuizzes:     totals.Quizzes,
		TotalPoints:      uc.snapshot.Ledger.Total,
		AverageQuizScore: uc.snapshot.Ledger.AverageQuizScore,
		CurrentStreak:    uc.snapshot.Streak.CurrentStreak,
		LongestStreak:    uc.snapshot.Streak.LongestStreak,
		ActiveDays:       len(uc.snapshot.ActivityLog),
		TrackedItems:     len(uc.snapshot.MemoryStates),
		MasteredItems:    mastered,
	}
}

// pointValue computes the point grant and ledger reason for an event.
func pointValue(event activity.Event) (int, string) {
	switch ev := event.(type) {
	case activity.FlashcardReviewed:
		return gradePoints(ev.Grade), "flashcard reviewed"
	case activity.LessonMastered:
		return pointsLessonMastered, "lesson mastered"
	case activity.ExerciseCompleted:
		if ev.IsCorrect {
			return pointsExerciseCorrect, "exercise completed"
		}
		return pointsExerciseIncorrect, "exercise attempted"
	case activity.QuizCompleted:
		return int(math.Round(quizPercent(ev))) + ev.BonusPoints, "quiz completed"
	}
	return 0, "activity"
}

func gradePoints(grade memory.Grade) int {
	switch grade {
	case memory.Hard:
		return pointsGradeHard
	case memory.Good:
		return pointsGradeGood
	case memory.Easy:
		return pointsGradeEasy
	default:
		return pointsGradeAgain
	}
}

func quizPercent(quiz activity.QuizCompleted) float64 {
	if quiz.Total <= 0 {
		return 0
	}
	return float64(quiz.Score) / float64(quiz.Total) * 100
}

// challengeKinds returns the challenge kinds an event advances by one.
func challengeKinds(event activity.Event) []challenge.Kind {
	switch ev := event.(type) {
	case activity.FlashcardReviewed:
		return []challenge.Kind{challenge.KindFlashcards}
	case activity.LessonMastered:
		return []challenge.Kind{challenge.KindLessons}
	case activity.ExerciseCompleted:
		return []challenge.Kind{challenge.KindExercises}
	case activity.QuizCompleted:
		kinds := []challenge.Kind{challenge.KindQuizzes}
		if ev.Total > 0 && ev.Score == ev.Total {
			kinds = append(kinds, challenge.KindPerfectQuiz)
		}
		return kinds
	}
	return nil
}

func bumpDailyCounts(bucket *activity.DailyCounts, kind challenge.Kind) {
	switch kind {
	case challenge.KindFlashcards:
		bucket.Flashcards++
	case challenge.KindLessons:
		bucket.Lessons++
	case challenge.KindExercises:
		bucket.Exercises++
	case challenge.KindQuizzes:
		bucket.Quizzes++
	}
}
