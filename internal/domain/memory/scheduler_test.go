package memory

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func TestRecordReviewInitializesLazily(t *testing.T) {
	state, err := RecordReview(nil, "card-1", Good, testNow)
	if err != nil {
		t.Fatalf("RecordReview() error = %v", err)
	}
	if state.ItemID != "card-1" {
		t.Errorf("ItemID = %q, want card-1", state.ItemID)
	}
	if state.EaseFactor != DefaultEaseFactor {
		t.Errorf("EaseFactor = %v, want %v", state.EaseFactor, DefaultEaseFactor)
	}
	if state.RepetitionCount != 1 {
		t.Errorf("RepetitionCount = %d, want 1", state.RepetitionCount)
	}
	if state.Status != StatusReview {
		t.Errorf("Status = %v, want %v", state.Status, StatusReview)
	}
	if state.LastReviewedAt == nil || !state.LastReviewedAt.Equal(testNow) {
		t.Errorf("LastReviewedAt = %v, want %v", state.LastReviewedAt, testNow)
	}
}

func TestRecordReviewInvalidGrade(t *testing.T) {
	_, err := RecordReview(nil, "card-1", Grade(9), testNow)
	if !errors.Is(err, ErrInvalidGrade) {
		t.Errorf("error = %v, want ErrInvalidGrade", err)
	}
}

func TestRecordReviewDoesNotMutateInput(t *testing.T) {
	original := &MemoryState{ItemID: "card-1", EaseFactor: 2.5, RepetitionCount: 2, Status: StatusReview}
	_, err := RecordReview(original, "card-1", Again, testNow)
	if err != nil {
		t.Fatalf("RecordReview() error = %v", err)
	}
	if original.RepetitionCount != 2 || original.EaseFactor != 2.5 {
		t.Error("input state was mutated")
	}
}

func TestFiveGoodReviewsReachMastery(t *testing.T) {
	var state *MemoryState
	var err error
	for i := 0; i < 5; i++ {
		state, err = RecordReview(state, "card-1", Good, testNow.AddDate(0, 0, i*10))
		if err != nil {
			t.Fatalf("review %d: %v", i, err)
		}
	}
	if state.Status != StatusMastered {
		t.Errorf("Status = %v, want %v", state.Status, StatusMastered)
	}
	if state.RepetitionCount != 5 {
		t.Errorf("RepetitionCount = %d, want 5", state.RepetitionCount)
	}
}

func TestGoodThenAgainResets(t *testing.T) {
	state, err := RecordReview(nil, "card-1", Good, testNow)
	if err != nil {
		t.Fatal(err)
	}
	easeAfterGood := state.EaseFactor

	state, err = RecordReview(state, "card-1", Again, testNow.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if state.RepetitionCount != 0 {
		t.Errorf("RepetitionCount = %d, want 0", state.RepetitionCount)
	}
	if state.Status != StatusLearning {
		t.Errorf("Status = %v, want %v", state.Status, StatusLearning)
	}
	want := easeAfterGood - 0.2
	if want < MinEaseFactor {
		want = MinEaseFactor
	}
	if state.EaseFactor != want {
		t.Errorf("EaseFactor = %v, want %v", state.EaseFactor, want)
	}
}

func TestAgainSchedulesSameDay(t *testing.T) {
	state, err := RecordReview(nil, "card-1", Again, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if !state.NextReviewAt.Equal(testNow) {
		t.Errorf("NextReviewAt = %v, want %v (same day)", state.NextReviewAt, testNow)
	}
}

func TestEasySetsMastered(t *testing.T) {
	state, err := RecordReview(nil, "card-1", Easy, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if state.Status != StatusMastered {
		t.Errorf("Status = %v, want %v", state.Status, StatusMastered)
	}
	if state.RepetitionCount != 2 {
		t.Errorf("RepetitionCount = %d, want 2", state.RepetitionCount)
	}
	if state.EaseFactor != DefaultEaseFactor+0.15 {
		t.Errorf("EaseFactor = %v, want %v", state.EaseFactor, DefaultEaseFactor+0.15)
	}
}

func TestIntervalStrictlyIncreasingOnGood(t *testing.T) {
	var state *MemoryState
	var err error
	now := testNow
	prevInterval := -1
	for i := 0; i < 6; i++ {
		state, err = RecordReview(state, "card-1", Good, now)
		if err != nil {
			t.Fatal(err)
		}
		interval := int(state.NextReviewAt.Sub(now).Hours() / 24)
		if interval <= prevInterval {
			t.Fatalf("interval after review %d = %d days, not greater than %d", i+1, interval, prevInterval)
		}
		prevInterval = interval
		now = state.NextReviewAt
	}
}

func TestLongEasyRunKeepsIntervalBounded(t *testing.T) {
	var state *MemoryState
	var err error
	for i := 0; i < 60; i++ {
		state, err = RecordReview(state, "card-1", Easy, testNow)
		if err != nil {
			t.Fatalf("review %d: %v", i+1, err)
		}
		if state.NextReviewAt.Before(*state.LastReviewedAt) {
			t.Fatalf("after %d Easy reviews (rep=%d): NextReviewAt %v before LastReviewedAt %v",
				i+1, state.RepetitionCount, state.NextReviewAt, *state.LastReviewedAt)
		}
		if days := state.NextReviewAt.Sub(testNow).Hours() / 24; days > MaxIntervalDays {
			t.Fatalf("after %d Easy reviews: interval %.0f days exceeds %d", i+1, days, MaxIntervalDays)
		}
	}
}

func TestEaseFactorAlwaysWithinBounds(t *testing.T) {
	grades := []Grade{Again, Hard, Good, Easy}
	rng := rand.New(rand.NewSource(7))

	var state *MemoryState
	var err error
	now := testNow
	for i := 0; i < 500; i++ {
		state, err = RecordReview(state, "card-1", grades[rng.Intn(len(grades))], now)
		if err != nil {
			t.Fatal(err)
		}
		if state.EaseFactor < MinEaseFactor || state.EaseFactor > MaxEaseFactor {
			t.Fatalf("EaseFactor = %v out of [%v, %v] after %d reviews", state.EaseFactor, MinEaseFactor, MaxEaseFactor, i+1)
		}
		if state.LastReviewedAt != nil && state.NextReviewAt.Before(*state.LastReviewedAt) {
			t.Fatalf("NextReviewAt %v before LastReviewedAt %v", state.NextReviewAt, *state.LastReviewedAt)
		}
		now = now.Add(time.Hour)
	}
}

func TestGradeUnmarshalUnknown(t *testing.T) {
	var g Grade
	if err := g.UnmarshalText([]byte("Perfect")); !errors.Is(err, ErrInvalidGrade) {
		t.Errorf("error = %v, want ErrInvalidGrade", err)
	}
}

func TestIsDue(t *testing.T) {
	state := &MemoryState{NextReviewAt: testNow}
	if !state.IsDue(testNow) {
		t.Error("item due exactly now should be due")
	}
	if state.IsDue(testNow.Add(-time.Minute)) {
		t.Error("item should not be due before NextReviewAt")
	}
}
