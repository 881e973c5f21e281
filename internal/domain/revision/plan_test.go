package revision

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var masteredAt = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestOnMasteredCreatesPlan(t *testing.T) {
	g := NewGenerator(nil)
	plan := g.OnMastered(nil, "unit-1", masteredAt)

	require.NotNil(t, plan)
	assert.Equal(t, "unit-1", plan.UnitID)
	require.Len(t, plan.Reminders, 5)

	offsets := DefaultPlanConfig().OffsetDays
	for i, r := range plan.Reminders {
		assert.Equal(t, offsets[i], r.OffsetDays)
		assert.Equal(t, masteredAt.AddDate(0, 0, offsets[i]), r.ScheduledAt)
		assert.Nil(t, r.CompletedAt)
	}
}

func TestOnMasteredIsIdempotent(t *testing.T) {
	g := NewGenerator(nil)
	plan := g.OnMastered(nil, "unit-1", masteredAt)

	later := masteredAt.AddDate(0, 0, 10)
	again := g.OnMastered(plan, "unit-1", later)

	assert.Equal(t, plan.Reminders, again.Reminders, "re-mastering must not regenerate reminders")
	require.NotNil(t, again.LastReviewedAt)
	assert.Equal(t, later, *again.LastReviewedAt)
}

func TestCompleteReminder(t *testing.T) {
	g := NewGenerator(nil)
	plan := g.OnMastered(nil, "unit-1", masteredAt)

	doneAt := masteredAt.AddDate(0, 0, 3)
	updated := g.CompleteReminder(plan, 3, doneAt)

	require.NotNil(t, updated.Reminders[1].CompletedAt)
	assert.Equal(t, doneAt, *updated.Reminders[1].CompletedAt)

	// Original plan untouched.
	assert.Nil(t, plan.Reminders[1].CompletedAt)

	// Completing again is a no-op.
	again := g.CompleteReminder(updated, 3, doneAt.AddDate(0, 0, 1))
	assert.Equal(t, doneAt, *again.Reminders[1].CompletedAt)

	// Unknown offset is a no-op.
	unknown := g.CompleteReminder(updated, 99, doneAt)
	assert.Equal(t, updated.Reminders, unknown.Reminders)
}

func TestDueReminders(t *testing.T) {
	g := NewGenerator(nil)
	plan := g.OnMastered(nil, "unit-1", masteredAt)

	now := masteredAt.AddDate(0, 0, 7)
	due := plan.DueReminders(now)
	require.Len(t, due, 3) // offsets 1, 3, 7

	completed := g.CompleteReminder(plan, 1, now)
	assert.Len(t, completed.DueReminders(now), 2)
}

func TestPlanConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		wantErr bool
	}{
		{"default", DefaultPlanConfig().OffsetDays, false},
		{"empty", nil, true},
		{"descending", []int{3, 1}, true},
		{"duplicate", []int{1, 1}, true},
		{"non-positive", []int{0, 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := PlanConfig{OffsetDays: tt.offsets}
			err := config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
