package revision

import (
	"fmt"
	"time"
)

// Reminder is a single scheduled revision of a mastered unit.
type Reminder struct {
	OffsetDays  int        `json:"offset_days"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// IsCompleted reports whether the reminder has been completed.
func (r *Reminder) IsCompleted() bool {
	return r.CompletedAt != nil
}

// Plan holds the fixed sequence of revision reminders for a mastered unit.
// Reminders are never deleted, only marked completed, so the plan doubles
// as an audit history.
type Plan struct {
	UnitID         string     `json:"unit_id"`
	Reminders      []Reminder `json:"reminders"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
}

// DueReminders returns reminders that are scheduled at or before now and
// not yet completed.
func (p *Plan) DueReminders(now time.Time) []Reminder {
	var due []Reminder
	for _, r := range p.Reminders {
		if !r.IsCompleted() && !r.ScheduledAt.After(now) {
			due = append(due, r)
		}
	}
	return due
}

// PlanConfig holds configuration for revision plan generation.
type PlanConfig struct {
	// Day offsets from the mastery instant at which reminders are scheduled.
	OffsetDays []int
}

// DefaultPlanConfig returns the standard revision offsets.
func DefaultPlanConfig() *PlanConfig {
	return &PlanConfig{
		OffsetDays: []int{1, 3, 7, 16, 35},
	}
}

// Validate checks that the offsets form a finite, ascending, positive sequence.
func (c *PlanConfig) Validate() error {
	if len(c.OffsetDays) == 0 {
		return fmt.Errorf("revision: at least one offset is required")
	}
	prev := 0
	for _, d := range c.OffsetDays {
		if d <= prev {
			return fmt.Errorf("revision: offsets must be ascending and positive, got %v", c.OffsetDays)
		}
		prev = d
	}
	return nil
}

// Generator creates and updates revision plans.
type Generator struct {
	config *PlanConfig
}

// NewGenerator creates a revision plan generator.
func NewGenerator(config *PlanConfig) *Generator {
	if config == nil {
		config = DefaultPlanConfig()
	}
	return &Generator{config: config}
}

// OnMastered returns the revision plan for a unit that just reached mastery.
// When no plan exists one is created with a reminder per configured offset.
// Re-mastering an already-planned unit returns the plan unchanged except for
// the LastReviewedAt marker, which only feeds decay display.
func (g *Generator) OnMastered(plan *Plan, unitID string, now time.Time) *Plan {
	masteredAt := now

	if plan != nil {
		updated := *plan
		updated.LastReviewedAt = &masteredAt
		return &updated
	}

	reminders := make([]Reminder, 0, len(g.config.OffsetDays))
	for _, offset := range g.config.OffsetDays {
		reminders = append(reminders, Reminder{
			OffsetDays:  offset,
			ScheduledAt: now.AddDate(0, 0, offset),
		})
	}

	return &Plan{
		UnitID:         unitID,
		Reminders:      reminders,
		LastReviewedAt: &masteredAt,
	}
}

// CompleteReminder marks the reminder matching offsetDays as completed at
// now and returns the updated plan. It is a no-op if no matching reminder
// exists or the reminder is already completed.
func (g *Generator) CompleteReminder(plan *Plan, offsetDays int, now time.Time) *Plan {
	if plan == nil {
		return nil
	}

	updated := *plan
	updated.Reminders = make([]Reminder, len(plan.Reminders))
	copy(updated.Reminders, plan.Reminders)

	for i := range updated.Reminders {
		r := &updated.Reminders[i]
		if r.OffsetDays == offsetDays && !r.IsCompleted() {
			completedAt := now
			r.CompletedAt = &completedAt
			break
		}
	}

	return &updated
}
