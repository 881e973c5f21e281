package points

import "fmt"

// Stage is one rung of the progression ladder.
type Stage struct {
	Name           string `json:"name"`
	RequiredPoints int    `json:"required_points"`
}

// Ladder maps a point total to a discrete progression stage. It holds no
// mutable state: StageFor always returns the same stage for the same input.
type Ladder struct {
	stages []Stage
}

// NewLadder creates a ladder from an ascending stage table. The first stage
// must require zero points so every total maps to a stage.
func NewLadder(stages []Stage) (*Ladder, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("points: at least one stage is required")
	}
	if stages[0].RequiredPoints != 0 {
		return nil, fmt.Errorf("points: first stage must require 0 points, got %d", stages[0].RequiredPoints)
	}
	for i := 1; i < len(stages); i++ {
		if stages[i].RequiredPoints <= stages[i-1].RequiredPoints {
			return nil, fmt.Errorf("points: stages must be strictly ascending at %q", stages[i].Name)
		}
	}
	owned := make([]Stage, len(stages))
	copy(owned, stages)
	return &Ladder{stages: owned}, nil
}

// StageFor returns the highest stage whose required points do not exceed
// the given total.
func (l *Ladder) StageFor(pointTotal int) Stage {
	current := l.stages[0]
	for _, s := range l.stages[1:] {
		if s.RequiredPoints > pointTotal {
			break
		}
		current = s
	}
	return current
}

// Stages returns a copy of the stage table.
func (l *Ladder) Stages() []Stage {
	out := make([]Stage, len(l.stages))
	copy(out, l.stages)
	return out
}

// BuiltinStages returns the built-in progression ladder.
func BuiltinStages() []Stage {
	return []Stage{
		{Name: "Spark", RequiredPoints: 0},
		{Name: "Ember", RequiredPoints: 150},
		{Name: "Flame", RequiredPoints: 500},
		{Name: "Blaze", RequiredPoints: 1500},
		{Name: "Beacon", RequiredPoints: 4000},
		{Name: "Nova", RequiredPoints: 10000},
	}
}
