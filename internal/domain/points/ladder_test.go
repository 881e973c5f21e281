package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageForBoundaries(t *testing.T) {
	ladder, err := NewLadder([]Stage{
		{Name: "Bronze", RequiredPoints: 0},
		{Name: "Silver", RequiredPoints: 100},
		{Name: "Gold", RequiredPoints: 500},
	})
	require.NoError(t, err)

	tests := []struct {
		points int
		want   string
	}{
		{0, "Bronze"},
		{99, "Bronze"},
		{100, "Silver"},
		{499, "Silver"},
		{500, "Gold"},
		{100000, "Gold"},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, ladder.StageFor(tt.points).Name, "points=%d", tt.points)
	}
}

func TestStageForIsPure(t *testing.T) {
	ladder, err := NewLadder(BuiltinStages())
	require.NoError(t, err)

	first := ladder.StageFor(777)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ladder.StageFor(777))
	}
}

func TestNewLadderValidation(t *testing.T) {
	_, err := NewLadder(nil)
	assert.Error(t, err)

	_, err = NewLadder([]Stage{{Name: "A", RequiredPoints: 10}})
	assert.Error(t, err, "first stage must require zero points")

	_, err = NewLadder([]Stage{
		{Name: "A", RequiredPoints: 0},
		{Name: "B", RequiredPoints: 100},
		{Name: "C", RequiredPoints: 100},
	})
	assert.Error(t, err, "stages must be strictly ascending")
}
