package points

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var grantedAt = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func TestGrantAccumulatesTotal(t *testing.T) {
	l := NewLedger()
	require.True(t, l.Grant(10, "exercise completed", "e1", grantedAt))
	require.True(t, l.Grant(50, "lesson mastered", "e2", grantedAt))

	assert.Equal(t, 60, l.Total)
	require.Len(t, l.Entries, 2)
	assert.Equal(t, "lesson mastered", l.Entries[1].Reason)
}

func TestGrantIsIdempotentPerEventID(t *testing.T) {
	l := NewLedger()
	require.True(t, l.Grant(10, "exercise completed", "e1", grantedAt))
	assert.False(t, l.Grant(10, "exercise completed", "e1", grantedAt), "replayed event must not grant again")

	assert.Equal(t, 10, l.Total)
	assert.Len(t, l.Entries, 1)
}

func TestGrantWithoutEventID(t *testing.T) {
	l := NewLedger()
	assert.True(t, l.Grant(5, "adjustment", "", grantedAt))
	assert.True(t, l.Grant(5, "adjustment", "", grantedAt))
	assert.Equal(t, 10, l.Total)
}

func TestGrantOnLoadedLedger(t *testing.T) {
	// A ledger decoded from an old snapshot may have a nil key set.
	l := &Ledger{}
	assert.True(t, l.Grant(5, "exercise completed", "e1", grantedAt))
	assert.False(t, l.Grant(5, "exercise completed", "e1", grantedAt))
}

func TestRunningQuizAverage(t *testing.T) {
	l := NewLedger()
	for _, score := range []float64{80, 100, 60} {
		l.RecordQuizScore(score)
	}
	assert.InDelta(t, 80.0, l.AverageQuizScore, 1e-9)
	assert.Equal(t, 3, l.QuizCount)
}

func TestRunningQuizAverageMatchesArithmeticMean(t *testing.T) {
	l := NewLedger()
	scores := []float64{100, 0, 50, 75, 33.4, 90, 12.5}
	sum := 0.0
	for _, s := range scores {
		l.RecordQuizScore(s)
		sum += s
	}
	mean := sum / float64(len(scores))
	assert.True(t, math.Abs(l.AverageQuizScore-mean) < 1e-9)
}
