package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreRisk(t *testing.T) {
	a := newTestAnalyzer(t)

	tests := []struct {
		name    string
		text    string
		score   int
		level   Level
		reasons int
	}{
		{"quiet update", "All good.", 15, LevelLow, 0},
		{"ambiguity and deadline", "Not sure about the deadline.", 60, LevelMedium, 3},
		{"blocked near deadline", "Blocked, deadline tomorrow", 95, LevelHigh, 4},
		{"capped", "Blocked and unclear, submit by tomorrow", 100, LevelHigh, 5},
		{"owned tasks skip owner rule", "Launch Friday, PM owns it", 15, LevelLow, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ScoreRisk(tt.text, a.ExtractTasks(tt.text))
			assert.Equal(t, tt.score, r.Score)
			assert.Equal(t, tt.level, r.Level)
			assert.Len(t, r.Reasons, tt.reasons)
		})
	}
}

func TestScoreRiskFloorAndReasonsOrder(t *testing.T) {
	r := ScoreRisk("", nil)
	require.Equal(t, 15, r.Score)
	require.NotNil(t, r.Reasons)

	r = ScoreRisk("blocked deadline tomorrow", nil)
	require.GreaterOrEqual(t, r.Score, 85)
	require.Equal(t, LevelHigh, r.Level)
	require.Equal(t, []string{
		"Blocker / dependency detected",
		"Deadline / submission mentioned",
		"Very near-term deadline (today/tomorrow/EOD)",
	}, r.Reasons)
}

func TestBlockedTaskStatusCountsWithoutKeyword(t *testing.T) {
	tasks := []Task{{Label: LabelBlocker, Status: strp(StatusBlocked), Owner: strp("Omar")}}
	r := ScoreRisk("waiting on legal", tasks)
	require.Equal(t, 50, r.Score)
	require.Equal(t, LevelMedium, r.Level)
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, LevelLow, LevelFor(39))
	assert.Equal(t, LevelMedium, LevelFor(40))
	assert.Equal(t, LevelMedium, LevelFor(69))
	assert.Equal(t, LevelHigh, LevelFor(70))
}
