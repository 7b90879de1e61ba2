package intelligence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(DefaultRules())
	require.NoError(t, err)
	return a
}

func TestExtractTruths(t *testing.T) {
	a := newTestAnalyzer(t)

	tests := []struct {
		name string
		text string
		want []Truth
	}{
		{"launch with weekday", "Launch Friday.", []Truth{{KeyLaunchDate, "Friday"}}},
		{"weekday without launch", "Friday we sync on the roadmap.", nil},
		{"launch without weekday", "Launch is close.", nil},
		{"priority colon", "Priority: P0", []Truth{{KeyPriority, "P0"}}},
		{"priority dash with spaces", "priority - high", []Truth{{KeyPriority, "HIGH"}}},
		{"decision", "The budget was approved.", []Truth{{KeyDecisionStatus, "UPDATED"}}},
		{"scope without change word", "Scope is fine.", nil},
		{
			"every rule in table order",
			"We decided the scope changed. Launch Monday, priority p1.",
			[]Truth{
				{KeyLaunchDate, "Monday"},
				{KeyPriority, "P1"},
				{KeyDecisionStatus, "UPDATED"},
				{KeyScope, "CHANGED"},
			},
		},
		{"leftmost weekday wins", "Launch moved from Tuesday to Thursday", []Truth{{KeyLaunchDate, "Tuesday"}}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, a.ExtractTruths(tt.text))
		})
	}
}

func TestWeekdayNeedsWordBoundary(t *testing.T) {
	a := newTestAnalyzer(t)
	require.Empty(t, a.ExtractTruths("Launch the fridays-special menu"))
}
