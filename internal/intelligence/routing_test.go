package intelligence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouteDefaultsToProjectManager(t *testing.T) {
	a := newTestAnalyzer(t)
	require.Equal(t, []string{"Project Manager"}, a.Route("All good.", nil))
}

func TestRouteOrder(t *testing.T) {
	a := newTestAnalyzer(t)
	text := "Backend is blocked by api team. Launch Friday. Frontend waiting on API. Deadline tomorrow."

	require.Equal(t,
		[]string{"Backend Lead", "Frontend Lead", "Project Manager"},
		a.Route(text, a.ExtractTasks(text)),
	)
}

func TestRouteAddsOwnersOnce(t *testing.T) {
	a := newTestAnalyzer(t)
	text := "Security review: Sana will handle it. Sana will lead the retro."

	require.Equal(t, []string{"Security Lead", "Sana"}, a.Route(text, a.ExtractTasks(text)))
}

func TestRouteUsesInjectedRules(t *testing.T) {
	rules, err := DefaultRules().Merge(Rules{
		TeamRoles:      []KeywordRole{{Keyword: "mobile", Role: "Mobile Lead"}},
		ProjectManager: "Delivery Manager",
	})
	require.NoError(t, err)
	a, err := NewAnalyzer(rules)
	require.NoError(t, err)

	require.Equal(t, []string{"Mobile Lead"}, a.Route("Mobile build slipped", nil))
	require.Equal(t, []string{"Delivery Manager"}, a.Route("Backend is fine", nil))
}
