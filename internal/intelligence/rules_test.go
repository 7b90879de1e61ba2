package intelligence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRulesOverridesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `team_roles:
  - keyword: mobile
    role: Mobile Lead
  - keyword: data
    role: Data Lead
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, []KeywordRole{{"mobile", "Mobile Lead"}, {"data", "Data Lead"}}, rules.TeamRoles)
	assert.Equal(t, DefaultRules().Weekdays, rules.Weekdays)
	assert.Equal(t, "Project Manager", rules.ProjectManager)
}

func TestLoadRulesRejectsBlankKeyword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("team_roles:\n  - keyword: \"\"\n    role: Nobody\n"), 0o644))

	_, err := LoadRules(path)
	require.Error(t, err)
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestAnalyzerCopiesRules(t *testing.T) {
	rules := DefaultRules()
	a, err := NewAnalyzer(rules)
	require.NoError(t, err)

	rules.TeamRoles[0].Role = "Changed"
	require.Equal(t, "Backend Lead", a.Rules().TeamRoles[0].Role)
}
