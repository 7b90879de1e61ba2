package intelligence

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Analyzer runs the extraction, scoring and routing stages over one update.
// It is safe for concurrent use.
type Analyzer struct {
	rules      Rules
	weekdayRE  *regexp.Regexp
	truthRules []truthRule
}

// Analysis is everything derived from one update's text.
type Analysis struct {
	Text    string
	Truths  []Truth
	Tasks   []Task
	Risk    Risk
	Routing []string

	// ProjectManager is the configured fallback recipient.
	ProjectManager string
}

// NewAnalyzer compiles rules into an Analyzer.
func NewAnalyzer(rules Rules) (*Analyzer, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	rules = rules.clone()
	days := make([]string, len(rules.Weekdays))
	for i, d := range rules.Weekdays {
		days[i] = regexp.QuoteMeta(strings.ToLower(strings.TrimSpace(d)))
	}
	re, err := regexp.Compile(`\b(` + strings.Join(days, "|") + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("compile weekday pattern: %w", err)
	}
	a := &Analyzer{rules: rules, weekdayRE: re}
	a.truthRules = a.defaultTruthRules()
	return a, nil
}

// MustNewAnalyzer is NewAnalyzer for rules known to be valid.
func MustNewAnalyzer(rules Rules) *Analyzer {
	a, err := NewAnalyzer(rules)
	if err != nil {
		panic(err)
	}
	return a
}

// Rules returns a copy of the analyzer's configuration.
func (a *Analyzer) Rules() Rules { return a.rules.clone() }

// Analyze runs every pure stage over text. Truths, tasks and routing are
// independent of each other; risk consumes the drafted tasks.
func (a *Analyzer) Analyze(text string) Analysis {
	tasks := a.ExtractTasks(text)
	return Analysis{
		Text:    text,
		Truths:  a.ExtractTruths(text),
		Tasks:   tasks,
		Risk:    ScoreRisk(text, tasks),
		Routing: a.Route(text, tasks),

		ProjectManager: a.rules.ProjectManager,
	}
}

// Graph builds the relationship graph of this analysis.
func (an Analysis) Graph() Graph {
	return BuildGraph(an.Tasks, an.Routing, an.Truths)
}

// Briefing renders the briefing of this analysis with the conflicts the truth store raised.
func (an Analysis) Briefing(conflicts []Conflict) string {
	return RenderBriefing(BriefingInput{
		Text:           an.Text,
		Tasks:          an.Tasks,
		Truths:         an.Truths,
		RiskLevel:      an.Risk.Level,
		Routing:        an.Routing,
		Conflicts:      conflicts,
		ProjectManager: an.ProjectManager,
	})
}

// weekday returns the capitalized leftmost weekday in lower.
func (a *Analyzer) weekday(lower string) (string, bool) {
	m := a.weekdayRE.FindStringSubmatch(lower)
	if m == nil {
		return "", false
	}
	return capitalize(m[1]), true
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
