package intelligence

import (
	"regexp"
	"strings"
)

// Truth keys.
const (
	KeyLaunchDate     = "launch_date"
	KeyPriority       = "priority"
	KeyDecisionStatus = "decision_status"
	KeyScope          = "scope"
)

var priorityRE = regexp.MustCompile(`priority\s*[:\-]?\s*(p0|p1|p2|high|medium|low)`)

var (
	decisionKeywords = []string{"we decided", "decision", "approved", "finalized", "confirmed"}
	scopeKeywords    = []string{"change", "changed", "reduced", "expanded", "updated"}
)

// truthRule emits at most one truth for key from lowercased text.
type truthRule struct {
	key  string
	emit func(lower string) (string, bool)
}

func (a *Analyzer) defaultTruthRules() []truthRule {
	return []truthRule{
		{key: KeyLaunchDate, emit: func(lower string) (string, bool) {
			if !strings.Contains(lower, "launch") {
				return "", false
			}
			return a.weekday(lower)
		}},
		{key: KeyPriority, emit: func(lower string) (string, bool) {
			m := priorityRE.FindStringSubmatch(lower)
			if m == nil {
				return "", false
			}
			return strings.ToUpper(m[1]), true
		}},
		{key: KeyDecisionStatus, emit: func(lower string) (string, bool) {
			return "UPDATED", containsAny(lower, decisionKeywords...)
		}},
		{key: KeyScope, emit: func(lower string) (string, bool) {
			return "CHANGED", strings.Contains(lower, "scope") && containsAny(lower, scopeKeywords...)
		}},
	}
}

// ExtractTruths evaluates the truth rules in order. Each rule is independent,
// so one update may emit several truths.
func (a *Analyzer) ExtractTruths(text string) []Truth {
	lower := strings.ToLower(text)
	var out []Truth
	for _, r := range a.truthRules {
		if v, ok := r.emit(lower); ok {
			out = append(out, Truth{Key: r.key, Value: v})
		}
	}
	return out
}
