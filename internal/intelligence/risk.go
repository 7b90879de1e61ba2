package intelligence

import "strings"

const (
	baseRiskScore = 15
	maxRiskScore  = 100
)

type riskRule struct {
	points int
	reason string
	hit    func(lower string, tasks []Task) bool
}

var riskRules = []riskRule{
	{35, "Blocker / dependency detected", func(lower string, tasks []Task) bool {
		if strings.Contains(lower, "blocked") {
			return true
		}
		for _, t := range tasks {
			if t.Status != nil && *t.Status == StatusBlocked {
				return true
			}
		}
		return false
	}},
	{20, "Ambiguity signal (unclear/unknown)", func(lower string, _ []Task) bool {
		return containsAny(lower, "unclear", "not sure", "unknown", "needs confirmation")
	}},
	{15, "Deadline / submission mentioned", func(lower string, _ []Task) bool {
		return containsAny(lower, "deadline", "submission", "submit")
	}},
	{20, "Very near-term deadline (today/tomorrow/EOD)", func(lower string, _ []Task) bool {
		return containsAny(lower, "tomorrow", "today", "eod", "end of day")
	}},
	{10, "Tasks present but owner not identified", func(_ string, tasks []Task) bool {
		if len(tasks) == 0 {
			return false
		}
		for _, t := range tasks {
			if t.Owner != nil && *t.Owner != "" {
				return false
			}
		}
		return true
	}},
}

// ScoreRisk adds the points of every triggered rule to the base score, caps the
// total and buckets it. Reasons follow rule order.
func ScoreRisk(text string, tasks []Task) Risk {
	lower := strings.ToLower(text)
	score := baseRiskScore
	reasons := []string{}
	for _, r := range riskRules {
		if r.hit(lower, tasks) {
			score += r.points
			reasons = append(reasons, r.reason)
		}
	}
	if score > maxRiskScore {
		score = maxRiskScore
	}
	return Risk{Score: score, Level: LevelFor(score), Reasons: reasons}
}

// LevelFor buckets a risk score.
func LevelFor(score int) Level {
	switch {
	case score >= 70:
		return LevelHigh
	case score >= 40:
		return LevelMedium
	default:
		return LevelLow
	}
}
