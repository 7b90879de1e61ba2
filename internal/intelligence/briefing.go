package intelligence

import (
	"fmt"
	"strings"
)

const briefingTitle = "Chief of Staff Briefing"

// BriefingInput is everything the briefing is rendered from.
type BriefingInput struct {
	Text      string
	Tasks     []Task
	Truths    []Truth
	RiskLevel Level
	Routing   []string
	Conflicts []Conflict
	// ProjectManager is notified when routing is empty.
	ProjectManager string
}

// RenderBriefing formats the executive summary of one update. Situation, risk
// level and notify sections are always present; the others only when they have
// content. Output depends on nothing but the input.
func RenderBriefing(in BriefingInput) string {
	level := strings.ToUpper(string(in.RiskLevel))
	if level == "" {
		level = string(LevelLow)
	}

	var lines []string
	section := func(title string, body []string) {
		lines = append(lines, title)
		lines = append(lines, body...)
		lines = append(lines, "")
	}

	lines = append(lines, briefingTitle, "")
	section("Situation:", []string{"- " + strings.TrimSpace(in.Text)})
	lines = append(lines, "Risk Level: "+level, "")

	if len(in.Truths) > 0 {
		body := make([]string, 0, len(in.Truths))
		for _, tr := range in.Truths {
			body = append(body, fmt.Sprintf("- %s = %s", tr.Key, tr.Value))
		}
		section("Truth Updates:", body)
	}

	if len(in.Tasks) > 0 {
		body := make([]string, 0, len(in.Tasks))
		for _, t := range in.Tasks {
			body = append(body, fmt.Sprintf("- %s | owner=%s | status=%s | deadline=%s | dependency=%s",
				taskNodeID(t),
				deref(t.Owner, "Unassigned"),
				deref(t.Status, StatusOpen),
				deref(t.Deadline, "-"),
				deref(t.Dependency, "-"),
			))
		}
		section("Action Items:", body)
	}

	if len(in.Conflicts) > 0 {
		body := make([]string, 0, len(in.Conflicts))
		for _, c := range in.Conflicts {
			if c.Question != "" {
				body = append(body, "- "+c.Question)
			} else {
				body = append(body, "- "+c.String())
			}
		}
		section("Conflicts Needing Confirmation:", body)
	}

	lines = append(lines, "Notify:")
	if len(in.Routing) == 0 {
		pm := in.ProjectManager
		if pm == "" {
			pm = defaultProjectManager
		}
		lines = append(lines, "- "+pm)
	}
	for _, r := range in.Routing {
		lines = append(lines, "- "+r)
	}

	return strings.Join(lines, "\n")
}
