package intelligence

import (
	"regexp"
	"strings"
)

// Task labels.
const (
	LabelBlocker    = "Resolve blocker / dependency"
	LabelLaunch     = "Launch readiness"
	LabelSubmission = "Prepare submission / deliverable"
	LabelOwnedItem  = "Owned item"
)

var (
	blockedByRE  = regexp.MustCompile(`blocked by ([a-z0-9 \-_]+)`)
	waitingOnRE  = regexp.MustCompile(`waiting on ([a-z0-9 \-_]+)`)
	ownerRE      = regexp.MustCompile(`(?i:assigned to|owner is|handled by|owned by)\s+([a-zA-Z ]{2,40})`)
	namedActorRE = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)?)\s+(will|was)\s+(handle|prepare|coordinate|own|lead)`)

	trailingPunctRE = regexp.MustCompile(`[.,;:\-]+$`)
	spacesRE        = regexp.MustCompile(`\s+`)
)

var (
	blockerKeywords    = []string{"blocked", "waiting on", "depends on"}
	submissionKeywords = []string{"submit", "submission", "deliver", "deliverable", "deadline"}
)

// taskBuilder accumulates drafts in order and exposes the most recent one,
// which owner phrases attach to.
type taskBuilder struct {
	tasks []Task
}

func (b *taskBuilder) add(t Task) { b.tasks = append(b.tasks, t) }

// last is the "current last" cursor; nil when nothing has been drafted.
func (b *taskBuilder) last() *Task {
	if len(b.tasks) == 0 {
		return nil
	}
	return &b.tasks[len(b.tasks)-1]
}

// ExtractTasks drafts action items from text.
func (a *Analyzer) ExtractTasks(text string) []Task {
	lower := strings.ToLower(text)
	deadline := a.deadlineSlot(lower)
	b := &taskBuilder{}

	if containsAny(lower, blockerKeywords...) {
		b.add(Task{
			Label:      LabelBlocker,
			Status:     ptr(StatusBlocked),
			Deadline:   copyPtr(deadline),
			Dependency: dependency(lower),
		})
	}

	if strings.Contains(lower, "launch") {
		t := Task{Label: LabelLaunch, Deadline: copyPtr(deadline)}
		if day, ok := a.weekday(lower); ok {
			t.Deadline = ptr(day)
		}
		if strings.Contains(lower, "progress") {
			t.Status = ptr(StatusInProgress)
		}
		if containsAny(lower, "pm", "project manager") {
			t.Owner = ptr(a.rules.ProjectManager)
		}
		b.add(t)
	}

	if containsAny(lower, submissionKeywords...) {
		b.add(Task{Label: LabelSubmission, Deadline: copyPtr(deadline)})
	}

	if m := ownerRE.FindStringSubmatch(text); m != nil {
		owner := normalizeName(m[1])
		if last := b.last(); last != nil {
			last.Owner = ptr(owner)
		} else {
			b.add(Task{Label: LabelOwnedItem, Owner: ptr(owner), Deadline: copyPtr(deadline)})
		}
	}

	// Named actors are matched case-sensitively: the capitalized name is the signal.
	for _, m := range namedActorRE.FindAllStringSubmatch(text, -1) {
		b.add(Task{
			Label:    capitalize(m[3]) + " task",
			Owner:    ptr(normalizeName(m[1])),
			Deadline: copyPtr(deadline),
		})
	}

	return b.tasks
}

// deadlineSlot resolves the deadline shared by every task of one update.
func (a *Analyzer) deadlineSlot(lower string) *string {
	switch {
	case strings.Contains(lower, "tomorrow"):
		return ptr("Tomorrow")
	case strings.Contains(lower, "today"):
		return ptr("Today")
	case containsAny(lower, "eod", "end of day"):
		return ptr("EOD")
	}
	if day, ok := a.weekday(lower); ok && containsAny(lower, "by", "deadline") {
		return ptr(day)
	}
	return nil
}

func dependency(lower string) *string {
	if m := blockedByRE.FindStringSubmatch(lower); m != nil {
		if dep := strings.TrimSpace(m[1]); dep != "" {
			return ptr(dep)
		}
	}
	if m := waitingOnRE.FindStringSubmatch(lower); m != nil {
		if dep := strings.TrimSpace(m[1]); dep != "" {
			return ptr(dep)
		}
	}
	return nil
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	name = trailingPunctRE.ReplaceAllString(name, "")
	return spacesRE.ReplaceAllString(name, " ")
}

func copyPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return ptr(*s)
}
