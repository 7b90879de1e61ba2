package intelligence

// Truth is a candidate fact extracted from one update.
type Truth struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Task statuses. A nil status renders as StatusOpen.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusBlocked    = "blocked"
)

// Task is an action item drafted from one update. Nil fields are unknown.
type Task struct {
	Label      string  `json:"task"`
	Owner      *string `json:"owner"`
	Status     *string `json:"status"`
	Deadline   *string `json:"deadline"`
	Dependency *string `json:"dependency"`
}

// Level is the coarse risk bucket.
type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"
)

// Risk is the additive risk assessment of one update.
type Risk struct {
	Score   int      `json:"risk_score"`
	Level   Level    `json:"risk_level"`
	Reasons []string `json:"reasons"`
}

// Conflict is a contradiction between the current value of a truth and a new one.
type Conflict struct {
	Key      string `json:"key"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
	Question string `json:"question"`
}

func ptr(s string) *string { return &s }

func deref(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
