package intelligence

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// KeywordRole maps a keyword found in an update to the role that should hear about it.
type KeywordRole struct {
	Keyword string `yaml:"keyword"`
	Role    string `yaml:"role"`
}

// Rules is the immutable keyword configuration an Analyzer is built from.
// Order matters: TeamRoles are matched and reported in table order.
type Rules struct {
	Weekdays       []string      `yaml:"weekdays"`
	TeamRoles      []KeywordRole `yaml:"team_roles"`
	PMKeywords     []string      `yaml:"pm_keywords"`
	ProjectManager string        `yaml:"project_manager"`
}

const defaultProjectManager = "Project Manager"

// DefaultRules returns the built-in tables.
func DefaultRules() Rules {
	return Rules{
		Weekdays: []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
		TeamRoles: []KeywordRole{
			{Keyword: "backend", Role: "Backend Lead"},
			{Keyword: "frontend", Role: "Frontend Lead"},
			{Keyword: "ui", Role: "Frontend Lead"},
			{Keyword: "design", Role: "Design Lead"},
			{Keyword: "qa", Role: "QA Lead"},
			{Keyword: "testing", Role: "QA Lead"},
			{Keyword: "api", Role: "Backend Lead"},
			{Keyword: "infra", Role: "Infra Lead"},
			{Keyword: "devops", Role: "Infra Lead"},
			{Keyword: "security", Role: "Security Lead"},
		},
		PMKeywords:     []string{"launch", "deadline", "submission", "submit"},
		ProjectManager: defaultProjectManager,
	}
}

// LoadRules reads a YAML rules file. Sections left empty in the file keep their defaults.
func LoadRules(path string) (Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	var override Rules
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return Rules{}, fmt.Errorf("parse rules file: %w", err)
	}
	return DefaultRules().Merge(override)
}

// Merge returns r with every non-empty section of o replacing the matching section.
func (r Rules) Merge(o Rules) (Rules, error) {
	out := r.clone()
	if len(o.Weekdays) > 0 {
		out.Weekdays = append([]string(nil), o.Weekdays...)
	}
	if len(o.TeamRoles) > 0 {
		out.TeamRoles = append([]KeywordRole(nil), o.TeamRoles...)
	}
	if len(o.PMKeywords) > 0 {
		out.PMKeywords = append([]string(nil), o.PMKeywords...)
	}
	if o.ProjectManager != "" {
		out.ProjectManager = o.ProjectManager
	}
	return out, out.Validate()
}

// Validate rejects blank entries, which would match every update.
func (r Rules) Validate() error {
	if len(r.Weekdays) == 0 {
		return fmt.Errorf("rules: weekdays must not be empty")
	}
	for _, d := range r.Weekdays {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("rules: blank weekday")
		}
	}
	for i, kr := range r.TeamRoles {
		if strings.TrimSpace(kr.Keyword) == "" || strings.TrimSpace(kr.Role) == "" {
			return fmt.Errorf("rules: team_roles[%d] needs both keyword and role", i)
		}
	}
	for _, kw := range r.PMKeywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("rules: blank pm keyword")
		}
	}
	if strings.TrimSpace(r.ProjectManager) == "" {
		return fmt.Errorf("rules: project_manager must not be empty")
	}
	return nil
}

func (r Rules) clone() Rules {
	return Rules{
		Weekdays:       append([]string(nil), r.Weekdays...),
		TeamRoles:      append([]KeywordRole(nil), r.TeamRoles...),
		PMKeywords:     append([]string(nil), r.PMKeywords...),
		ProjectManager: r.ProjectManager,
	}
}
