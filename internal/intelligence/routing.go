package intelligence

import "strings"

// orderedSet keeps first-insertion order.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet { return &orderedSet{seen: map[string]struct{}{}} }

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

// Route returns who should be notified about an update: mapped team roles in
// table order, then the project manager for schedule keywords, then task owners.
// The list is never empty.
func (a *Analyzer) Route(text string, tasks []Task) []string {
	lower := strings.ToLower(text)
	notify := newOrderedSet()

	for _, kr := range a.rules.TeamRoles {
		if strings.Contains(lower, strings.ToLower(kr.Keyword)) {
			notify.add(kr.Role)
		}
	}
	if containsAny(lower, a.rules.PMKeywords...) {
		notify.add(a.rules.ProjectManager)
	}
	for _, t := range tasks {
		if t.Owner != nil && *t.Owner != "" {
			notify.add(*t.Owner)
		}
	}
	if len(notify.items) == 0 {
		notify.add(a.rules.ProjectManager)
	}
	return notify.items
}
