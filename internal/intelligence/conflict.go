package intelligence

import (
	"fmt"
	"strings"
)

// DetectConflict reports whether asserting next contradicts the current value.
// No current value, or an equal re-assertion after trimming, is not a conflict.
func DetectConflict(current *string, next string) bool {
	if current == nil || *current == "" || next == "" {
		return false
	}
	return strings.TrimSpace(*current) != strings.TrimSpace(next)
}

// ConflictQuestion is the confirmation prompt stored with a conflict.
func ConflictQuestion(key, oldValue, newValue string) string {
	return fmt.Sprintf("Which is correct for %s: '%s' or '%s'?", key, oldValue, newValue)
}

// NewConflict builds the conflict record for key.
func NewConflict(key, oldValue, newValue string) Conflict {
	return Conflict{
		Key:      key,
		OldValue: oldValue,
		NewValue: newValue,
		Question: ConflictQuestion(key, oldValue, newValue),
	}
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: '%s' -> '%s'", c.Key, c.OldValue, c.NewValue)
}
