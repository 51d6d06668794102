package validation

import (
	"fmt"
	"sort"

	"github.com/julianstephens/habitstack/internal/models"
	"github.com/julianstephens/habitstack/internal/utils"
)

// ConflictType represents the type of integrity conflict
type ConflictType string

const (
	ConflictDuplicateLogDay   ConflictType = "duplicate_log_day"
	ConflictInvalidDay        ConflictType = "invalid_day"
	ConflictStreakInvariant   ConflictType = "streak_invariant"
	ConflictTrackerBehind     ConflictType = "tracker_behind"
	ConflictWindowBehindLogs  ConflictType = "window_behind_logs"
	ConflictDuplicateStackKey ConflictType = "duplicate_stack_key"
)

// Conflict represents one detected problem in stored habit data
type Conflict struct {
	Type        ConflictType
	Description string
	StackID     string
	Days        []string // YYYY-MM-DD format (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// StackState is everything stored for one habit stack
type StackState struct {
	Stack   models.HabitStack
	Logs    []models.LogEntry
	Tracker *models.Tracker
}

// Validator checks stored habit data against the engine's invariants
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateStacks checks each stack's logs, window and cached tracker, and the
// per-user stack uniqueness across all of them.
func (v *Validator) ValidateStacks(states []StackState) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	keys := make(map[string][]string)
	for _, s := range states {
		key := s.Stack.UserID + "|" + HabitKey(s.Stack.Habit1) + "|" + HabitKey(s.Stack.Habit2)
		keys[key] = append(keys[key], s.Stack.ID)

		result.Conflicts = append(result.Conflicts, v.validateStack(s)...)
	}

	dupKeys := make([]string, 0)
	for key, ids := range keys {
		if len(ids) > 1 {
			dupKeys = append(dupKeys, key)
		}
	}
	sort.Strings(dupKeys)
	for _, key := range dupKeys {
		ids := keys[key]
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateStackKey,
			Description: fmt.Sprintf("Duplicate habit stack for the same habits (IDs: %v)", ids),
			StackID:     ids[0],
		})
	}

	return result
}

func (v *Validator) validateStack(s StackState) []Conflict {
	var conflicts []Conflict

	seen := make(map[string]int)
	completed := 0
	latest := ""
	for _, l := range s.Logs {
		seen[l.Day]++
		if l.Completed {
			completed++
		}
		if l.Day > latest {
			latest = l.Day
		}
		if !isValidDay(l.Day) {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidDay,
				Description: fmt.Sprintf("Stack %s has a log with invalid day %q", s.Stack.ID, l.Day),
				StackID:     s.Stack.ID,
				Days:        []string{l.Day},
			})
		}
	}

	var dupDays []string
	for day, n := range seen {
		if n > 1 {
			dupDays = append(dupDays, day)
		}
	}
	if len(dupDays) > 0 {
		sort.Strings(dupDays)
		conflicts = append(conflicts, Conflict{
			Type:        ConflictDuplicateLogDay,
			Description: fmt.Sprintf("Stack %s has more than one log for %v", s.Stack.ID, dupDays),
			StackID:     s.Stack.ID,
			Days:        dupDays,
		})
	}

	if latest != "" && s.Stack.ActiveUntil < latest {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictWindowBehindLogs,
			Description: fmt.Sprintf("Stack %s is active until %s but has logs through %s", s.Stack.ID, s.Stack.ActiveUntil, latest),
			StackID:     s.Stack.ID,
			Days:        []string{s.Stack.ActiveUntil, latest},
		})
	}

	if t := s.Tracker; t != nil {
		if t.LongestStreak < t.CurrentStreak {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictStreakInvariant,
				Description: fmt.Sprintf("Stack %s tracker has longest streak %d below current streak %d", s.Stack.ID, t.LongestStreak, t.CurrentStreak),
				StackID:     s.Stack.ID,
			})
		}
		if t.TotalCompletions < completed {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictTrackerBehind,
				Description: fmt.Sprintf("Stack %s tracker counts %d completions but %d logs are completed", s.Stack.ID, t.TotalCompletions, completed),
				StackID:     s.Stack.ID,
			})
		}
	}

	return conflicts
}

func isValidDay(day string) bool {
	_, err := utils.ParseDay(day)
	return err == nil
}
