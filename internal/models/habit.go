package models

import (
	"time"

	"github.com/julianstephens/habitstack/internal/constants"
)

// PredefinedHabit is a catalog habit a stack slot may reference instead of free text
type PredefinedHabit struct {
	ID   string `json:"id" db:"id" yaml:"id"`
	Name string `json:"name" db:"name" yaml:"name"`
}

// HabitDescriptor fills one habit slot of a stack. Exactly one field is set.
type HabitDescriptor struct {
	PredefinedID string `json:"predefined_id,omitempty"`
	Custom       string `json:"custom,omitempty"`
}

func (d HabitDescriptor) IsPredefined() bool { return d.PredefinedID != "" }
func (d HabitDescriptor) IsCustom() bool     { return d.Custom != "" }

// HabitStack pairs two habits a user tracks together
type HabitStack struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Habit1      HabitDescriptor `json:"habit1"`
	Habit2      HabitDescriptor `json:"habit2"`
	Habit1Name  string          `json:"habit1_name"`
	Habit2Name  string          `json:"habit2_name"`
	Goal        constants.Goal  `json:"goal"`
	CreatedAt   time.Time       `json:"created_at"`
	ActiveUntil string          `json:"active_until"` // YYYY-MM-DD format
}

// HabitStackInput carries the user-supplied fields for creating or editing a stack
type HabitStackInput struct {
	Habit1 HabitDescriptor
	Habit2 HabitDescriptor
	Goal   constants.Goal
}

// LogEntry is a single day's completion record for a habit stack
type LogEntry struct {
	ID            string    `json:"id"`
	HabitStackID  string    `json:"habit_stack_id"`
	UserID        string    `json:"user_id"`
	Day           string    `json:"day"` // YYYY-MM-DD format
	Completed     bool      `json:"completed"`
	StreakMessage string    `json:"streak_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Tracker caches the running streak state for a (user, habit stack) pair
type Tracker struct {
	UserID           string    `json:"user_id"`
	HabitStackID     string    `json:"habit_stack_id"`
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	TotalCompletions int       `json:"total_completions"`
	MilestoneDates   []string  `json:"milestone_dates"`
	LastCheckInDay   string    `json:"last_checkin_day,omitempty"` // YYYY-MM-DD format
	UpdatedAt        time.Time `json:"updated_at"`
}

// Milestone records a completion threshold reached by a habit stack
type Milestone struct {
	ID           string    `json:"-"`
	HabitStackID string    `json:"-"`
	Threshold    int       `json:"threshold"`
	DateAchieved string    `json:"date_achieved"` // YYYY-MM-DD format
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"-"`
}
