// Package storage defines the record store used by the habit stack service.
// Implementations live in the sqlite and postgres subpackages and share their
// queries through sqldb.
package storage

import (
	"context"

	"github.com/julianstephens/habitstack/internal/models"
)

// Repository is the set of queries the service runs, either directly against
// a Provider or inside a transaction opened with Provider.WithTx. Every
// user-scoped read filters by owner; a record owned by someone else is
// reported as not found.
type Repository interface {
	// Users
	AddUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByName(ctx context.Context, username string) (models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)

	// Predefined habits
	UpsertPredefinedHabit(ctx context.Context, habit models.PredefinedHabit) error
	GetPredefinedHabit(ctx context.Context, id string) (models.PredefinedHabit, error)
	GetAllPredefinedHabits(ctx context.Context) ([]models.PredefinedHabit, error)

	// Habit stacks
	// AddHabitStack returns ErrConflict when the user already has a stack for
	// the same pair of habit keys.
	AddHabitStack(ctx context.Context, stack models.HabitStack, habit1Key, habit2Key string) error
	GetHabitStack(ctx context.Context, userID, id string) (models.HabitStack, error)
	// LockHabitStack is GetHabitStack that also holds a row lock on the
	// stack until the surrounding transaction ends.
	LockHabitStack(ctx context.Context, userID, id string) (models.HabitStack, error)
	// FindHabitStackID returns the id of the user's stack with the given keys,
	// or "" when there is none.
	FindHabitStackID(ctx context.Context, userID, habit1Key, habit2Key string) (string, error)
	GetHabitStacksForUser(ctx context.Context, userID string) ([]models.HabitStack, error)
	// GetHabitStacksActiveUntilBefore returns stacks of every user whose
	// window ends before day.
	GetHabitStacksActiveUntilBefore(ctx context.Context, day string) ([]models.HabitStack, error)
	UpdateHabitStack(ctx context.Context, stack models.HabitStack, habit1Key, habit2Key string) error
	SetActiveUntil(ctx context.Context, stackID, day string) error
	DeleteHabitStack(ctx context.Context, userID, id string) error

	// Habit logs
	GetLogEntry(ctx context.Context, userID, id string) (models.LogEntry, error)
	GetLogEntries(ctx context.Context, userID, stackID string) ([]models.LogEntry, error)
	GetLogEntryForDay(ctx context.Context, userID, stackID, day string) (models.LogEntry, error)
	// GetLogDaysInRange returns the days in [from, to] that already have a log.
	GetLogDaysInRange(ctx context.Context, userID, stackID, from, to string) ([]string, error)
	GetCompletedDays(ctx context.Context, userID, stackID string) ([]string, error)
	// GetLatestLogDay returns false when the stack has no logs.
	GetLatestLogDay(ctx context.Context, userID, stackID string) (string, bool, error)
	HasLogsAfter(ctx context.Context, userID, stackID, day string) (bool, error)
	// InsertLogEntries skips entries whose (stack, user, day) already exists
	// and returns how many rows were written.
	InsertLogEntries(ctx context.Context, entries []models.LogEntry) (int, error)
	UpdateLogEntry(ctx context.Context, entry models.LogEntry) error

	// Trackers
	GetTracker(ctx context.Context, userID, stackID string) (models.Tracker, error)
	SaveTracker(ctx context.Context, tracker models.Tracker) error

	// Milestones
	// AddMilestone returns false when the stack already has a record for
	// the threshold.
	AddMilestone(ctx context.Context, milestone models.Milestone) (bool, error)
	GetMilestones(ctx context.Context, stackID string) ([]models.Milestone, error)
}

type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error

	Repository

	// WithTx runs fn in one transaction. fn's error rolls it back.
	WithTx(ctx context.Context, fn func(Repository) error) error

	// Utils
	GetConfigPath() string
	Driver() string
	SchemaStatus(ctx context.Context) (SchemaStatus, error)
}

// SchemaStatus reports the applied and available migration versions
type SchemaStatus struct {
	Current int
	Latest  int
}
