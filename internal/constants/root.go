package constants

import "time"

// Goal is the goal mode of a habit stack
type Goal string

const (
	AppName            = "habitstack"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitstack/habitstack.db"
	Version            = "v0.3.0"

	// Goal modes
	GoalDaily  Goal = "DAILY"
	GoalNoGoal Goal = "NO_GOAL"

	// Log window constants
	InitialWindowDays    = 7
	DefaultExtensionDays = 7

	// Streak and milestone constants
	MilestoneStep       = 5
	MinStreakForMessage = 2

	// Habit keys identify a habit slot for the per-user uniqueness constraint
	HabitKeyPredefinedPrefix = "p:"
	HabitKeyCustomPrefix     = "c:"
	MaxHabitNameLength       = 255

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitstack-"
	BackupFileSuffix = ".db"

	// Worker constants
	DefaultWorkerSchedule    = "@daily"
	DefaultRollForwardWithin = 2
	DefaultWorkerRunTimeout  = 2 * time.Minute

	// Storage constants
	SQLiteBusyTimeoutMillis = 5000
	PostgresMaxOpenConns    = 25
	PostgresConnMaxLifetime = 5 * time.Minute
)

// ExtensionOptions are the window lengths, in days, a habit stack may be extended by.
var ExtensionOptions = []int{7, 14}
