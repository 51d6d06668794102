package main

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/habitstack/internal/cli"
	"github.com/julianstephens/habitstack/internal/cli/backups"
	"github.com/julianstephens/habitstack/internal/cli/stacks"
	"github.com/julianstephens/habitstack/internal/cli/system"
	"github.com/julianstephens/habitstack/internal/cli/users"
	"github.com/julianstephens/habitstack/internal/constants"
	apperrors "github.com/julianstephens/habitstack/internal/errors"
	"github.com/julianstephens/habitstack/internal/keyring"
	"github.com/julianstephens/habitstack/internal/logger"
	"github.com/julianstephens/habitstack/internal/service"
	"github.com/julianstephens/habitstack/internal/storage"
	"github.com/julianstephens/habitstack/internal/storage/postgres"
	"github.com/julianstephens/habitstack/internal/storage/sqlite"
	"github.com/julianstephens/habitstack/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	DB       string `help:"SQLite database path or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use .pgpass, PG* environment variables or the OS keyring." env:"HABITSTACK_DB"`
	User     string `help:"Acting user (id or username)." env:"HABITSTACK_USER"`
	Timezone string `help:"IANA timezone that decides what 'today' is." env:"HABITSTACK_TIMEZONE" default:"Local"`
	Debug    bool   `help:"Log debug output to stderr." env:"HABITSTACK_DEBUG"`

	Init    system.InitCmd    `cmd:"" help:"Initialize habitstack storage and seed the habit catalog."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Worker  system.WorkerCmd  `cmd:"" help:"Run the window roll-forward worker."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (redacted)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage the database connection string in the OS keyring."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Users struct {
		Add  users.UserAddCmd  `cmd:"" help:"Add a user."`
		List users.UserListCmd `cmd:"" help:"List users."`
	} `cmd:"" name:"user" help:"Manage users."`
	Catalog struct {
		Import users.CatalogImportCmd `cmd:"" help:"Import predefined habits from YAML."`
		List   users.CatalogListCmd   `cmd:"" help:"List predefined habits."`
	} `cmd:"" help:"Manage the predefined habit catalog."`
	Stack struct {
		Add    stacks.StackAddCmd    `cmd:"" help:"Create a habit stack."`
		List   stacks.StackListCmd   `cmd:"" help:"List your habit stacks."`
		Show   stacks.StackShowCmd   `cmd:"" help:"Show a habit stack."`
		Edit   stacks.StackEditCmd   `cmd:"" help:"Edit a habit stack."`
		Delete stacks.StackDeleteCmd `cmd:"" help:"Delete a habit stack and its logs."`
	} `cmd:"" help:"Manage habit stacks."`
	Log struct {
		List stacks.LogListCmd `cmd:"" help:"List a stack's daily logs."`
		Mark stacks.LogMarkCmd `cmd:"" help:"Mark a day done (or not done with --undo)."`
	} `cmd:"" help:"View and mark daily logs."`
	Extend   stacks.ExtendCmd   `cmd:"" help:"Extend a stack's logging window."`
	Checkin  stacks.CheckInCmd  `cmd:"" help:"Apply today's log to the streak tracker."`
	Progress stacks.ProgressCmd `cmd:"" help:"Show streaks and milestones for a stack."`
}

// resolveDB picks the database: flag or env, then the keyring, then the
// default SQLite path.
func resolveDB(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if connStr, err := keyring.Default().Get(); err == nil {
		return connStr, nil
	} else if !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup failed", "error", err)
	}
	return constants.DefaultConfigPath, nil
}

func openStore(db string) (storage.Provider, error) {
	if cli.IsPostgres(db) {
		if _, err := postgres.ValidateConnString(db); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, errors.New("PostgreSQL connection strings with embedded credentials are not allowed: " +
					"store it with 'habitstack keyring set', or use .pgpass / PGPASSWORD")
			}
			return nil, err
		}
		return postgres.New(db), nil
	}
	path, err := cli.ExpandPath(db)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}

// skipsLoad lists commands that manage storage themselves.
func skipsLoad(command string) bool {
	for _, prefix := range []string{"init", "migrate", "doctor", "keyring"} {
		if strings.HasPrefix(command, prefix) {
			return true
		}
	}
	return false
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit stacking: streaks, milestones and daily logs for pairs of habits"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":             constants.Version,
			"worker_schedule":     constants.DefaultWorkerSchedule,
			"roll_forward_within": strconv.Itoa(constants.DefaultRollForwardWithin),
			"extension_days":      strconv.Itoa(constants.DefaultExtensionDays),
		},
	)

	db, err := resolveDB(CLI.DB)
	apperrors.Fatal(err)

	store, err := openStore(db)
	apperrors.Fatal(err)

	configDir, err := cli.ConfigDir(db)
	apperrors.Fatal(err)
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir,
		JSON:      strings.HasPrefix(kctx.Command(), "worker"),
	}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	clock, err := utils.NewSystemClock(CLI.Timezone)
	apperrors.Fatal(err)

	ctx := context.Background()
	if !skipsLoad(kctx.Command()) {
		apperrors.Fatal(store.Load(ctx))
	}
	defer store.Close()

	appCtx := &cli.Context{
		Ctx:     ctx,
		Store:   store,
		Service: service.New(store, clock),
		Clock:   clock,
		UserRef: CLI.User,
		Out:     os.Stdout,
	}

	if err := kctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
