package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitstack/internal/backup"
	"github.com/julianstephens/habitstack/internal/cli"
	"github.com/julianstephens/habitstack/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(*cli.Context) error
	needsDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Data integrity", run: checkIntegrity, needsDB: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Printf("Running diagnostics...\n\n")

	hasError := false
	dbReachable := true
	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("%s\n", cli.SuccessStyle.Render(fmt.Sprintf("✓ %s: OK", c.name)))
		case c.warnOnly:
			ctx.Printf("%s\n", cli.WarningStyle.Render(fmt.Sprintf("⚠ %s: WARNING", c.name)))
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("%s\n", cli.DangerStyle.Render(fmt.Sprintf("❌ %s: FAIL", c.name)))
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Database reachable" {
				dbReachable = false
			}
		}
	}

	ctx.Printf("\n")
	if hasError {
		return errors.New("diagnostics found problems")
	}
	ctx.Printf("All checks passed.\n")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	return ctx.Store.Load(ctx.Ctx)
}

func checkSchemaVersion(ctx *cli.Context) error {
	status, err := ctx.Store.SchemaStatus(ctx.Ctx)
	if err != nil {
		return err
	}
	if status.Current != status.Latest {
		return fmt.Errorf("schema version %d, expected %d (run 'habitstack migrate')", status.Current, status.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath(), ctx.Clock).List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return errors.New("no backups found, create one with 'habitstack backup create'")
	}
	if age := ctx.Clock.Now().Sub(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock.Now()
	if now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if _, err := utils.ParseDay(utils.Today(ctx.Clock)); err != nil {
		return err
	}
	return nil
}

func checkIntegrity(ctx *cli.Context) error {
	result, err := ctx.Service.CheckIntegrity(ctx.Ctx)
	if err != nil {
		return err
	}
	if result.HasConflicts() {
		return errors.New(result.FormatReport())
	}
	return nil
}
