package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitstack/internal/catalog"
	"github.com/julianstephens/habitstack/internal/cli"
	"github.com/julianstephens/habitstack/internal/constants"
)

type InitCmd struct {
	Force  bool `help:"Delete an existing SQLite database before initialization."`
	NoSeed bool `help:"Do not import the built-in habit catalog."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if !ctx.IsSQLite() {
			return fmt.Errorf("--force is only supported for SQLite databases")
		}
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(ctx.Ctx); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if c.NoSeed {
		return nil
	}
	habits, err := catalog.Default()
	if err != nil {
		return err
	}
	n, err := ctx.Service.ImportCatalog(ctx.Ctx, habits)
	if err != nil {
		return fmt.Errorf("failed to seed habit catalog: %w", err)
	}
	ctx.Printf("Seeded %d predefined habits\n", n)
	return nil
}
