package system

import (
	"fmt"

	"github.com/julianstephens/habitstack/internal/cli"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	before, err := ctx.Store.SchemaStatus(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if before.Current == before.Latest {
		ctx.Printf("No migrations to apply. Database is up to date.\n")
		return nil
	}

	if err := ctx.Store.Init(ctx.Ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	after, err := ctx.Store.SchemaStatus(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	ctx.Printf("\nSuccessfully applied %d migration(s). Schema version: %d\n", after.Current-before.Current, after.Current)
	return nil
}
