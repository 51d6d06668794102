package users

import (
	"fmt"

	"github.com/julianstephens/habitstack/internal/catalog"
	"github.com/julianstephens/habitstack/internal/cli"
)

type CatalogImportCmd struct {
	File string `arg:"" optional:"" type:"existingfile" help:"YAML catalog to import. Defaults to the built-in catalog."`
}

func (c *CatalogImportCmd) Run(ctx *cli.Context) error {
	habits, err := catalog.Default()
	if c.File != "" {
		habits, err = catalog.LoadFile(c.File)
	}
	if err != nil {
		return err
	}

	n, err := ctx.Service.ImportCatalog(ctx.Ctx, habits)
	if err != nil {
		return err
	}
	ctx.Printf("%s\n", cli.SuccessStyle.Render(fmt.Sprintf("✓ Imported %d predefined habit(s)", n)))
	return nil
}

type CatalogListCmd struct {
	JSON bool `help:"Print as JSON."`
}

func (c *CatalogListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Service.ListPredefinedHabits(ctx.Ctx)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(habits)
	}
	if len(habits) == 0 {
		ctx.Printf("The catalog is empty.\n")
		return nil
	}
	for _, h := range habits {
		ctx.Printf("  %-16s %s\n", h.ID, h.Name)
	}
	return nil
}
