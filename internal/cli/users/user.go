package users

import (
	"fmt"

	"github.com/julianstephens/habitstack/internal/cli"
	"github.com/julianstephens/habitstack/internal/constants"
)

type UserAddCmd struct {
	Username string `arg:"" help:"Unique username."`
}

func (c *UserAddCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Service.RegisterUser(ctx.Ctx, c.Username)
	if err != nil {
		return err
	}
	ctx.Printf("%s\n", cli.SuccessStyle.Render(fmt.Sprintf("✓ Added user %s", user.Username)))
	ctx.Printf("  ID: %s\n", user.ID)
	ctx.Printf("  Select it with --user %s or HABITSTACK_USER=%s\n", user.Username, user.Username)
	return nil
}

type UserListCmd struct {
	JSON bool `help:"Print as JSON."`
}

func (c *UserListCmd) Run(ctx *cli.Context) error {
	users, err := ctx.Service.ListUsers(ctx.Ctx)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(users)
	}
	if len(users) == 0 {
		ctx.Printf("No users yet. Add one with '%s user add'.\n", constants.AppName)
		return nil
	}
	for _, u := range users {
		ctx.Printf("  %-20s %s\n", u.Username, cli.MutedStyle.Render(u.ID))
	}
	return nil
}
