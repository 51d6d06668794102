package stacks

import (
	"fmt"

	"github.com/julianstephens/habitstack/internal/cli"
)

type ProgressCmd struct {
	Stack string `arg:"" help:"Habit stack id."`
	JSON  bool   `help:"Print as JSON."`
}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	p, err := ctx.Service.GetProgress(ctx.Ctx, user.ID, c.Stack)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(p)
	}

	ctx.Printf("%s\n", cli.HeaderStyle.Render(fmt.Sprintf("%s → %s", p.Habit1, p.Habit2)))
	today := "not yet"
	if p.CompletedToday {
		today = cli.SuccessStyle.Render("done")
	}
	ctx.Printf("  Today:          %s\n", today)
	ctx.Printf("  Current streak: %d\n", p.CurrentStreak)
	ctx.Printf("  Longest streak: %d\n", p.LongestStreak)
	ctx.Printf("  Completions:    %d\n", p.TotalCompletions)
	ctx.Printf("  Active until:   %s\n", p.ActiveUntil)
	if len(p.Milestones) > 0 {
		ctx.Printf("  Milestones:\n")
		for _, m := range p.Milestones {
			ctx.Printf("    %s  %s\n", m.DateAchieved, cli.MilestoneStyle.Render(m.Description))
		}
	}
	return nil
}
