package stacks

import (
	"fmt"

	"github.com/julianstephens/habitstack/internal/cli"
	apperrors "github.com/julianstephens/habitstack/internal/errors"
	"github.com/julianstephens/habitstack/internal/utils"
)

type LogListCmd struct {
	Stack string `arg:"" help:"Habit stack id."`
	JSON  bool   `help:"Print as JSON."`
}

func (c *LogListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	logs, err := ctx.Service.ListLogs(ctx.Ctx, user.ID, c.Stack)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(logs)
	}

	today := utils.Today(ctx.Clock)
	for _, l := range logs {
		mark := "[ ]"
		if l.Completed {
			mark = cli.SuccessStyle.Render("[✓]")
		}
		line := fmt.Sprintf("%s %s", mark, l.Day)
		if l.Day == today {
			line += " " + cli.HeaderStyle.Render("today")
		}
		if l.StreakMessage != "" {
			line += "  " + cli.MutedStyle.Render(l.StreakMessage)
		}
		ctx.Printf("  %s\n", line)
	}
	return nil
}

type LogMarkCmd struct {
	Stack string `arg:"" help:"Habit stack id."`
	Day   string `help:"Day to mark (YYYY-MM-DD). Defaults to today."`
	Undo  bool   `help:"Mark the day as not completed."`
	JSON  bool   `help:"Print the result as JSON."`
}

func (c *LogMarkCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	day := c.Day
	if day == "" {
		day = utils.Today(ctx.Clock)
	}
	if _, err := utils.ParseDay(day); err != nil {
		return apperrors.Validationf("invalid day %q: use YYYY-MM-DD", day)
	}

	logs, err := ctx.Service.ListLogs(ctx.Ctx, user.ID, c.Stack)
	if err != nil {
		return err
	}
	logID := ""
	for _, l := range logs {
		if l.Day == day {
			logID = l.ID
			break
		}
	}
	if logID == "" {
		return apperrors.Validationf("no log for %s, extend the stack's window first", day)
	}

	result, err := ctx.Service.ToggleLogCompletion(ctx.Ctx, user.ID, logID, !c.Undo)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(result)
	}

	if c.Undo {
		ctx.Printf("Marked %s as not done. Current streak: %d\n", day, result.CurrentStreak)
	} else {
		ctx.Printf("%s\n", cli.SuccessStyle.Render(fmt.Sprintf("✓ Marked %s as done", day)))
	}
	if result.StreakMessage != "" {
		ctx.Printf("  %s\n", result.StreakMessage)
	}
	if result.MilestoneMessage != "" {
		ctx.Printf("  %s\n", cli.MilestoneStyle.Render("🏆 "+result.MilestoneMessage))
	}
	return nil
}
