package stacks

import (
	"fmt"

	"github.com/julianstephens/habitstack/internal/cli"
)

type ExtendCmd struct {
	Stack string `arg:"" help:"Habit stack id."`
	Days  int    `help:"Days to add (7 or 14)." default:"7"`
}

func (c *ExtendCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	result, err := ctx.Service.ExtendWindow(ctx.Ctx, user.ID, c.Stack, c.Days)
	if err != nil {
		return err
	}

	ctx.Printf("%s\n", cli.SuccessStyle.Render(fmt.Sprintf("✓ Extended through %s", result.ActiveUntil)))
	ctx.Printf("  %d new day(s) added (was %s)\n", result.Created, result.PreviousEnd)
	return nil
}

type CheckInCmd struct {
	Stack string `arg:"" help:"Habit stack id."`
}

func (c *CheckInCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	result, err := ctx.Service.CheckIn(ctx.Ctx, user.ID, c.Stack)
	if err != nil {
		return err
	}

	if result.Refused {
		ctx.Printf("%s\n", cli.WarningStyle.Render("Check-in skipped: the stack already has logs for days after today."))
		return nil
	}
	if result.AlreadyCheckedIn {
		ctx.Printf("%s\n", cli.MutedStyle.Render("Already checked in today."))
	}

	t := result.Tracker
	ctx.Printf("Current streak: %d  Longest: %d  Total: %d\n", t.CurrentStreak, t.LongestStreak, t.TotalCompletions)
	if result.MilestoneMessage != "" {
		ctx.Printf("%s\n", cli.MilestoneStyle.Render("🏆 "+result.MilestoneMessage))
	}
	return nil
}
