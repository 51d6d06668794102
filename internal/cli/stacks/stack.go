package stacks

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitstack/internal/cli"
	"github.com/julianstephens/habitstack/internal/constants"
	"github.com/julianstephens/habitstack/internal/models"
)

// HabitFlags selects each slot either from the catalog or as free text.
type HabitFlags struct {
	Habit1     string `help:"Catalog id of the first habit." xor:"habit1"`
	Habit1Text string `help:"Free-text first habit." name:"habit1-text" xor:"habit1"`
	Habit2     string `help:"Catalog id of the second habit." xor:"habit2"`
	Habit2Text string `help:"Free-text second habit." name:"habit2-text" xor:"habit2"`
	Goal       string `help:"Goal mode: DAILY or NO_GOAL." enum:"DAILY,NO_GOAL" default:"DAILY"`
}

func (f HabitFlags) input() models.HabitStackInput {
	return models.HabitStackInput{
		Habit1: models.HabitDescriptor{PredefinedID: f.Habit1, Custom: f.Habit1Text},
		Habit2: models.HabitDescriptor{PredefinedID: f.Habit2, Custom: f.Habit2Text},
		Goal:   constants.Goal(f.Goal),
	}
}

type StackAddCmd struct {
	HabitFlags `embed:""`
}

func (c *StackAddCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	stack, err := ctx.Service.CreateHabitStack(ctx.Ctx, user.ID, c.input())
	if err != nil {
		return err
	}

	ctx.Printf("%s\n", cli.SuccessStyle.Render(fmt.Sprintf("✓ Created habit stack %s", stack.ID)))
	ctx.Printf("  %s\n", describe(stack))
	ctx.Printf("  Logging open through %s\n", stack.ActiveUntil)
	return nil
}

type StackListCmd struct {
	JSON bool `help:"Print as JSON."`
}

func (c *StackListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	stacks, err := ctx.Service.ListHabitStacks(ctx.Ctx, user.ID)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(stacks)
	}

	if len(stacks) == 0 {
		ctx.Printf("No habit stacks yet. Add one with '%s stack add'.\n", constants.AppName)
		return nil
	}

	ctx.Printf("%s\n", cli.HeaderStyle.Render(fmt.Sprintf("Habit stacks for %s", user.Username)))
	for _, s := range stacks {
		ctx.Printf("  %s  %s  %s\n", s.ID, describe(s), cli.MutedStyle.Render("until "+s.ActiveUntil))
	}
	return nil
}

type StackShowCmd struct {
	ID   string `arg:"" help:"Habit stack id."`
	JSON bool   `help:"Print as JSON."`
}

func (c *StackShowCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	stack, err := ctx.Service.GetHabitStack(ctx.Ctx, user.ID, c.ID)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(stack)
	}

	ctx.Printf("%s\n", cli.HeaderStyle.Render(describe(stack)))
	ctx.Printf("  ID:           %s\n", stack.ID)
	ctx.Printf("  Goal:         %s\n", stack.Goal)
	ctx.Printf("  Created:      %s\n", stack.CreatedAt.Format(constants.DateFormat))
	ctx.Printf("  Active until: %s\n", stack.ActiveUntil)
	return nil
}

type StackEditCmd struct {
	ID string `arg:"" help:"Habit stack id."`
	HabitFlags `embed:""`
}

func (c *StackEditCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	stack, err := ctx.Service.UpdateHabitStack(ctx.Ctx, user.ID, c.ID, c.input())
	if err != nil {
		return err
	}

	ctx.Printf("%s\n", cli.SuccessStyle.Render("✓ Updated habit stack"))
	ctx.Printf("  %s\n", describe(stack))
	return nil
}

type StackDeleteCmd struct {
	ID string `arg:"" help:"Habit stack id."`
}

func (c *StackDeleteCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Service.DeleteHabitStack(ctx.Ctx, user.ID, c.ID); err != nil {
		return err
	}
	ctx.Printf("%s\n", cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted habit stack %s and its logs", c.ID)))
	return nil
}

func describe(s models.HabitStack) string {
	var b strings.Builder
	b.WriteString(s.Habit1Name)
	b.WriteString(" → ")
	b.WriteString(s.Habit2Name)
	if s.Goal == constants.GoalNoGoal {
		b.WriteString(" (no goal)")
	}
	return b.String()
}
