package system

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/habitstack/internal/cli"
	"github.com/julianstephens/habitstack/internal/constants"
	"github.com/julianstephens/habitstack/internal/scheduler"
)

// WorkerCmd keeps habit stack windows open by extending the ones about to run out.
type WorkerCmd struct {
	Schedule string        `help:"Cron schedule for the roll-forward job." default:"${worker_schedule}"`
	Within   int           `help:"Extend stacks whose window ends fewer than this many days after today." default:"${roll_forward_within}"`
	Days     int           `help:"Days to extend by (7 or 14)." default:"${extension_days}"`
	Timeout  time.Duration `help:"Timeout for one run." default:"2m"`
	Once     bool          `help:"Run a single pass and exit."`
}

func (c *WorkerCmd) config() scheduler.Config {
	return scheduler.Config{
		Schedule: c.Schedule,
		Within:   c.Within,
		Days:     c.Days,
		Timeout:  c.Timeout,
	}
}

func (c *WorkerCmd) Run(ctx *cli.Context) error {
	w, err := scheduler.NewWorker(ctx.Service, c.config())
	if err != nil {
		return err
	}

	if c.Once {
		result, err := w.RunOnce(ctx.Ctx)
		ctx.Printf("Checked %d stack(s), extended %d, added %d day(s)\n", result.Checked, result.Extended, result.Created)
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w.Start()
	ctx.Printf("%s worker running on %q, press Ctrl+C to stop\n", constants.AppName, c.Schedule)
	<-sigCtx.Done()
	w.Stop()
	return nil
}
