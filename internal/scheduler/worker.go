// Package scheduler runs the periodic window roll-forward job.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/habitstack/internal/constants"
	"github.com/julianstephens/habitstack/internal/logger"
	"github.com/julianstephens/habitstack/internal/service"
	"github.com/julianstephens/habitstack/internal/window"
)

// Extender is the service capability the worker drives
type Extender interface {
	ExtendExpiring(ctx context.Context, within, days int) (service.RollForwardResult, error)
}

// Config controls the roll-forward job
type Config struct {
	Schedule string
	Within   int
	Days     int
	Timeout  time.Duration
}

// DefaultConfig extends windows ending within two days by a week, once a day.
func DefaultConfig() Config {
	return Config{
		Schedule: constants.DefaultWorkerSchedule,
		Within:   constants.DefaultRollForwardWithin,
		Days:     constants.DefaultExtensionDays,
		Timeout:  constants.DefaultWorkerRunTimeout,
	}
}

// Worker extends expiring habit stack windows on a cron schedule.
type Worker struct {
	svc  Extender
	cfg  Config
	cron *cron.Cron
	// job is tick wrapped so that a run still in progress makes the next one a no-op
	job cron.Job
}

// cronLogger routes cron's own messages, such as skipped runs, to the app logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	if msg == "skip" {
		logger.Warn("Skipping roll-forward run, previous run still in progress")
		return
	}
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

// NewWorker validates cfg and registers the roll-forward job.
func NewWorker(svc Extender, cfg Config) (*Worker, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = constants.DefaultWorkerSchedule
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.DefaultWorkerRunTimeout
	}
	if cfg.Within < 0 {
		return nil, fmt.Errorf("roll-forward threshold must not be negative, got %d", cfg.Within)
	}
	if err := window.ValidateLength(cfg.Days); err != nil {
		return nil, err
	}

	w := &Worker{
		svc:  svc,
		cfg:  cfg,
		cron: cron.New(cron.WithLogger(cronLogger{})),
	}
	w.job = cron.NewChain(
		cron.Recover(cronLogger{}),
		cron.SkipIfStillRunning(cronLogger{}),
	).Then(cron.FuncJob(w.tick))

	if _, err := w.cron.AddJob(cfg.Schedule, w.job); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", cfg.Schedule, err)
	}
	return w, nil
}

// Start begins running the job in the background.
func (w *Worker) Start() {
	logger.Info("Starting roll-forward worker", "schedule", w.cfg.Schedule, "within", w.cfg.Within, "days", w.cfg.Days)
	w.cron.Start()
}

// Stop halts the schedule and waits for a running job to finish.
func (w *Worker) Stop() {
	<-w.cron.Stop().Done()
	logger.Info("Roll-forward worker stopped")
}

func (w *Worker) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.Timeout)
	defer cancel()

	if _, err := w.RunOnce(ctx); err != nil {
		logger.Error("Roll-forward run failed", "error", err)
	}
}

// RunOnce performs a single roll-forward pass.
func (w *Worker) RunOnce(ctx context.Context) (service.RollForwardResult, error) {
	result, err := w.svc.ExtendExpiring(ctx, w.cfg.Within, w.cfg.Days)
	logger.Info("Roll-forward run complete",
		"checked", result.Checked,
		"extended", result.Extended,
		"skipped", result.Skipped,
		"created", result.Created,
	)
	return result, err
}
