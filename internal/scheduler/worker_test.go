package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitstack/internal/constants"
	"github.com/julianstephens/habitstack/internal/service"
)

type fakeExtender struct {
	calls  int
	within int
	days   int
	result service.RollForwardResult
	err    error
}

func (f *fakeExtender) ExtendExpiring(_ context.Context, within, days int) (service.RollForwardResult, error) {
	f.calls++
	f.within = within
	f.days = days
	return f.result, f.err
}

func TestNewWorker_Defaults(t *testing.T) {
	w, err := NewWorker(&fakeExtender{}, Config{Days: 7})
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultWorkerSchedule, w.cfg.Schedule)
	assert.Equal(t, constants.DefaultWorkerRunTimeout, w.cfg.Timeout)
}

func TestNewWorker_Invalid(t *testing.T) {
	tests := map[string]Config{
		"bad schedule":    {Schedule: "not a schedule", Days: 7},
		"bad length":      {Schedule: "@daily", Days: 10},
		"negative within": {Schedule: "@daily", Days: 7, Within: -1},
		"zero length":     {Schedule: "@daily"},
	}

	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewWorker(&fakeExtender{}, cfg)
			assert.Error(t, err)
		})
	}
}

func TestRunOnce(t *testing.T) {
	fake := &fakeExtender{result: service.RollForwardResult{Checked: 3, Extended: 2, Created: 14}}
	w, err := NewWorker(fake, DefaultConfig())
	require.NoError(t, err)

	result, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, constants.DefaultRollForwardWithin, fake.within)
	assert.Equal(t, constants.DefaultExtensionDays, fake.days)
	assert.Equal(t, 14, result.Created)
}

func TestRunOnce_PropagatesError(t *testing.T) {
	fake := &fakeExtender{err: errors.New("boom")}
	w, err := NewWorker(fake, DefaultConfig())
	require.NoError(t, err)

	_, err = w.RunOnce(context.Background())
	assert.EqualError(t, err, "boom")
}

// blockingExtender holds each ExtendExpiring call until release is closed.
type blockingExtender struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (b *blockingExtender) ExtendExpiring(context.Context, int, int) (service.RollForwardResult, error) {
	b.calls.Add(1)
	b.started <- struct{}{}
	<-b.release
	return service.RollForwardResult{}, nil
}

func TestJob_SkipsWhileRunning(t *testing.T) {
	ext := &blockingExtender{started: make(chan struct{}, 1), release: make(chan struct{})}
	w, err := NewWorker(ext, DefaultConfig())
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.job.Run()
	}()
	<-ext.started

	// The first run is still blocked, so this one returns without calling the service
	w.job.Run()
	assert.Equal(t, int32(1), ext.calls.Load())

	close(ext.release)
	wg.Wait()

	w.job.Run()
	<-ext.started
	assert.Equal(t, int32(2), ext.calls.Load())
}

func TestStartStop(t *testing.T) {
	w, err := NewWorker(&fakeExtender{}, DefaultConfig())
	require.NoError(t, err)
	w.Start()
	w.Stop()
}
