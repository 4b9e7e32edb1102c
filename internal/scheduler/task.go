package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Task runs a function on a fixed period until stopped. Ticks that arrive
// while the task is paused are dropped, not queued.
type Task struct {
	name   string
	period time.Duration
	fn     func(ctx context.Context)
	clock  clock.WithTicker
	logger *slog.Logger

	mu      sync.Mutex
	paused  bool
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewTask creates a stopped task. A nil clock uses the wall clock.
func NewTask(name string, period time.Duration, fn func(ctx context.Context), clk clock.WithTicker, logger *slog.Logger) *Task {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Task{
		name:   name,
		period: period,
		fn:     fn,
		clock:  clk,
		logger: logger,
	}
}

// Start launches the loop in its own goroutine. It runs until ctx is
// cancelled or Stop is called. Starting a running task is a no-op.
func (t *Task) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	t.running = true

	// the ticker is created before Start returns so callers driving a fake
	// clock can step it immediately
	ticker := t.clock.NewTicker(t.period)
	go t.loop(ctx, ticker, t.done)

	t.logger.Info("task started", "task", t.name, "period", t.period.String())
}

func (t *Task) loop(ctx context.Context, ticker clock.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.mu.Lock()
			t.running = false
			t.mu.Unlock()
			t.logger.Info("task stopping", "task", t.name)
			return
		case <-ticker.C():
			if t.Paused() {
				continue
			}
			t.fn(ctx)
		}
	}
}

// Stop cancels the loop and waits for the current run, if any, to finish.
func (t *Task) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (t *Task) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paused = true
}

func (t *Task) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paused = false
}

func (t *Task) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

// Running reports whether the loop goroutine is alive.
func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
