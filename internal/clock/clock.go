// Package clock formats the time-of-day shown in the footer and drives the
// periodic tick that keeps it current.
package clock

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Layout is the footer clock layout: 24-hour, zero-padded HH:MM.
const Layout = "15:04"

// Interval bounds. The clock must refresh at least once a second.
const (
	DefaultInterval = time.Second
	MinInterval     = 100 * time.Millisecond
	MaxInterval     = time.Second
)

// Format returns t as HH:MM in t's location.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Ticker calls a post function on every tick from its own goroutine.
// It never waits on the receiver beyond the post call itself, so post
// must hand the tick off (e.g. tea.Program.Send) rather than do work.
type Ticker struct {
	mu       sync.Mutex
	logger   *slog.Logger
	interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// NewTicker creates a ticker with the given interval, clamped to
// [MinInterval, MaxInterval]. A zero interval means DefaultInterval.
func NewTicker(interval time.Duration, logger *slog.Logger) *Ticker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ticker{
		logger:   logger,
		interval: ClampInterval(interval),
	}
}

// ClampInterval maps an arbitrary duration onto the supported range.
func ClampInterval(d time.Duration) time.Duration {
	switch {
	case d == 0:
		return DefaultInterval
	case d < MinInterval:
		return MinInterval
	case d > MaxInterval:
		return MaxInterval
	}
	return d
}

// Interval returns the tick period.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Start begins ticking. Calling Start on a running ticker is a no-op.
func (t *Ticker) Start(ctx context.Context, post func(time.Time)) {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return
	}
	t.running = true
	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	t.mu.Unlock()

	go t.loop(ctx, post)

	t.logger.Debug("clock ticker started", "interval", t.interval)
}

// Stop halts the ticker and waits for its goroutine to exit.
func (t *Ticker) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	close(t.stopCh)
	doneCh := t.doneCh
	t.mu.Unlock()

	<-doneCh
	t.logger.Debug("clock ticker stopped")
}

func (t *Ticker) isRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Ticker) loop(ctx context.Context, post func(time.Time)) {
	defer close(t.doneCh)

	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			t.mu.Lock()
			t.running = false
			t.mu.Unlock()
			return
		case <-t.stopCh:
			return
		case now := <-tk.C:
			post(now)
		}
	}
}
