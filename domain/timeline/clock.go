package timeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ErrClockStarted is returned when a Clock is started twice. Clocks are
// single-use; create a new one per play session.
var ErrClockStarted = errors.New("clock already started")

// Interval returns the wait between playback steps: one frame period plus
// the extra delay, both in seconds.
func Interval(fps, delay float64) (time.Duration, error) {
	if fps <= 0 {
		return 0, fmt.Errorf("frames per second must be positive: %v", fps)
	}
	if delay < 0 {
		return 0, fmt.Errorf("frame delay must not be negative: %v", delay)
	}
	return time.Duration((1/fps + delay) * float64(time.Second)), nil
}

// Clock drives a Stepper at a fixed interval on its own goroutine. It is
// created per play session and never reused.
type Clock struct {
	id       uuid.UUID
	logger   *slog.Logger
	stepper  Stepper
	interval time.Duration
	onStop   func(error)

	started atomic.Bool
	running atomic.Bool
	steps   atomic.Uint64
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewClock returns a stopped clock. onStop is called from the clock
// goroutine when playback ends by itself: with nil when the stepper reports
// it stopped, or with the step error. It is not called after Stop.
func NewClock(logger *slog.Logger, stepper Stepper, fps, delay float64, onStop func(error)) (*Clock, error) {
	interval, err := Interval(fps, delay)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	id := uuid.New()
	return &Clock{
		id:       id,
		logger:   logger.With("session", id.String()),
		stepper:  stepper,
		interval: interval,
		onStop:   onStop,
		done:     make(chan struct{}),
	}, nil
}

// ID identifies the play session in logs.
func (c *Clock) ID() string { return c.id.String() }

// Interval returns the wait between steps.
func (c *Clock) Interval() time.Duration { return c.interval }

// Steps returns the number of steps issued so far.
func (c *Clock) Steps() uint64 { return c.steps.Load() }

// Running reports whether the loop is active.
func (c *Clock) Running() bool { return c.running.Load() }

// Start launches the loop. Cancelling ctx stops it like Stop.
func (c *Clock) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrClockStarted
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.running.Store(true)
	c.logger.Info("playback started", "interval", c.interval)
	go c.loop(ctx)
	return nil
}

// Stop cancels the loop. A step already in flight completes; no further
// step is issued. Stop does not wait; use Wait for that.
func (c *Clock) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Wait blocks until the loop has exited. It returns immediately for a clock
// that was never started.
func (c *Clock) Wait() {
	if !c.started.Load() {
		return
	}
	<-c.done
}

func (c *Clock) loop(ctx context.Context) {
	var (
		ended bool
		err   error
	)
	defer close(c.done)
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("playback clock panic", "error", r, "stack", string(debug.Stack()))
			ended, err = true, fmt.Errorf("playback clock panic: %v", r)
		}
		c.running.Store(false)
		c.logger.Info("playback ended", "steps", c.steps.Load(), "self_stopped", ended)
		if ended && c.onStop != nil {
			c.onStop(err)
		}
	}()

	timer := time.NewTimer(c.interval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		if ctx.Err() != nil {
			return
		}
		stopped, serr := c.stepper.Step()
		c.steps.Add(1)
		if serr != nil {
			c.logger.Error("playback step failed", "error", serr)
			ended, err = true, serr
			return
		}
		if stopped {
			ended = true
			return
		}
		timer.Reset(c.interval)
	}
}
