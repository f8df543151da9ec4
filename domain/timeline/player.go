package timeline

import (
	"context"
	"log/slog"
	"sync"
)

// PlayNavigator is the navigator surface a Player drives.
type PlayNavigator interface {
	Stepper
	StateSource
	Mover
	PlayControl
}

// Player owns at most one playback Clock at a time and keeps the navigator's
// playing flag in step with it.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger
	nav    PlayNavigator
	fps    float64
	delay  float64
	clock  *Clock
	onStop func(error)
}

// NewPlayer returns a paused player.
func NewPlayer(logger *slog.Logger, nav PlayNavigator, fps, delay float64) (*Player, error) {
	if _, err := Interval(fps, delay); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Player{logger: logger, nav: nav, fps: fps, delay: delay}, nil
}

// OnStop registers fn to be called when playback ends by itself (last frame
// reached without replay, or a step error). It runs on the clock goroutine.
func (p *Player) OnStop(fn func(error)) {
	p.mu.Lock()
	p.onStop = fn
	p.mu.Unlock()
}

// SetRate changes the playback rate. It applies from the next Play.
func (p *Player) SetRate(fps, delay float64) error {
	if _, err := Interval(fps, delay); err != nil {
		return err
	}
	p.mu.Lock()
	p.fps, p.delay = fps, delay
	p.mu.Unlock()
	return nil
}

// Playing reports whether a clock is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clock != nil && p.clock.Running()
}

// Play starts a new play session. It is a no-op while already playing.
// Without replay a session started on the last frame rewinds to the first.
func (p *Player) Play(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.clock != nil && p.clock.Running() {
		return nil
	}
	s, err := p.nav.State()
	if err != nil {
		return err
	}
	if !s.Replay && s.Count > 1 && s.Active == s.Count-1 {
		if err := p.nav.Goto(Start, false); err != nil {
			return err
		}
	}
	if err := p.nav.SetPlaying(true); err != nil {
		return err
	}
	var c *Clock
	c, err = NewClock(p.logger, p.nav, p.fps, p.delay, func(err error) { p.finished(c, err) })
	if err != nil {
		_ = p.nav.SetPlaying(false)
		return err
	}
	p.clock = c
	return c.Start(ctx)
}

// Pause stops the running session and waits for its clock to exit.
func (p *Player) Pause() error {
	p.mu.Lock()
	c := p.clock
	p.clock = nil
	p.mu.Unlock()
	if c != nil {
		c.Stop()
		c.Wait()
	}
	return p.nav.SetPlaying(false)
}

// Toggle flips between Play and Pause.
func (p *Player) Toggle(ctx context.Context) error {
	if p.Playing() {
		return p.Pause()
	}
	return p.Play(ctx)
}

func (p *Player) finished(c *Clock, err error) {
	p.mu.Lock()
	current := p.clock == c
	if current {
		p.clock = nil
	}
	fn := p.onStop
	p.mu.Unlock()
	if err != nil {
		p.logger.Error("playback stopped on error", "error", err)
		// A failed step leaves the navigator flagged as playing.
		if current {
			if perr := p.nav.SetPlaying(false); perr != nil {
				p.logger.Warn("reset playing state", "error", perr)
			}
		}
	}
	if fn != nil {
		fn(err)
	}
}
