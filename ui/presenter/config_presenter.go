package presenter

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/soocke/fanim-go/config"
	"github.com/soocke/fanim-go/domain/timeline"
)

// OnionskinTarget receives onionskin and loop settings.
type OnionskinTarget interface {
	SetOnionskin(timeline.Onionskin) error
	SetReplay(bool) error
}

// RateTarget receives the playback rate.
type RateTarget interface {
	SetRate(fps, delay float64) error
}

// ConfigView shows the active configuration.
type ConfigView interface {
	RefreshConfig(cfg config.Config)
}

// ConfigPresenter pushes configuration into the running timeline. It is fed
// by the config panel and by the file watcher, so Apply may be called from
// any goroutine.
type ConfigPresenter struct {
	mu       sync.Mutex
	cfg      *config.Config
	path     string
	nav      OnionskinTarget
	rate     RateTarget
	logger   *slog.Logger
	view     ConfigView
	reloaded atomic.Bool
}

func NewConfigPresenter(cfg *config.Config, path string, nav OnionskinTarget, rate RateTarget, logger *slog.Logger) *ConfigPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ConfigPresenter{cfg: cfg, path: path, nav: nav, rate: rate, logger: logger}
}

// Config returns a copy of the active configuration.
func (p *ConfigPresenter) Config() config.Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return *p.cfg
}

// Apply validates next and pushes it to the navigator and player. The new
// rate takes effect from the next play session.
func (p *ConfigPresenter) Apply(next config.Config) error {
	if err := next.Validate(); err != nil {
		return err
	}
	var errs []error
	if p.nav != nil {
		errs = append(errs, p.nav.SetOnionskin(timeline.OnionskinFromConfig(&next)))
		errs = append(errs, p.nav.SetReplay(next.Replay))
	}
	if p.rate != nil {
		errs = append(errs, p.rate.SetRate(next.FramesPerSecond, next.FrameDelay))
	}
	p.mu.Lock()
	*p.cfg = next
	p.mu.Unlock()
	if err := errors.Join(errs...); err != nil {
		p.logger.Error("config apply", "error", err)
		return err
	}
	p.logger.Info("config applied", "fps", next.FramesPerSecond, "onionskin", next.OnionskinEnabled, "replay", next.Replay)
	return nil
}

// ApplyAndSave applies next and persists it to the config path.
func (p *ConfigPresenter) ApplyAndSave(next config.Config) error {
	if err := p.Apply(next); err != nil {
		return err
	}
	if p.path == "" {
		return nil
	}
	cfg := p.Config()
	if err := cfg.Save(p.path); err != nil {
		p.logger.Error("config save failed", "error", err)
		return err
	}
	p.logger.Info("config saved", "path", p.path)
	return nil
}

// SetView sets the form refreshed after file reloads.
func (p *ConfigPresenter) SetView(v ConfigView) { p.view = v }

// OnFileChange is a config.Watch callback. It runs on the watcher goroutine;
// the form is refreshed on the next Tick.
func (p *ConfigPresenter) OnFileChange(cfg *config.Config, err error) {
	if err != nil {
		p.logger.Warn("config reload failed", "error", err)
		return
	}
	if p.Apply(*cfg) == nil {
		p.reloaded.Store(true)
	}
}

// Tick refreshes the view after a file reload.
func (p *ConfigPresenter) Tick() {
	if p == nil || !p.reloaded.Swap(false) || p.view == nil {
		return
	}
	p.view.RefreshConfig(p.Config())
}
