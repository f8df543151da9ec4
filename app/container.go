package app

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/soocke/fanim-go/config"
	"github.com/soocke/fanim-go/domain/layers"
	"github.com/soocke/fanim-go/domain/timeline"
	"github.com/soocke/fanim-go/ui/model"
	"github.com/soocke/fanim-go/ui/presenter"
)

// View is the UI surface the presenters update.
type View interface {
	presenter.TimelineView
	presenter.ErrorView
	presenter.PreviewView
	presenter.StripView
	presenter.SessionView
	presenter.ConfigView
}

// Options sizes the preview and picks its background.
type Options struct {
	PreviewW, PreviewH int
	Background         color.Color
}

// Container assembles the timeline, models and presenters around a layer
// stack. It holds no Tk state, the window is built around it.
type Container struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Stack     *layers.Stack
	Navigator *timeline.Navigator
	Player    *timeline.Player

	Playback *model.PlaybackModel
	Session  *model.SessionModel
	Thumbs   *model.ThumbnailModel

	// Presenters
	TimelinePresenter  *presenter.TimelinePresenter
	SessionPresenter   *presenter.SessionPresenter
	ThumbnailPresenter *presenter.ThumbnailPresenter
	PreviewPresenter   *presenter.PreviewPresenter
	TransportPresenter *presenter.TransportPresenter
	ConfigPresenter    *presenter.ConfigPresenter
}

// BuildContainer constructs all components over stack. The navigator starts
// on the first frame with every other frame hidden.
func BuildContainer(ctx context.Context, cfg *config.Config, cfgPath string, stack *layers.Stack, view View, opts Options, logger *slog.Logger) (*Container, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Container{Config: cfg, ConfigPath: cfgPath, Logger: logger, Stack: stack}
	c.Playback = &model.PlaybackModel{}
	c.Session = model.NewSessionModel()
	c.Thumbs = model.NewThumbnailModel(stack, cfg.ThumbnailSize)

	layerList, err := stack.Layers()
	if err != nil {
		return nil, err
	}
	if err := c.Thumbs.RefreshAll(layerList); err != nil {
		logger.Warn("initial thumbnails", "error", err)
	}

	c.PreviewPresenter = presenter.NewPreviewPresenter(stack, view, opts.Background, opts.PreviewW, opts.PreviewH, logger)
	stack.OnFlush(c.PreviewPresenter.MarkDirty)

	nav, err := timeline.NewNavigator(logger.With("component", "navigator"), stack, timeline.OnionskinFromConfig(cfg), c.Thumbs)
	if err != nil {
		return nil, fmt.Errorf("open timeline: %w", err)
	}
	c.Navigator = nav
	nav.AddListener(c.Playback.Update)
	if err := nav.SetReplay(cfg.Replay); err != nil {
		nav.Close()
		return nil, err
	}

	player, err := timeline.NewPlayer(logger.With("component", "player"), nav, cfg.FramesPerSecond, cfg.FrameDelay)
	if err != nil {
		nav.Close()
		return nil, err
	}
	c.Player = player
	player.OnStop(func(err error) {
		if err != nil {
			logger.Error("playback aborted", "error", err)
			return
		}
		logger.Info("playback reached the last frame")
	})

	c.TimelinePresenter = presenter.NewTimelinePresenter(c.Playback, view)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.Playback, view)
	c.ThumbnailPresenter = presenter.NewThumbnailPresenter(c.Thumbs, view)
	c.TransportPresenter = presenter.NewTransportPresenter(ctx, player, nav, view, logger)
	c.ConfigPresenter = presenter.NewConfigPresenter(cfg, cfgPath, nav, player, logger)
	c.ConfigPresenter.SetView(view)

	// The first state is published before the listener was attached.
	if s, err := nav.State(); err == nil {
		c.Playback.Update(s)
	}
	return c, nil
}

// Loop returns the periodic UI update loop. schedule re-arms the next tick.
func (c *Container) Loop(schedule func()) *presenter.Loop {
	l := presenter.NewLoop(c.TimelinePresenter, c.SessionPresenter, c.ThumbnailPresenter, c.PreviewPresenter, schedule)
	l.Config = c.ConfigPresenter
	return l
}

// WatchConfig reloads the config file on change until ctx is done. It
// returns immediately; watcher errors are logged.
func (c *Container) WatchConfig(ctx context.Context) {
	if c.ConfigPath == "" {
		return
	}
	go func() {
		err := config.Watch(ctx, c.ConfigPath, c.Logger, c.ConfigPresenter.OnFileChange)
		if err != nil && !errors.Is(err, context.Canceled) {
			c.Logger.Error("config watch", "error", err)
		}
	}()
}

// Close stops playback and the background workers.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.Player != nil && c.Player.Playing() {
		_ = c.Player.Pause()
	}
	if c.PreviewPresenter != nil {
		c.PreviewPresenter.Close()
	}
	if c.Navigator != nil {
		c.Navigator.Close()
	}
}
