package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/fanim-go/app"
	"github.com/soocke/fanim-go/config"
	"github.com/soocke/fanim-go/domain/layers"
	"github.com/soocke/fanim-go/ui/images"
	"github.com/soocke/fanim-go/ui/presenter"
	"github.com/soocke/fanim-go/ui/theme"
	"github.com/soocke/fanim-go/ui/view"
)

// tick is the UI refresh period. Playback runs on its own clock; the tick
// only moves published state into widgets.
const tick = 40 * time.Millisecond

// runWindow builds the Tk window around stack and blocks until it closes.
func runWindow(ctx context.Context, cfg *config.Config, cfgPath string, stack *layers.Stack, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	theme.InitStyles()
	bg, err := images.ParseHex(theme.Current().Canvas)
	if err != nil {
		return err
	}

	rv := view.NewRootView(stack.Len(), cfg.ThumbnailSize, logger)
	c, err := app.BuildContainer(ctx, cfg, cfgPath, stack, rv, app.Options{
		PreviewW:   view.MaxPreviewW,
		PreviewH:   view.MaxPreviewH,
		Background: bg,
	}, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	var (
		afterID string
		closed  bool
	)
	exit := func() {
		if closed {
			return
		}
		closed = true
		if afterID != "" {
			TclAfterCancel(afterID)
		}
		c.TransportPresenter.Pause()
		Destroy(App)
	}
	tp := c.TransportPresenter
	rv.Build(view.Handlers{
		First:           tp.First,
		Prev:            tp.Prev,
		TogglePlay:      tp.TogglePlay,
		Next:            tp.Next,
		Last:            tp.Last,
		Replay:          tp.SetReplay,
		ToggleOnionskin: tp.ToggleOnionskin,
		Select:          tp.Select,
		ApplyConfig:     c.ConfigPresenter.ApplyAndSave,
		CurrentConfig:   c.ConfigPresenter.Config,
		ToggleTheme: func() {
			theme.ToggleDark()
			if col, err := images.ParseHex(theme.Current().Canvas); err == nil {
				c.PreviewPresenter.SetBackground(col)
			}
		},
		Exit: exit,
	})

	App.WmTitle(fmt.Sprintf("fanim - %s (%d frames)", stack.Name(), stack.Len()))
	WmProtocol(App, "WM_DELETE_WINDOW", exit)
	WmGeometry(App, "1000x720+100+100")

	c.WatchConfig(ctx)

	var loop *presenter.Loop
	schedule := func() {
		if ctx.Err() != nil {
			// interrupted
			exit()
			return
		}
		// Widgets are only touched from Tk callbacks.
		afterID = TclAfter(tick, func() { loop.Tick() })
	}
	loop = c.Loop(schedule)
	schedule()

	App.Wait()
	return nil
}
