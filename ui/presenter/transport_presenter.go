package presenter

import (
	"context"
	"log/slog"

	"github.com/soocke/fanim-go/domain/timeline"
)

// PlayerControl narrows the player used by the transport bar.
type PlayerControl interface {
	Play(ctx context.Context) error
	Pause() error
	Toggle(ctx context.Context) error
	Playing() bool
}

// FrameNavigator narrows the navigator used by the transport bar.
type FrameNavigator interface {
	timeline.Mover
	SetReplay(bool) error
	ToggleOnionskin() (bool, error)
}

// ErrorView surfaces a failed user action.
type ErrorView interface {
	ShowError(err error)
}

// TransportPresenter turns transport bar and frame strip clicks into
// navigator and player calls.
type TransportPresenter struct {
	ctx    context.Context
	player PlayerControl
	nav    FrameNavigator
	view   ErrorView
	logger *slog.Logger
}

func NewTransportPresenter(ctx context.Context, player PlayerControl, nav FrameNavigator, view ErrorView, logger *slog.Logger) *TransportPresenter {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TransportPresenter{ctx: ctx, player: player, nav: nav, view: view, logger: logger}
}

func (p *TransportPresenter) fail(action string, err error) {
	if err == nil {
		return
	}
	p.logger.Error("transport", "action", action, "error", err)
	if p.view != nil {
		p.view.ShowError(err)
	}
}

// TogglePlay starts or pauses playback.
func (p *TransportPresenter) TogglePlay() {
	if p == nil || p.player == nil {
		return
	}
	p.fail("toggle play", p.player.Toggle(p.ctx))
}

// Pause stops playback. Idempotent.
func (p *TransportPresenter) Pause() {
	if p == nil || p.player == nil || !p.player.Playing() {
		return
	}
	p.fail("pause", p.player.Pause())
}

// Go moves to t. The frame being left gets its thumbnail refreshed since the
// user may have edited it.
func (p *TransportPresenter) Go(t timeline.Target) {
	if p == nil || p.nav == nil {
		return
	}
	p.fail(t.String(), p.nav.Goto(t, true))
}

func (p *TransportPresenter) First()           { p.Go(timeline.Start) }
func (p *TransportPresenter) Last()            { p.Go(timeline.End) }
func (p *TransportPresenter) Next()            { p.Go(timeline.Next) }
func (p *TransportPresenter) Prev()            { p.Go(timeline.Prev) }
func (p *TransportPresenter) Select(index int) { p.Go(timeline.GotoIndex(index)) }

// SetReplay switches looping.
func (p *TransportPresenter) SetReplay(replay bool) {
	if p == nil || p.nav == nil {
		return
	}
	p.fail("replay", p.nav.SetReplay(replay))
}

// ToggleOnionskin flips the onionskin display.
func (p *TransportPresenter) ToggleOnionskin() {
	if p == nil || p.nav == nil {
		return
	}
	_, err := p.nav.ToggleOnionskin()
	p.fail("onionskin", err)
}
