package presenter

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/soocke/fanim-go/domain/timeline"
)

type mockPlayer struct {
	playing       bool
	plays, pauses int
	err           error
}

func (p *mockPlayer) Play(context.Context) error {
	p.plays++
	p.playing = true
	return p.err
}

func (p *mockPlayer) Pause() error {
	p.pauses++
	p.playing = false
	return p.err
}

func (p *mockPlayer) Toggle(ctx context.Context) error {
	if p.playing {
		return p.Pause()
	}
	return p.Play(ctx)
}

func (p *mockPlayer) Playing() bool { return p.playing }

type gotoCall struct {
	Target  timeline.Target
	Refresh bool
}

type mockNav struct {
	gotos   []gotoCall
	replay  bool
	onion   bool
	gotoErr error
}

func (n *mockNav) Goto(t timeline.Target, refresh bool) error {
	n.gotos = append(n.gotos, gotoCall{t, refresh})
	return n.gotoErr
}

func (n *mockNav) SetReplay(b bool) error { n.replay = b; return nil }

func (n *mockNav) ToggleOnionskin() (bool, error) {
	n.onion = !n.onion
	return n.onion, nil
}

type mockErrView struct{ errs []error }

func (v *mockErrView) ShowError(err error) { v.errs = append(v.errs, err) }

func TestTransportPresenter_Navigation(t *testing.T) {
	nav := &mockNav{}
	p := NewTransportPresenter(context.Background(), &mockPlayer{}, nav, nil, discardLogger)
	p.First()
	p.Next()
	p.Prev()
	p.Last()
	p.Select(3)
	want := []gotoCall{
		{timeline.Start, true},
		{timeline.Next, true},
		{timeline.Prev, true},
		{timeline.End, true},
		{timeline.GotoIndex(3), true},
	}
	if diff := cmp.Diff(want, nav.gotos); diff != "" {
		t.Fatalf("goto calls (-want +got):\n%s", diff)
	}
}

func TestTransportPresenter_TogglePlayAndPause(t *testing.T) {
	pl := &mockPlayer{}
	p := NewTransportPresenter(nil, pl, &mockNav{}, nil, nil)
	p.TogglePlay()
	if !pl.playing || pl.plays != 1 {
		t.Fatalf("expected playing after toggle")
	}
	p.Pause()
	p.Pause()
	if pl.playing || pl.pauses != 1 {
		t.Fatalf("pause should be idempotent: pauses=%d", pl.pauses)
	}
}

func TestTransportPresenter_ErrorsReachView(t *testing.T) {
	boom := errors.New("boom")
	nav := &mockNav{gotoErr: boom}
	v := &mockErrView{}
	p := NewTransportPresenter(context.Background(), &mockPlayer{}, nav, v, discardLogger)
	p.Select(99)
	if len(v.errs) != 1 || !errors.Is(v.errs[0], boom) {
		t.Fatalf("expected error surfaced, got %v", v.errs)
	}
}

func TestTransportPresenter_ReplayAndOnionskin(t *testing.T) {
	nav := &mockNav{}
	p := NewTransportPresenter(context.Background(), &mockPlayer{}, nav, nil, discardLogger)
	p.SetReplay(true)
	p.ToggleOnionskin()
	if !nav.replay || !nav.onion {
		t.Fatalf("expected replay and onionskin on, got %+v", nav)
	}
}

func TestTransportPresenter_NilSafe(t *testing.T) {
	var p *TransportPresenter
	p.TogglePlay()
	p.Next()
	p.SetReplay(true)
	p.ToggleOnionskin()
}
