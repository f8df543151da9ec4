package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/fanim-go/domain/timeline"
)

// StateModel provides the latest navigator state and its version.
type StateModel interface {
	State() (timeline.State, uint64)
}

// TimelineView reflects navigator state in the transport bar and strip.
type TimelineView interface {
	SetStatus(text string)
	SetPlaying(playing bool)
	SetReplay(replay bool)
	SetOnionskin(enabled bool)
	HighlightFrame(index int)
	ConfigEditable(bool)
}

// TimelinePresenter polls the playback model on each tick and updates the
// view when a newer state was published.
type TimelinePresenter struct {
	model   StateModel
	view    TimelineView
	version uint64
	latest  timeline.State
	primed  bool
}

func NewTimelinePresenter(model StateModel, view TimelineView) *TimelinePresenter {
	return &TimelinePresenter{model: model, view: view}
}

// Latest returns the state last pushed to the view.
func (p *TimelinePresenter) Latest() timeline.State {
	if p == nil {
		return timeline.State{}
	}
	return p.latest
}

// Tick reflects the newest state, touching only the widgets that changed.
func (p *TimelinePresenter) Tick(now time.Time) {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	s, v := p.model.State()
	if v == p.version {
		return
	}
	p.version = v
	prev := p.latest
	p.latest = s
	first := !p.primed
	p.primed = true

	if first || s.Active != prev.Active || s.Count != prev.Count || s.Playing != prev.Playing {
		p.view.SetStatus(StatusText(s))
	}
	if first || s.Active != prev.Active {
		p.view.HighlightFrame(s.Active)
	}
	if first || s.Playing != prev.Playing {
		p.view.SetPlaying(s.Playing)
		p.view.ConfigEditable(!s.Playing)
	}
	if first || s.Replay != prev.Replay {
		p.view.SetReplay(s.Replay)
	}
	if first || s.Onionskin.Enabled != prev.Onionskin.Enabled {
		p.view.SetOnionskin(s.Onionskin.Enabled)
	}
}

// StatusText renders s for the status label, frames counted from 1.
func StatusText(s timeline.State) string {
	if s.Count == 0 {
		return "No frames"
	}
	mode := "Paused"
	if s.Playing {
		mode = "Playing"
	}
	return fmt.Sprintf("%s: frame %d / %d", mode, s.Active+1, s.Count)
}
