package presenter

import (
	"time"

	"github.com/soocke/fanim-go/ui/model"
)

// PlayingModel reports whether playback is running.
type PlayingModel interface{ Playing() bool }

// SessionView displays play session statistics.
type SessionView interface {
	SetSession(session, total time.Duration, sessions int)
}

// SessionPresenter formats play session durations from the model to the view.
type SessionPresenter struct {
	sess    *model.SessionModel
	playing PlayingModel
	view    SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, playing PlayingModel, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, playing: playing, view: view}
}

// Tick advances the session model and pushes values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.playing == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.playing.Playing(), now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t, p.sess.Sessions())
}
