package model

import (
	"time"
)

// SessionModel tracks play sessions: the duration of the current or last one,
// the accumulated playing time and how many sessions were started.
// Presenters poll Values() and update views. The zero value is ready to use.
type SessionModel struct {
	active      bool
	playStart   time.Time
	lastSession time.Duration
	accumulated time.Duration
	sessions    int
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model from the current playing flag and timestamp.
func (m *SessionModel) OnTick(playing bool, now time.Time) {
	if m == nil {
		return
	}
	switch {
	case playing && !m.active:
		m.active = true
		m.playStart = now
		m.lastSession = 0
		m.sessions++
	case playing:
		m.lastSession = now.Sub(m.playStart)
	case m.active:
		m.lastSession = now.Sub(m.playStart)
		m.accumulated += m.lastSession
		m.active = false
	}
}

// Values returns the current session duration and the total playing time.
// The total includes the ongoing session.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	session = m.lastSession
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}

// Sessions returns the number of play sessions started.
func (m *SessionModel) Sessions() int {
	if m == nil {
		return 0
	}
	return m.sessions
}
