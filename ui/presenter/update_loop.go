package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick/ProcessFrame on the sub-presenters and invokes a
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Timeline *TimelinePresenter
	Session  *SessionPresenter
	Thumbs   *ThumbnailPresenter
	Preview  *PreviewPresenter
	Config   *ConfigPresenter
	Schedule func()
}

func NewLoop(tl *TimelinePresenter, sess *SessionPresenter, thumbs *ThumbnailPresenter, preview *PreviewPresenter, schedule func()) *Loop {
	return &Loop{Timeline: tl, Session: sess, Thumbs: thumbs, Preview: preview, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Timeline != nil {
		l.Timeline.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Thumbs != nil {
		l.Thumbs.Tick()
	}
	if l.Preview != nil {
		l.Preview.ProcessFrame()
	}
	if l.Config != nil {
		l.Config.Tick()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
