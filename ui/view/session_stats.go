package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows play session duration, total playing time and the
// number of sessions.
type SessionStats interface {
	SetSession(session, total time.Duration, sessions int)
}

type sessionStats struct {
	sessionLbl *LabelWidget
	totalLbl   *LabelWidget
	countLbl   *LabelWidget
}

// NewSessionStats grids three labels into parent starting at (row, startCol).
func NewSessionStats(parent *FrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{sessionLbl: Label(Width(14)), totalLbl: Label(Width(14)), countLbl: Label(Width(12))}
	for i, l := range []*LabelWidget{s.sessionLbl, s.totalLbl, s.countLbl} {
		if parent != nil {
			Grid(l, In(parent), Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
		} else {
			Grid(l, Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
		}
	}
	s.SetSession(0, 0, 0)
	return s
}

func (s *sessionStats) SetSession(session, total time.Duration, sessions int) {
	if s == nil {
		return
	}
	s.sessionLbl.Configure(Txt("Session: " + clock(session)))
	s.totalLbl.Configure(Txt("Total: " + clock(total)))
	s.countLbl.Configure(Txt(fmt.Sprintf("Plays: %d", sessions)))
}

func clock(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
