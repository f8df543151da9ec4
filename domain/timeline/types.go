package timeline

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. Check with errors.Is.
var (
	ErrIndexOutOfRange = errors.New("frame index out of range")
	ErrNoFrames        = errors.New("no frames")
	ErrClosed          = errors.New("navigator closed")
)

func indexError(index, count int) error {
	return fmt.Errorf("%w: %d (frames %d)", ErrIndexOutOfRange, index, count)
}

// Layer is a host-owned visual layer. The timeline only toggles its
// visibility and opacity (0-100).
type Layer interface {
	Name() string
	Visible() bool
	SetVisible(bool) error
	Opacity() float64
	SetOpacity(float64) error
}

// Host externalizes the image editor the timeline runs inside.
type Host interface {
	// Layers returns the ordered layer snapshot taken when the timeline opens.
	Layers() ([]Layer, error)
	SetActiveLayer(Layer) error
	// Flush requests a display refresh.
	Flush() error
}

// Thumbnails regenerates the preview of a frame after it was edited.
type Thumbnails interface {
	Refresh(index int, l Layer) error
}

// Command enumerates navigation targets.
type Command int

const (
	CmdStart Command = iota
	CmdEnd
	CmdNext
	CmdPrev
	CmdGoto
	CmdRefresh
)

func (c Command) String() string {
	switch c {
	case CmdStart:
		return "start"
	case CmdEnd:
		return "end"
	case CmdNext:
		return "next"
	case CmdPrev:
		return "prev"
	case CmdGoto:
		return "goto"
	case CmdRefresh:
		return "refresh"
	default:
		return "unknown"
	}
}

// Target is a navigation request. Index is only read for CmdGoto.
type Target struct {
	Cmd   Command
	Index int
}

// Convenience targets.
var (
	Start   = Target{Cmd: CmdStart}
	End     = Target{Cmd: CmdEnd}
	Next    = Target{Cmd: CmdNext}
	Prev    = Target{Cmd: CmdPrev}
	Refresh = Target{Cmd: CmdRefresh}
)

// GotoIndex returns a target selecting frame i.
func GotoIndex(i int) Target { return Target{Cmd: CmdGoto, Index: i} }

func (t Target) String() string {
	if t.Cmd == CmdGoto {
		return fmt.Sprintf("goto(%d)", t.Index)
	}
	return t.Cmd.String()
}

// State is a snapshot of the navigator published to listeners.
type State struct {
	Active    int
	Count     int
	Playing   bool
	Replay    bool
	Onionskin Onionskin
}

// StateListener is called after every change of the navigator state. It runs
// on the navigator goroutine and must not call back into the navigator.
type StateListener func(State)

// Interface slices for consumers (presenters, clock).
type Stepper interface {
	Step() (stopped bool, err error)
}
type StateSource interface {
	State() (State, error)
}
type Mover interface {
	Goto(t Target, refreshThumbnail bool) error
}
type PlayControl interface {
	SetPlaying(bool) error
	SetReplay(bool) error
}
type OnionskinControl interface {
	SetOnionskin(Onionskin) error
	ToggleOnionskin() (bool, error)
}

// NavigatorContract aggregate for DI.
type NavigatorContract interface {
	Stepper
	StateSource
	Mover
	PlayControl
	OnionskinControl
	AddListener(StateListener)
	Close()
}
