package timeline

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// Navigator is the frame navigation state machine. It owns the FrameStore,
// the onionskin settings and the play/replay flags. All of them are only
// touched by the event loop goroutine; public methods post a request and
// wait for its reply, so UI callbacks and the playback clock never race.
type Navigator struct {
	logger    *slog.Logger
	host      Host
	thumbs    Thumbnails
	store     *FrameStore
	onion     Onionskin
	playing   bool
	replay    bool
	listeners []StateListener

	events    chan interface{}
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// requests
type (
	reqGoto struct {
		target  Target
		refresh bool
		reply   chan error
	}
	reqStep    struct{ reply chan stepResult }
	reqPlaying struct {
		playing bool
		reply   chan error
	}
	reqReplay struct {
		replay bool
		reply  chan error
	}
	reqOnionskin struct {
		onion Onionskin
		reply chan error
	}
	reqToggleOnionskin struct{ reply chan toggleResult }
	reqState           struct{ reply chan State }
	reqAddListener     struct {
		l     StateListener
		reply chan struct{}
	}
)

type stepResult struct {
	stopped bool
	err     error
}

type toggleResult struct {
	enabled bool
	err     error
}

// NewNavigator snapshots the host layers, hides them all and shows the first
// frame. thumbs may be nil. It fails with ErrNoFrames when the host has no
// layers.
func NewNavigator(logger *slog.Logger, host Host, onion Onionskin, thumbs Thumbnails) (*Navigator, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	layers, err := host.Layers()
	if err != nil {
		return nil, fmt.Errorf("snapshot layers: %w", err)
	}
	if len(layers) == 0 {
		return nil, ErrNoFrames
	}
	if onion.Depth < 0 {
		onion.Depth = 0
	}
	n := &Navigator{
		logger: logger,
		host:   host,
		thumbs: thumbs,
		store:  NewFrameStore(layers),
		onion:  onion,
		events: make(chan interface{}, 16),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for i := range layers {
		if err := n.store.SetVisible(i, false); err != nil {
			return nil, err
		}
		if err := n.store.SetOpacity(i, fullOpacity); err != nil {
			return nil, err
		}
	}
	go n.run()
	if err := n.Goto(Start, false); err != nil {
		n.Close()
		return nil, err
	}
	return n, nil
}

func (n *Navigator) run() {
	defer close(n.done)
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("navigator panic", "error", r, "stack", string(debug.Stack()))
		}
	}()
	for {
		select {
		case <-n.quit:
			return
		case ev := <-n.events:
			n.handle(ev)
		}
	}
}

func (n *Navigator) handle(ev interface{}) {
	switch e := ev.(type) {
	case reqGoto:
		err := n.move(e.target, e.refresh)
		if err == nil {
			n.notify()
		}
		e.reply <- err
	case reqStep:
		stopped, err := n.step()
		e.reply <- stepResult{stopped: stopped, err: err}
	case reqPlaying:
		e.reply <- n.setPlaying(e.playing)
	case reqReplay:
		if n.replay != e.replay {
			n.replay = e.replay
			n.notify()
		}
		e.reply <- nil
	case reqOnionskin:
		e.reply <- n.setOnionskin(e.onion)
	case reqToggleOnionskin:
		o := n.onion
		o.Enabled = !o.Enabled
		err := n.setOnionskin(o)
		e.reply <- toggleResult{enabled: n.onion.Enabled, err: err}
	case reqState:
		e.reply <- n.snapshot()
	case reqAddListener:
		n.listeners = append(n.listeners, e.l)
		e.reply <- struct{}{}
	}
}

// move hides the current display, resolves t into a new active index and
// reveals it. An invalid GOTO fails before anything is touched.
func (n *Navigator) move(t Target, refresh bool) error {
	count := n.store.Len()
	prev := n.store.Active()
	next := prev
	switch t.Cmd {
	case CmdStart:
		next = 0
	case CmdEnd:
		next = count - 1
	case CmdNext:
		next = (prev + 1) % count
	case CmdPrev:
		next = (prev - 1 + count) % count
	case CmdGoto:
		if t.Index < 0 || t.Index >= count {
			return indexError(t.Index, count)
		}
		next = t.Index
	case CmdRefresh:
	default:
		return fmt.Errorf("unknown navigation command %d", int(t.Cmd))
	}

	if err := n.onion.Apply(n.store, prev, false, n.playing); err != nil {
		return err
	}
	if refresh && n.thumbs != nil {
		f, _ := n.store.Frame(prev)
		if err := n.thumbs.Refresh(prev, f.Layer); err != nil {
			n.logger.Warn("thumbnail refresh failed", "frame", prev, "error", err)
		}
	}
	_ = n.store.Select(prev, false)
	_ = n.store.SetActive(next)
	_ = n.store.Select(next, true)
	if err := n.show(); err != nil {
		return err
	}
	n.logger.Debug("frame navigation", "cmd", t.String(), "from", prev, "to", next)
	return nil
}

// show reveals the active frame with its onionskin and pushes it to the host.
func (n *Navigator) show() error {
	active := n.store.Active()
	if err := n.onion.Apply(n.store, active, true, n.playing); err != nil {
		return err
	}
	f, err := n.store.ActiveFrame()
	if err != nil {
		return err
	}
	if err := n.host.SetActiveLayer(f.Layer); err != nil {
		return err
	}
	return n.host.Flush()
}

// step advances one playback frame. A non-looping session stops on the
// last frame and never wraps past it.
func (n *Navigator) step() (bool, error) {
	if !n.playing {
		return true, nil
	}
	last := n.store.Len() - 1
	if !n.replay && n.store.Active() >= last {
		return true, n.setPlaying(false)
	}
	if err := n.move(Next, false); err != nil {
		return false, err
	}
	if !n.replay && n.store.Active() >= last {
		return true, n.setPlaying(false)
	}
	n.notify()
	return false, nil
}

func (n *Navigator) setPlaying(playing bool) error {
	if n.playing == playing {
		return nil
	}
	if err := n.onion.Apply(n.store, n.store.Active(), false, n.playing); err != nil {
		return err
	}
	n.playing = playing
	err := n.show()
	n.logger.Info("playback state", "playing", playing, "frame", n.store.Active())
	n.notify()
	return err
}

func (n *Navigator) setOnionskin(o Onionskin) error {
	if o.Depth < 0 {
		o.Depth = 0
	}
	if err := n.onion.Apply(n.store, n.store.Active(), false, n.playing); err != nil {
		return err
	}
	n.onion = o
	if err := n.show(); err != nil {
		return err
	}
	n.notify()
	return nil
}

func (n *Navigator) snapshot() State {
	return State{
		Active:    n.store.Active(),
		Count:     n.store.Len(),
		Playing:   n.playing,
		Replay:    n.replay,
		Onionskin: n.onion,
	}
}

func (n *Navigator) notify() {
	s := n.snapshot()
	for _, l := range n.listeners {
		l(s)
	}
}

// post sends ev and waits for the value delivered on reply.
func post[T any](n *Navigator, ev interface{}, reply chan T) (T, error) {
	var zero T
	select {
	case n.events <- ev:
	case <-n.done:
		return zero, ErrClosed
	}
	select {
	case v := <-reply:
		return v, nil
	case <-n.done:
		select {
		case v := <-reply:
			return v, nil
		default:
			return zero, ErrClosed
		}
	}
}

// Goto navigates to t. When refreshThumbnail is set the frame being left
// gets its thumbnail regenerated first.
func (n *Navigator) Goto(t Target, refreshThumbnail bool) error {
	reply := make(chan error, 1)
	err, perr := post(n, reqGoto{target: t, refresh: refreshThumbnail, reply: reply}, reply)
	if perr != nil {
		return perr
	}
	return err
}

// Step advances playback by one frame. stopped reports that playback is
// no longer running, either because it reached the last frame or because it
// was paused.
func (n *Navigator) Step() (bool, error) {
	reply := make(chan stepResult, 1)
	r, err := post(n, reqStep{reply: reply}, reply)
	if err != nil {
		return true, err
	}
	return r.stopped, r.err
}

// SetPlaying switches between the playing and paused display.
func (n *Navigator) SetPlaying(playing bool) error {
	reply := make(chan error, 1)
	err, perr := post(n, reqPlaying{playing: playing, reply: reply}, reply)
	if perr != nil {
		return perr
	}
	return err
}

// SetReplay sets loop-to-start behaviour.
func (n *Navigator) SetReplay(replay bool) error {
	reply := make(chan error, 1)
	err, perr := post(n, reqReplay{replay: replay, reply: reply}, reply)
	if perr != nil {
		return perr
	}
	return err
}

// SetOnionskin replaces the onionskin settings and redraws.
func (n *Navigator) SetOnionskin(o Onionskin) error {
	reply := make(chan error, 1)
	err, perr := post(n, reqOnionskin{onion: o, reply: reply}, reply)
	if perr != nil {
		return perr
	}
	return err
}

// ToggleOnionskin flips Onionskin.Enabled and returns the new value.
func (n *Navigator) ToggleOnionskin() (bool, error) {
	reply := make(chan toggleResult, 1)
	r, err := post(n, reqToggleOnionskin{reply: reply}, reply)
	if err != nil {
		return false, err
	}
	return r.enabled, r.err
}

// State returns a snapshot of the navigator.
func (n *Navigator) State() (State, error) {
	reply := make(chan State, 1)
	return post(n, reqState{reply: reply}, reply)
}

// AddListener registers l for state changes.
func (n *Navigator) AddListener(l StateListener) {
	reply := make(chan struct{}, 1)
	_, _ = post(n, reqAddListener{l: l, reply: reply}, reply)
}

// Close stops the event loop. Later calls return ErrClosed.
func (n *Navigator) Close() {
	n.closeOnce.Do(func() { close(n.quit) })
	<-n.done
}

// Ensure contract satisfaction
var _ NavigatorContract = (*Navigator)(nil)
