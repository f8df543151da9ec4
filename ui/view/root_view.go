package view

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/fanim-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions wired into the root layout.
type Handlers struct {
	First, Prev, TogglePlay, Next, Last func()
	Replay                              func(on bool)
	ToggleOnionskin                     func()
	Select                              func(index int)
	ApplyConfig                         func(config.Config) error
	CurrentConfig                       func() config.Config
	ToggleTheme                         func()
	Exit                                func()
}

// RootView composes the top-level layout: status bar, transport bar, canvas
// preview with the settings form, and the frame strip.
type RootView struct {
	logger    *slog.Logger
	frames    int
	thumbSize int

	// Subviews
	Session SessionStats
	Config  ConfigPanel
	Preview CanvasPreview
	Strip   FrameStrip

	// Widgets
	StatusLabel *LabelWidget
	PlayBtn     *ButtonWidget
	ReplayBtn   *ButtonWidget
	OnionBtn    *ButtonWidget

	replay bool
}

// UI is the view surface presenters drive.
type UI interface {
	SetStatus(text string)
	SetPlaying(playing bool)
	SetReplay(replay bool)
	SetOnionskin(enabled bool)
	HighlightFrame(index int)
	ConfigEditable(bool)
	ShowError(err error)
	UpdatePreview(img image.Image)
	SetThumbnail(index int, img image.Image)
	SetSession(session, total time.Duration, sessions int)
}

func NewRootView(frames, thumbSize int, logger *slog.Logger) *RootView {
	return &RootView{frames: frames, thumbSize: thumbSize, logger: logger}
}

// Build constructs the layout and binds h to the widgets and keyboard.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	call := func(fn func()) func() {
		return func() {
			if fn != nil {
				fn()
			}
		}
	}

	// Row 0: status, session stats, exit
	top := Frame()
	Grid(top, Row(0), Column(0), Columnspan(5), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	rv.StatusLabel = Label(Txt("No frames"), Borderwidth(1), Relief("ridge"), Width(28))
	Grid(rv.StatusLabel, In(top), Row(0), Column(0), Sticky("w"), Padx("0.4m"))
	rv.Session = NewSessionStats(top, 0, 1)
	themeBtn := Button(Txt("Theme"), Command(call(h.ToggleTheme)))
	Grid(themeBtn, In(top), Row(0), Column(4), Sticky("e"), Padx("0.2m"))
	exitBtn := Button(Txt("Exit"), Command(call(h.Exit)))
	Grid(exitBtn, In(top), Row(0), Column(5), Sticky("e"), Padx("0.2m"))

	// Row 1: transport bar
	bar := Frame()
	Grid(bar, Row(1), Column(0), Columnspan(5), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	col := 0
	add := func(b *ButtonWidget) *ButtonWidget {
		Grid(b, In(bar), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		col++
		return b
	}
	add(Button(Txt("|<"), Command(call(h.First))))
	add(Button(Txt("<"), Command(call(h.Prev))))
	rv.PlayBtn = add(Button(Txt("Play"), Width(7), Command(call(h.TogglePlay))))
	add(Button(Txt(">"), Command(call(h.Next))))
	add(Button(Txt(">|"), Command(call(h.Last))))
	rv.ReplayBtn = add(Button(Txt("Loop: off"), Width(10), Command(func() {
		if h.Replay != nil {
			h.Replay(!rv.replay)
		}
	})))
	rv.OnionBtn = add(Button(Txt("Onionskin: off"), Width(15), Command(call(h.ToggleOnionskin))))

	// Row 2: preview and settings form
	rv.Preview = NewCanvasPreview(2)
	rv.Config = NewConfigPanel(h.CurrentConfig, h.ApplyConfig, rv.logger)
	next := rv.Config.Build(2)

	// Row 3: frame strip
	rv.Strip = NewFrameStrip(next, rv.frames, rv.thumbSize, h.Select)

	Bind(App, "<Key-space>", Command(call(h.TogglePlay)))
	Bind(App, "<Key-Left>", Command(call(h.Prev)))
	Bind(App, "<Key-Right>", Command(call(h.Next)))
	Bind(App, "<Key-Home>", Command(call(h.First)))
	Bind(App, "<Key-End>", Command(call(h.Last)))
}

// SetStatus updates the status label text.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// ShowError puts err into the status label until the next state change.
func (rv *RootView) ShowError(err error) {
	if err != nil {
		rv.SetStatus("Error: " + err.Error())
	}
}

func (rv *RootView) SetPlaying(playing bool) {
	if rv == nil || rv.PlayBtn == nil {
		return
	}
	if playing {
		rv.PlayBtn.Configure(Txt("Pause"))
		return
	}
	rv.PlayBtn.Configure(Txt("Play"))
}

func (rv *RootView) SetReplay(replay bool) {
	if rv == nil {
		return
	}
	rv.replay = replay
	if rv.ReplayBtn != nil {
		rv.ReplayBtn.Configure(Txt("Loop: " + onOff(replay)))
	}
}

func (rv *RootView) SetOnionskin(enabled bool) {
	if rv != nil && rv.OnionBtn != nil {
		rv.OnionBtn.Configure(Txt("Onionskin: " + onOff(enabled)))
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// HighlightFrame marks index in the frame strip.
func (rv *RootView) HighlightFrame(index int) {
	if rv != nil && rv.Strip != nil {
		rv.Strip.Highlight(index)
	}
}

// ConfigEditable locks the settings form while playing.
func (rv *RootView) ConfigEditable(b bool) {
	if rv != nil && rv.Config != nil {
		rv.Config.SetEditable(b)
	}
}

// RefreshConfig shows cfg in the settings form.
func (rv *RootView) RefreshConfig(cfg config.Config) {
	if rv != nil && rv.Config != nil {
		rv.Config.Refresh(cfg)
	}
}

// UpdatePreview proxies to the canvas preview.
func (rv *RootView) UpdatePreview(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdatePreview(img)
	}
}

// SetThumbnail proxies to the frame strip.
func (rv *RootView) SetThumbnail(index int, img image.Image) {
	if rv != nil && rv.Strip != nil {
		rv.Strip.SetThumbnail(index, img)
	}
}

// SetSession proxies to the session stats labels.
func (rv *RootView) SetSession(session, total time.Duration, sessions int) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetSession(session, total, sessions)
	}
}

var _ UI = (*RootView)(nil)
