package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/fanim-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel is the playback and onionskin settings form.
type ConfigPanel interface {
	Build(row int) (next int) // grids the form into column 4 of row
	SetEditable(enabled bool)
	Refresh(cfg config.Config)
	ApplyChanges()
}

type configPanel struct {
	current  func() config.Config
	apply    func(config.Config) error
	logger   *slog.Logger
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the form. current supplies the values to show and
// the base for edits; apply receives the edited copy.
func NewConfigPanel(current func() config.Config, apply func(config.Config) error, logger *slog.Logger) ConfigPanel {
	return &configPanel{current: current, apply: apply, logger: logger, widgets: make(map[string]*TextWidget)}
}

type field struct {
	id, label string
	value     func(c *config.Config) string
}

var fields = []field{
	{"fps", "Frames Per Second", func(c *config.Config) string { return fmt.Sprintf("%.1f", c.FramesPerSecond) }},
	{"delay", "Frame Delay (s)", func(c *config.Config) string { return fmt.Sprintf("%.3f", c.FrameDelay) }},
	{"depth", "Onionskin Depth", func(c *config.Config) string { return strconv.Itoa(c.OnionskinDepth) }},
	{"backward", "Show Previous (true/false)", func(c *config.Config) string { return strconv.FormatBool(c.OnionskinBackward) }},
	{"forward", "Show Next (true/false)", func(c *config.Config) string { return strconv.FormatBool(c.OnionskinForward) }},
	{"opacity", "Onionskin Opacity (0-100)", func(c *config.Config) string { return fmt.Sprintf("%.1f", c.OnionskinOpacity) }},
	{"decay", "Opacity Decay Per Step", func(c *config.Config) string { return fmt.Sprintf("%.1f", c.OnionskinDecay) }},
	{"disableOnPlay", "Hide Onionskin On Play", func(c *config.Config) string { return strconv.FormatBool(c.OnionskinDisableOnPlay) }},
	{"activeOpacity", "Active Frame Opacity", func(c *config.Config) string { return fmt.Sprintf("%.1f", c.ActiveOpacity) }},
}

func (v *configPanel) Build(row int) int {
	form := Frame(Borderwidth(1), Relief("groove"))
	Grid(form, Row(row), Column(4), Sticky("n"), Padx("0.4m"), Pady("0.4m"))
	for i, f := range fields {
		lbl := Label(Txt(f.label), Anchor("w"))
		Grid(lbl, In(form), Row(i), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(10))
		Grid(w, In(form), Row(i), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		v.widgets[f.id] = w
	}
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, In(form), Row(len(fields)), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	if v.current != nil {
		v.Refresh(v.current())
	}
	return row + 1
}

// Refresh rewrites the widgets from cfg, for example after a file reload.
func (v *configPanel) Refresh(cfg config.Config) {
	for _, f := range fields {
		w := v.widgets[f.id]
		if w == nil {
			continue
		}
		w.Delete("1.0", END)
		w.Insert("1.0", f.value(&cfg))
	}
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), "")), true
}

func (v *configPanel) ApplyChanges() {
	if v.current == nil || v.apply == nil {
		return
	}
	cfg := v.current()
	ParseFields(&cfg, v.text)
	if err := v.apply(cfg); err != nil {
		if v.logger != nil {
			v.logger.Error("config apply failed", "error", err)
		}
		return
	}
	v.Refresh(cfg)
}

// ParseFields overwrites cfg with every field text yields that parses.
// Unparsable entries keep their previous value.
func ParseFields(cfg *config.Config, text func(id string) (string, bool)) {
	assignFloat := func(id string, dst *float64) {
		if s, ok := text(id); ok {
			if f, ok := parseFloatField(s); ok {
				*dst = f
			}
		}
	}
	assignInt := func(id string, dst *int) {
		if s, ok := text(id); ok {
			if i, ok := parseIntField(s); ok {
				*dst = i
			}
		}
	}
	assignBool := func(id string, dst *bool) {
		if s, ok := text(id); ok {
			if b, ok := parseBoolLoose(s); ok {
				*dst = b
			}
		}
	}
	assignFloat("fps", &cfg.FramesPerSecond)
	assignFloat("delay", &cfg.FrameDelay)
	assignInt("depth", &cfg.OnionskinDepth)
	assignBool("backward", &cfg.OnionskinBackward)
	assignBool("forward", &cfg.OnionskinForward)
	assignFloat("opacity", &cfg.OnionskinOpacity)
	assignFloat("decay", &cfg.OnionskinDecay)
	assignBool("disableOnPlay", &cfg.OnionskinDisableOnPlay)
	assignFloat("activeOpacity", &cfg.ActiveOpacity)
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
