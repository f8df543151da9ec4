package theme

// Light and dark palettes for the player window and the ttk styles built
// from them.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PaletteSnapshot holds the resolved colors for one mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Accent    string
	Text      string
	TextMuted string
	Canvas    string // preview background behind transparent pixels
}

var (
	light = PaletteSnapshot{
		AppBg:     "#f7f9fb",
		Surface:   "#ffffff",
		Border:    "#d0d7de",
		Primary:   "#2563eb",
		Accent:    "#10b981",
		Text:      "#1e293b",
		TextMuted: "#64748b",
		Canvas:    "#ffffff",
	}
	dark = PaletteSnapshot{
		AppBg:     "#0f172a",
		Surface:   "#1e293b",
		Border:    "#334155",
		Primary:   "#3b82f6",
		Accent:    "#10b981",
		Text:      "#f1f5f9",
		TextMuted: "#94a3b8",
		Canvas:    "#1e293b",
	}
)

// Style names used with Style("transport.TButton") etc.
const (
	StyleTransportButton = "transport.TButton"
	StyleStatusLabel     = "status.TLabel"
)

var darkMode bool

// Current returns the palette of the active mode.
func Current() PaletteSnapshot {
	if darkMode {
		return dark
	}
	return light
}

// InitStyles (re)applies styles for the current mode.
func InitStyles() { applyStyles(Current()) }

// SetDark switches mode and reapplies styles. Returns the new mode.
func SetDark(on bool) bool {
	darkMode = on
	applyStyles(Current())
	return darkMode
}

// ToggleDark flips dark mode and reapplies styles. Returns the new mode.
func ToggleDark() bool { return SetDark(!darkMode) }

// IsDark reports the current mode.
func IsDark() bool { return darkMode }

func applyStyles(p PaletteSnapshot) {
	_ = ActivateTheme("azure light") // baseline metrics
	App.Configure(Background(p.AppBg))
	StyleConfigure(StyleTransportButton,
		Background(p.Primary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground(p.Text),
		Background(p.Surface),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
