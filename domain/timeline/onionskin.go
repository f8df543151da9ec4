package timeline

import "github.com/soocke/fanim-go/config"

const fullOpacity = 100.0

// Onionskin configures the faded neighbour preview around the active frame.
type Onionskin struct {
	Enabled bool
	// Depth is the number of frames shown on each side.
	Depth    int
	Backward bool
	Forward  bool
	// BaseOpacity is reduced by Decay for each depth step.
	BaseOpacity float64
	Decay       float64
	// DisableOnPlay hides neighbours while playback runs.
	DisableOnPlay bool
	// ActiveOpacity is the opacity the active frame is revealed with.
	ActiveOpacity float64
}

// OnionskinFromConfig maps the onionskin settings of cfg. A nil cfg yields
// the defaults.
func OnionskinFromConfig(cfg *config.Config) Onionskin {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return Onionskin{
		Enabled:       cfg.OnionskinEnabled,
		Depth:         cfg.OnionskinDepth,
		Backward:      cfg.OnionskinBackward,
		Forward:       cfg.OnionskinForward,
		BaseOpacity:   cfg.OnionskinOpacity,
		Decay:         cfg.OnionskinDecay,
		DisableOnPlay: cfg.OnionskinDisableOnPlay,
		ActiveOpacity: cfg.ActiveOpacity,
	}
}

// Reveal is the display state computed for one frame.
type Reveal struct {
	Index   int
	Visible bool
	Opacity float64
}

// Compute returns the display state for the active frame and, when the
// onionskin is in effect, its neighbours within Depth. The active frame is
// always first. When reveal is false every touched frame is hidden at full
// opacity so nothing stays faded after the active frame moves.
func (o Onionskin) Compute(active, count int, reveal, playing bool) []Reveal {
	if count <= 0 || active < 0 || active >= count {
		return nil
	}
	activeOpacity := fullOpacity
	if reveal {
		activeOpacity = clampOpacity(o.ActiveOpacity)
	}
	out := []Reveal{{Index: active, Visible: reveal, Opacity: activeOpacity}}
	if !o.Enabled || (playing && o.DisableOnPlay) {
		return out
	}
	for i := 1; i <= o.Depth; i++ {
		opacity := fullOpacity
		if reveal {
			opacity = clampOpacity(o.BaseOpacity - float64(i)*o.Decay)
		}
		if o.Backward {
			if pos := active - i; pos >= 0 {
				out = append(out, Reveal{Index: pos, Visible: reveal, Opacity: opacity})
			}
		}
		if o.Forward {
			if pos := active + i; pos <= count-1 {
				out = append(out, Reveal{Index: pos, Visible: reveal, Opacity: opacity})
			}
		}
	}
	return out
}

// Apply writes Compute's result through the store.
func (o Onionskin) Apply(s *FrameStore, active int, reveal, playing bool) error {
	if s.Len() == 0 {
		return ErrNoFrames
	}
	if active < 0 || active >= s.Len() {
		return indexError(active, s.Len())
	}
	for _, r := range o.Compute(active, s.Len(), reveal, playing) {
		if err := s.SetVisible(r.Index, r.Visible); err != nil {
			return err
		}
		if err := s.SetOpacity(r.Index, r.Opacity); err != nil {
			return err
		}
	}
	return nil
}

func clampOpacity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > fullOpacity {
		return fullOpacity
	}
	return v
}
