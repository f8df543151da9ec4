// Package layers is a standalone in-memory image host: an ordered stack of
// named raster layers with visibility, opacity and an active layer pointer.
// It satisfies timeline.Host so the timeline can run without an editor.
package layers

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/image/draw"

	"github.com/soocke/fanim-go/domain/timeline"
)

// ErrForeignLayer is returned when a layer that does not belong to the stack
// is made active.
var ErrForeignLayer = errors.New("layer does not belong to this stack")

// Layer is one raster layer. It is safe for concurrent use.
type Layer struct {
	mu      sync.RWMutex
	name    string
	img     image.Image
	visible bool
	opacity float64
}

// NewLayer returns a visible, fully opaque layer.
func NewLayer(name string, img image.Image) *Layer {
	return &Layer{name: name, img: img, visible: true, opacity: 100}
}

func (l *Layer) Name() string { return l.name }

// Image returns the layer pixels.
func (l *Layer) Image() image.Image {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.img
}

// SetImage replaces the layer pixels, for example after an edit.
func (l *Layer) SetImage(img image.Image) {
	l.mu.Lock()
	l.img = img
	l.mu.Unlock()
}

func (l *Layer) Visible() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.visible
}

func (l *Layer) SetVisible(v bool) error {
	l.mu.Lock()
	l.visible = v
	l.mu.Unlock()
	return nil
}

func (l *Layer) Opacity() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.opacity
}

// SetOpacity stores o. Values outside 0-100 are accepted and treated as
// fully transparent or fully opaque when compositing; NaN is rejected.
func (l *Layer) SetOpacity(o float64) error {
	if math.IsNaN(o) {
		return fmt.Errorf("layer %q: opacity is NaN", l.name)
	}
	l.mu.Lock()
	l.opacity = o
	l.mu.Unlock()
	return nil
}

// Stack is an ordered set of layers. Index 0 is the top of the stack, the
// way image editors list layers.
type Stack struct {
	logger *slog.Logger
	name   string

	mu      sync.RWMutex
	layers  []*Layer
	active  *Layer
	onFlush []func()
	flushes atomic.Uint64
}

// NewStack returns an empty stack.
func NewStack(name string, logger *slog.Logger) *Stack {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Stack{name: name, logger: logger}
}

// Name returns the image name.
func (s *Stack) Name() string { return s.name }

// Add appends l below the existing layers.
func (s *Stack) Add(l *Layer) {
	s.mu.Lock()
	s.layers = append(s.layers, l)
	s.mu.Unlock()
}

// Len returns the number of layers.
func (s *Stack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.layers)
}

// Layer returns the concrete layer at index i.
func (s *Stack) Layer(i int) (*Layer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.layers) {
		return nil, fmt.Errorf("layer %d of %d: %w", i, len(s.layers), timeline.ErrIndexOutOfRange)
	}
	return s.layers[i], nil
}

// Layers implements timeline.Host.
func (s *Stack) Layers() ([]timeline.Layer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]timeline.Layer, len(s.layers))
	for i, l := range s.layers {
		out[i] = l
	}
	return out, nil
}

// SetActiveLayer implements timeline.Host.
func (s *Stack) SetActiveLayer(tl timeline.Layer) error {
	l, ok := tl.(*Layer)
	if !ok {
		return ErrForeignLayer
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.layers {
		if c == l {
			s.active = l
			return nil
		}
	}
	return ErrForeignLayer
}

// Active returns the active layer or nil.
func (s *Stack) Active() *Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// OnFlush registers fn to run on every display refresh request. fn runs on
// the caller's goroutine and should only schedule work.
func (s *Stack) OnFlush(fn func()) {
	s.mu.Lock()
	s.onFlush = append(s.onFlush, fn)
	s.mu.Unlock()
}

// Flush implements timeline.Host.
func (s *Stack) Flush() error {
	s.flushes.Add(1)
	s.mu.RLock()
	fns := append([]func(){}, s.onFlush...)
	s.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
	return nil
}

// Flushes returns the number of refresh requests seen.
func (s *Stack) Flushes() uint64 { return s.flushes.Load() }

// ImageOf returns the pixels of a layer in this stack.
func (s *Stack) ImageOf(tl timeline.Layer) (image.Image, error) {
	l, ok := tl.(*Layer)
	if !ok {
		return nil, ErrForeignLayer
	}
	return l.Image(), nil
}

// Bounds returns the union of all layer bounds.
func (s *Stack) Bounds() image.Rectangle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var r image.Rectangle
	for _, l := range s.layers {
		if img := l.Image(); img != nil {
			r = r.Union(img.Bounds())
		}
	}
	return r
}

// Composite renders the visible layers over an opaque background, bottom
// layer first, each scaled by its opacity.
func (s *Stack) Composite(background color.Color) *image.RGBA {
	b := s.Bounds()
	dst := image.NewRGBA(b)
	if background != nil {
		draw.Draw(dst, b, &image.Uniform{C: background}, image.Point{}, draw.Src)
	}
	s.mu.RLock()
	layers := append([]*Layer(nil), s.layers...)
	s.mu.RUnlock()
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if !l.Visible() {
			continue
		}
		img := l.Image()
		if img == nil {
			continue
		}
		a := alpha(l.Opacity())
		if a == 0 {
			continue
		}
		mask := &image.Uniform{C: color.Alpha{A: a}}
		draw.DrawMask(dst, img.Bounds(), img, img.Bounds().Min, mask, image.Point{}, draw.Over)
	}
	return dst
}

func alpha(opacity float64) uint8 {
	switch {
	case opacity <= 0:
		return 0
	case opacity >= 100:
		return 0xff
	default:
		return uint8(opacity*0xff/100 + 0.5)
	}
}

var _ timeline.Host = (*Stack)(nil)
var _ timeline.Layer = (*Layer)(nil)
