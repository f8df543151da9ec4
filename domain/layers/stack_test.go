package layers

import (
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"

	"github.com/soocke/fanim-go/domain/timeline"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestStack_SetActiveLayer(t *testing.T) {
	s := NewStack("img", discardLogger)
	a := NewLayer("a", solid(2, 2, color.RGBA{A: 255}))
	s.Add(a)
	if err := s.SetActiveLayer(a); err != nil {
		t.Fatal(err)
	}
	if s.Active() != a {
		t.Fatalf("expected a active")
	}
	stray := NewLayer("stray", nil)
	if err := s.SetActiveLayer(stray); !errors.Is(err, ErrForeignLayer) {
		t.Fatalf("expected ErrForeignLayer, got %v", err)
	}
}

func TestStack_LayerOutOfRange(t *testing.T) {
	s := NewStack("img", nil)
	if _, err := s.Layer(0); !errors.Is(err, timeline.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestStack_FlushCallbacks(t *testing.T) {
	s := NewStack("img", discardLogger)
	calls := 0
	s.OnFlush(func() { calls++ })
	_ = s.Flush()
	_ = s.Flush()
	if calls != 2 || s.Flushes() != 2 {
		t.Fatalf("expected 2 flushes, got calls=%d count=%d", calls, s.Flushes())
	}
}

func TestLayer_SetOpacityRejectsNaN(t *testing.T) {
	l := NewLayer("a", nil)
	if err := l.SetOpacity(nanValue()); err == nil {
		t.Fatalf("expected error for NaN opacity")
	}
	if l.Opacity() != 100 {
		t.Fatalf("opacity changed to %v", l.Opacity())
	}
}

func nanValue() float64 {
	zero := 0.0
	return zero / zero
}

func TestComposite_TopLayerWinsAndOpacityBlends(t *testing.T) {
	s := NewStack("img", discardLogger)
	top := NewLayer("top", solid(4, 4, color.RGBA{R: 255, A: 255}))
	bottom := NewLayer("bottom", solid(4, 4, color.RGBA{B: 255, A: 255}))
	s.Add(top)
	s.Add(bottom)

	out := s.Composite(color.White)
	if c := out.RGBAAt(1, 1); c.R != 255 || c.B != 0 {
		t.Fatalf("expected opaque top layer, got %v", c)
	}

	_ = top.SetOpacity(50)
	out = s.Composite(color.White)
	c := out.RGBAAt(1, 1)
	if c.R < 120 || c.R > 135 || c.B < 120 || c.B > 135 {
		t.Fatalf("expected half blend of red over blue, got %v", c)
	}

	_ = top.SetVisible(false)
	_ = bottom.SetVisible(false)
	out = s.Composite(color.White)
	if c := out.RGBAAt(1, 1); c != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("expected background only, got %v", c)
	}
}

// The navigator drives a real stack: exactly the active frame ends up
// visible and the host is flushed on every move.
func TestStack_DrivesNavigator(t *testing.T) {
	s := Demo(4, 20, 20, discardLogger)
	n, err := timeline.NewNavigator(discardLogger, s, timeline.Onionskin{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer n.Close()

	before := s.Flushes()
	if err := n.Goto(timeline.End, false); err != nil {
		t.Fatal(err)
	}
	if s.Flushes() <= before {
		t.Fatalf("expected a flush after navigation")
	}
	last, _ := s.Layer(3)
	if s.Active() != last {
		t.Fatalf("expected last layer active")
	}
	for i := 0; i < s.Len(); i++ {
		l, _ := s.Layer(i)
		if l.Visible() != (i == 3) {
			t.Fatalf("layer %d visible=%v", i, l.Visible())
		}
	}
}
