package timeline

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

type fakeLayer struct {
	name    string
	visible bool
	opacity float64
	failSet error
}

func (l *fakeLayer) Name() string     { return l.name }
func (l *fakeLayer) Visible() bool    { return l.visible }
func (l *fakeLayer) Opacity() float64 { return l.opacity }
func (l *fakeLayer) SetVisible(v bool) error {
	if l.failSet != nil {
		return l.failSet
	}
	l.visible = v
	return nil
}
func (l *fakeLayer) SetOpacity(o float64) error {
	if l.failSet != nil {
		return l.failSet
	}
	l.opacity = o
	return nil
}

type fakeHost struct {
	layers  []*fakeLayer
	active  Layer
	flushes int
	// Flush returns flushErr once flushes exceeds failAfter.
	flushErr  error
	failAfter int
}

func newFakeHost(n int) *fakeHost {
	h := &fakeHost{}
	for i := 0; i < n; i++ {
		h.layers = append(h.layers, &fakeLayer{name: fmt.Sprintf("frame %d", i), visible: true, opacity: 100})
	}
	return h
}

func (h *fakeHost) Layers() ([]Layer, error) {
	out := make([]Layer, len(h.layers))
	for i, l := range h.layers {
		out[i] = l
	}
	return out, nil
}
func (h *fakeHost) SetActiveLayer(l Layer) error { h.active = l; return nil }

func (h *fakeHost) Flush() error {
	h.flushes++
	if h.flushErr != nil && h.flushes > h.failAfter {
		return h.flushErr
	}
	return nil
}

// visible returns the indexes of visible layers.
func (h *fakeHost) visible() []int {
	var out []int
	for i, l := range h.layers {
		if l.visible {
			out = append(out, i)
		}
	}
	return out
}

func (h *fakeHost) layerStores() []Layer {
	ls, _ := h.Layers()
	return ls
}

type thumbRecorder struct {
	mu      sync.Mutex
	indexes []int
}

func (r *thumbRecorder) Refresh(index int, l Layer) error {
	r.mu.Lock()
	r.indexes = append(r.indexes, index)
	r.mu.Unlock()
	return nil
}

func newTestNavigator(t *testing.T, h *fakeHost, o Onionskin) *Navigator {
	t.Helper()
	n, err := NewNavigator(discardLogger, h, o, nil)
	if err != nil {
		t.Fatalf("new navigator: %v", err)
	}
	t.Cleanup(n.Close)
	return n
}

func mustState(t *testing.T, n *Navigator) State {
	t.Helper()
	s, err := n.State()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	return s
}

// waitFor polls cond until it holds or the timeout elapses.
func waitFor(t *testing.T, what string, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", what)
}
