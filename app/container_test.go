package app

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/soocke/fanim-go/config"
	"github.com/soocke/fanim-go/domain/layers"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeView struct {
	mu       sync.Mutex
	status   string
	playing  bool
	frame    int
	thumbs   map[int]bool
	previews int
	errs     []error
	configs  []config.Config
}

func newFakeView() *fakeView { return &fakeView{thumbs: map[int]bool{}, frame: -1} }

func (v *fakeView) SetStatus(s string)        { v.mu.Lock(); v.status = s; v.mu.Unlock() }
func (v *fakeView) SetPlaying(b bool)         { v.mu.Lock(); v.playing = b; v.mu.Unlock() }
func (v *fakeView) SetReplay(bool)            {}
func (v *fakeView) SetOnionskin(bool)         {}
func (v *fakeView) HighlightFrame(i int)      { v.mu.Lock(); v.frame = i; v.mu.Unlock() }
func (v *fakeView) ConfigEditable(bool)       {}
func (v *fakeView) ShowError(err error)       { v.mu.Lock(); v.errs = append(v.errs, err); v.mu.Unlock() }
func (v *fakeView) UpdatePreview(image.Image) { v.mu.Lock(); v.previews++; v.mu.Unlock() }
func (v *fakeView) SetThumbnail(i int, _ image.Image) {
	v.mu.Lock()
	v.thumbs[i] = true
	v.mu.Unlock()
}
func (v *fakeView) SetSession(time.Duration, time.Duration, int) {}
func (v *fakeView) RefreshConfig(c config.Config) {
	v.mu.Lock()
	v.configs = append(v.configs, c)
	v.mu.Unlock()
}

func (v *fakeView) snapshot() (string, int, int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status, v.frame, len(v.thumbs), v.previews
}

func waitFor(t *testing.T, what string, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func buildTestContainer(t *testing.T, cfg *config.Config, path string, frames int) (*Container, *fakeView) {
	t.Helper()
	v := newFakeView()
	stack := layers.Demo(frames, 24, 16, discardLogger)
	c, err := BuildContainer(context.Background(), cfg, path, stack, v, Options{PreviewW: 12, PreviewH: 8, Background: color.White}, discardLogger)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(c.Close)
	return c, v
}

func TestContainer_FirstTickShowsFirstFrame(t *testing.T) {
	c, v := buildTestContainer(t, nil, "", 5)
	loop := c.Loop(nil)
	loop.Tick()
	waitFor(t, "preview", time.Second, func() bool {
		loop.Tick()
		_, _, _, previews := v.snapshot()
		return previews > 0
	})
	status, frame, thumbs, _ := v.snapshot()
	if status != "Paused: frame 1 / 5" || frame != 0 || thumbs != 5 {
		t.Fatalf("unexpected view: status=%q frame=%d thumbs=%d", status, frame, thumbs)
	}
	first, _ := c.Stack.Layer(0)
	if c.Stack.Active() != first || !first.Visible() {
		t.Fatalf("expected first frame active and visible")
	}
}

func TestContainer_PlayToEnd(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FramesPerSecond = 200
	cfg.FrameDelay = 0
	c, v := buildTestContainer(t, cfg, "", 4)
	loop := c.Loop(nil)

	c.TransportPresenter.TogglePlay()
	waitFor(t, "playback to end", 2*time.Second, func() bool { return !c.Player.Playing() })
	loop.Tick()
	status, frame, _, _ := v.snapshot()
	if status != "Paused: frame 4 / 4" || frame != 3 {
		t.Fatalf("expected stop on last frame, got status=%q frame=%d", status, frame)
	}
}

func TestContainer_SelectOutOfRangeShowsError(t *testing.T) {
	c, v := buildTestContainer(t, nil, "", 3)
	c.TransportPresenter.Select(7)
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.errs) != 1 {
		t.Fatalf("expected one error, got %v", v.errs)
	}
}

func TestContainer_ConfigReloadReachesNavigator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fanim.json")
	cfg := config.DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	c, v := buildTestContainer(t, cfg, path, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.WatchConfig(ctx)
	time.Sleep(100 * time.Millisecond) // let the watcher subscribe

	next := *cfg
	next.OnionskinEnabled = true
	next.Replay = true
	if err := next.Save(path); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "reload", 3*time.Second, func() bool {
		s, err := c.Navigator.State()
		return err == nil && s.Onionskin.Enabled && s.Replay
	})
	loop := c.Loop(nil)
	waitFor(t, "form refresh", time.Second, func() bool {
		loop.Tick()
		v.mu.Lock()
		defer v.mu.Unlock()
		return len(v.configs) == 1 && v.configs[0].Replay
	})
}

func TestLoadFrames(t *testing.T) {
	s, err := LoadFrames(context.Background(), Source{DemoFrames: 3, DemoSize: image.Pt(10, 10)}, discardLogger)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 demo frames, got %d", s.Len())
	}

	if _, err := LoadFrames(context.Background(), Source{GIF: "a.gif", Dir: "frames"}, discardLogger); !errors.Is(err, ErrSourceConflict) {
		t.Fatalf("expected ErrSourceConflict, got %v", err)
	}

	grabs := 0
	grab := func(*image.Rectangle) (*image.RGBA, error) {
		grabs++
		return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
	}
	s, err = LoadFrames(context.Background(), Source{Capture: 2, CaptureInterval: time.Millisecond, Grabber: grab}, discardLogger)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 2 || grabs != 2 {
		t.Fatalf("expected 2 captured frames, got %d from %d grabs", s.Len(), grabs)
	}

	if _, err := LoadFrames(context.Background(), Source{Dir: filepath.Join(t.TempDir(), "missing")}, discardLogger); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
