package presenter

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/soocke/fanim-go/domain/timeline"
	"github.com/soocke/fanim-go/ui/model"
)

type mockTimelineView struct {
	calls    []string
	status   string
	playing  bool
	editable bool
	replay   bool
	onion    bool
	frame    int
}

func (v *mockTimelineView) SetStatus(s string)    { v.calls = append(v.calls, "status"); v.status = s }
func (v *mockTimelineView) SetPlaying(b bool)     { v.calls = append(v.calls, "playing"); v.playing = b }
func (v *mockTimelineView) SetReplay(b bool)      { v.calls = append(v.calls, "replay"); v.replay = b }
func (v *mockTimelineView) SetOnionskin(b bool)   { v.calls = append(v.calls, "onion"); v.onion = b }
func (v *mockTimelineView) HighlightFrame(i int)  { v.calls = append(v.calls, "frame"); v.frame = i }
func (v *mockTimelineView) ConfigEditable(b bool) { v.calls = append(v.calls, "editable"); v.editable = b }

func TestTimelinePresenter_FirstTickPaintsEverything(t *testing.T) {
	m := &model.PlaybackModel{}
	v := &mockTimelineView{}
	p := NewTimelinePresenter(m, v)

	p.Tick(time.Now())
	if len(v.calls) != 0 {
		t.Fatalf("expected no view calls before any state, got %v", v.calls)
	}

	m.Update(timeline.State{Active: 0, Count: 4})
	p.Tick(time.Now())
	want := []string{"status", "frame", "playing", "editable", "replay", "onion"}
	if diff := cmp.Diff(want, v.calls); diff != "" {
		t.Fatalf("view calls (-want +got):\n%s", diff)
	}
	if v.status != "Paused: frame 1 / 4" || !v.editable {
		t.Fatalf("unexpected view %+v", v)
	}
}

func TestTimelinePresenter_OnlyChangedWidgets(t *testing.T) {
	m := &model.PlaybackModel{}
	v := &mockTimelineView{}
	p := NewTimelinePresenter(m, v)
	m.Update(timeline.State{Active: 0, Count: 4})
	p.Tick(time.Now())
	v.calls = nil

	// Unchanged version: nothing happens.
	p.Tick(time.Now())
	if len(v.calls) != 0 {
		t.Fatalf("expected no calls, got %v", v.calls)
	}

	m.Update(timeline.State{Active: 1, Count: 4, Playing: true})
	p.Tick(time.Now())
	want := []string{"status", "frame", "playing", "editable"}
	if diff := cmp.Diff(want, v.calls); diff != "" {
		t.Fatalf("view calls (-want +got):\n%s", diff)
	}
	if v.status != "Playing: frame 2 / 4" || v.editable || v.frame != 1 {
		t.Fatalf("unexpected view %+v", v)
	}
	if p.Latest().Active != 1 {
		t.Fatalf("latest not tracked")
	}
}

func TestStatusText_NoFrames(t *testing.T) {
	if s := StatusText(timeline.State{}); s != "No frames" {
		t.Fatalf("got %q", s)
	}
}
