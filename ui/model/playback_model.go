package model

import (
	"sync"

	"github.com/soocke/fanim-go/domain/timeline"
)

// PlaybackModel holds the latest navigator state for the UI. The navigator
// publishes from its own goroutine and presenters read on the Tk tick, so
// access is guarded. The zero value is usable.
type PlaybackModel struct {
	mu      sync.Mutex
	state   timeline.State
	version uint64
}

// Update stores s. It has the timeline.StateListener signature.
func (m *PlaybackModel) Update(s timeline.State) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.state = s
	m.version++
	m.mu.Unlock()
}

// State returns the latest state and its version. The version grows on
// every Update so pollers can skip unchanged snapshots.
func (m *PlaybackModel) State() (timeline.State, uint64) {
	if m == nil {
		return timeline.State{}, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.version
}

// Playing reports whether the last published state was playing.
func (m *PlaybackModel) Playing() bool {
	s, _ := m.State()
	return s.Playing
}
