package timeline

// Frame is one host layer treated as a single animation frame.
type Frame struct {
	Index int
	Layer Layer
	// Selected highlights the frame in the strip. The navigator keeps it in
	// sync with the active frame.
	Selected bool
}

// Visible reports the host visibility of the frame's layer.
func (f *Frame) Visible() bool { return f.Layer.Visible() }

// Opacity reports the host opacity of the frame's layer.
func (f *Frame) Opacity() float64 { return f.Layer.Opacity() }

// FrameStore is the ordered frame sequence plus the active index. It is not
// safe for concurrent use; the Navigator owns it from a single goroutine.
type FrameStore struct {
	frames []*Frame
	active int
}

// NewFrameStore wraps the layer snapshot. The first frame starts active.
func NewFrameStore(layers []Layer) *FrameStore {
	s := &FrameStore{frames: make([]*Frame, len(layers))}
	for i, l := range layers {
		s.frames[i] = &Frame{Index: i, Layer: l}
	}
	return s
}

// Len returns the frame count.
func (s *FrameStore) Len() int { return len(s.frames) }

// Active returns the active index. It is meaningless on an empty store.
func (s *FrameStore) Active() int { return s.active }

// Frame returns the frame at index.
func (s *FrameStore) Frame(index int) (*Frame, error) {
	if err := s.check(index); err != nil {
		return nil, err
	}
	return s.frames[index], nil
}

// ActiveFrame returns the active frame or ErrNoFrames.
func (s *FrameStore) ActiveFrame() (*Frame, error) {
	if len(s.frames) == 0 {
		return nil, ErrNoFrames
	}
	return s.frames[s.active], nil
}

// SetActive moves the active pointer.
func (s *FrameStore) SetActive(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.active = index
	return nil
}

// SetVisible sets the host visibility of frame index.
func (s *FrameStore) SetVisible(index int, visible bool) error {
	if err := s.check(index); err != nil {
		return err
	}
	return s.frames[index].Layer.SetVisible(visible)
}

// SetOpacity sets the host opacity of frame index.
func (s *FrameStore) SetOpacity(index int, opacity float64) error {
	if err := s.check(index); err != nil {
		return err
	}
	return s.frames[index].Layer.SetOpacity(opacity)
}

// Select sets the strip highlight of frame index.
func (s *FrameStore) Select(index int, selected bool) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.frames[index].Selected = selected
	return nil
}

func (s *FrameStore) check(index int) error {
	if len(s.frames) == 0 {
		return ErrNoFrames
	}
	if index < 0 || index >= len(s.frames) {
		return indexError(index, len(s.frames))
	}
	return nil
}
