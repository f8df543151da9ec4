package model

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"sync"

	"github.com/soocke/fanim-go/domain/timeline"
	"github.com/soocke/fanim-go/ui/images"
)

// ImageSource resolves a layer to its pixels.
type ImageSource interface {
	ImageOf(l timeline.Layer) (image.Image, error)
}

// Thumb is a rendered thumbnail for one frame.
type Thumb struct {
	Index int
	Image *image.RGBA
}

// ThumbnailModel caches one square thumbnail per frame and records which
// ones changed since the view last pulled them. Refresh is called from the
// navigator goroutine, TakeDirty from the Tk tick.
type ThumbnailModel struct {
	src  ImageSource
	size int

	mu     sync.Mutex
	thumbs map[int]*image.RGBA
	dirty  map[int]struct{}
}

// NewThumbnailModel returns an empty model rendering size x size thumbnails.
func NewThumbnailModel(src ImageSource, size int) *ThumbnailModel {
	if size < 1 {
		size = 1
	}
	return &ThumbnailModel{
		src:    src,
		size:   size,
		thumbs: make(map[int]*image.RGBA),
		dirty:  make(map[int]struct{}),
	}
}

// Size returns the thumbnail edge length in pixels.
func (m *ThumbnailModel) Size() int { return m.size }

// Refresh re-renders the thumbnail of frame index from l. It implements
// timeline.Thumbnails.
func (m *ThumbnailModel) Refresh(index int, l timeline.Layer) error {
	if m.src == nil {
		return errors.New("thumbnail: no image source")
	}
	img, err := m.src.ImageOf(l)
	if err != nil {
		return fmt.Errorf("thumbnail %d: %w", index, err)
	}
	th := images.Thumbnail(img, m.size, m.size)
	m.mu.Lock()
	m.thumbs[index] = th
	m.dirty[index] = struct{}{}
	m.mu.Unlock()
	return nil
}

// RefreshAll renders every frame. The first failure is returned after all
// frames were attempted.
func (m *ThumbnailModel) RefreshAll(layers []timeline.Layer) error {
	var first error
	for i, l := range layers {
		if err := m.Refresh(i, l); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Thumbnail returns the cached thumbnail of frame index.
func (m *ThumbnailModel) Thumbnail(index int) (*image.RGBA, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	th, ok := m.thumbs[index]
	return th, ok
}

// TakeDirty returns the thumbnails changed since the last call, ordered by
// frame index, and clears the dirty set.
func (m *ThumbnailModel) TakeDirty() []Thumb {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.dirty) == 0 {
		return nil
	}
	out := make([]Thumb, 0, len(m.dirty))
	for i := range m.dirty {
		out = append(out, Thumb{Index: i, Image: m.thumbs[i]})
	}
	clear(m.dirty)
	sort.Slice(out, func(a, b int) bool { return out[a].Index < out[b].Index })
	return out
}

var _ timeline.Thumbnails = (*ThumbnailModel)(nil)
