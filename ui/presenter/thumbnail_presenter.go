package presenter

import (
	"image"

	"github.com/soocke/fanim-go/ui/model"
)

// ThumbnailSource yields thumbnails changed since the last call.
type ThumbnailSource interface {
	TakeDirty() []model.Thumb
}

// StripView shows one thumbnail per frame.
type StripView interface {
	SetThumbnail(index int, img image.Image)
}

// ThumbnailPresenter pushes re-rendered thumbnails into the frame strip.
type ThumbnailPresenter struct {
	src  ThumbnailSource
	view StripView
}

func NewThumbnailPresenter(src ThumbnailSource, view StripView) *ThumbnailPresenter {
	return &ThumbnailPresenter{src: src, view: view}
}

// Tick applies pending thumbnails.
func (p *ThumbnailPresenter) Tick() {
	if p == nil || p.src == nil || p.view == nil {
		return
	}
	for _, th := range p.src.TakeDirty() {
		if th.Image != nil {
			p.view.SetThumbnail(th.Index, th.Image)
		}
	}
}
