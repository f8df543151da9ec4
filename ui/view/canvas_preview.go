package view

import (
	"image"

	"github.com/soocke/fanim-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// CanvasPreview shows the composited canvas: the active frame and its
// onionskin neighbours.
type CanvasPreview interface {
	UpdatePreview(img image.Image)
	Reset()
}

type canvasPreview struct {
	label     *LabelWidget
	prevPhoto *Img // replaced photos are deleted so Tk does not keep their pixels
}

const (
	// MaxPreviewW and MaxPreviewH bound the rendered preview.
	MaxPreviewW = 480
	MaxPreviewH = 360
)

// NewCanvasPreview creates the preview label spanning columns 0-3 of row.
func NewCanvasPreview(row int) CanvasPreview {
	photo := NewPhoto(Data(placeholderPNG()))
	lbl := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(lbl, Row(row), Column(0), Columnspan(4), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
	return &canvasPreview{label: lbl, prevPhoto: photo}
}

func placeholderPNG() []byte {
	return images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 240, 180)))
}

// UpdatePreview expects an image already scaled for display.
func (v *canvasPreview) UpdatePreview(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	v.swap(images.EncodePNG(img))
}

func (v *canvasPreview) Reset() {
	if v == nil || v.label == nil {
		return
	}
	v.swap(placeholderPNG())
}

func (v *canvasPreview) swap(png []byte) {
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(png))
	v.label.Configure(Image(v.prevPhoto))
}
