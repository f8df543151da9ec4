package view

import (
	"image"

	"github.com/soocke/fanim-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// FrameStrip is the row of frame thumbnails. Clicking one selects the frame.
type FrameStrip interface {
	SetThumbnail(index int, img image.Image)
	Highlight(index int)
}

type frameStrip struct {
	frame    *FrameWidget
	cells    []*LabelWidget
	photos   []*Img
	selected int
}

// stripColumns is the number of thumbnails per strip row.
const stripColumns = 12

// NewFrameStrip grids count placeholder cells of size x size pixels into a
// frame at row. onSelect receives the clicked frame index.
func NewFrameStrip(row, count, size int, onSelect func(index int)) FrameStrip {
	s := &frameStrip{
		frame:    Frame(Borderwidth(1), Relief("groove")),
		cells:    make([]*LabelWidget, count),
		photos:   make([]*Img, count),
		selected: -1,
	}
	Grid(s.frame, Row(row), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	blank := images.EncodePNG(image.NewRGBA(image.Rect(0, 0, size, size)))
	for i := 0; i < count; i++ {
		idx := i
		s.photos[i] = NewPhoto(Data(blank))
		cell := Label(Image(s.photos[i]), Borderwidth(2), Relief("flat"))
		Grid(cell, In(s.frame), Row(i/stripColumns), Column(i%stripColumns), Padx("0.2m"), Pady("0.2m"))
		Bind(cell, "<Button-1>", Command(func() {
			if onSelect != nil {
				onSelect(idx)
			}
		}))
		s.cells[i] = cell
	}
	if count == 0 {
		Grid(Label(Txt("No frames")), In(s.frame), Row(0), Column(0))
	}
	return s
}

func (s *frameStrip) SetThumbnail(index int, img image.Image) {
	if s == nil || index < 0 || index >= len(s.cells) || img == nil {
		return
	}
	if s.photos[index] != nil {
		s.photos[index].Delete()
	}
	s.photos[index] = NewPhoto(Data(images.EncodePNG(img)))
	s.cells[index].Configure(Image(s.photos[index]))
}

func (s *frameStrip) Highlight(index int) {
	if s == nil {
		return
	}
	if s.selected >= 0 && s.selected < len(s.cells) {
		s.cells[s.selected].Configure(Relief("flat"))
	}
	if index >= 0 && index < len(s.cells) {
		s.cells[index].Configure(Relief("solid"))
		s.selected = index
	}
}
