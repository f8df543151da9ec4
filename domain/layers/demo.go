package layers

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// Demo returns a stack of n frames showing a ball travelling once around a
// circle. It is used when no frame source is given.
func Demo(n, w, h int, logger *slog.Logger) *Stack {
	if n < 1 {
		n = 1
	}
	s := NewStack("demo", logger)
	r := min(w, h) / 10
	if r < 2 {
		r = 2
	}
	cx, cy := float64(w)/2, float64(h)/2
	orbit := math.Min(cx, cy) - float64(r) - 1
	for i := 0; i < n; i++ {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		a := 2 * math.Pi * float64(i) / float64(n)
		x := int(cx + orbit*math.Cos(a))
		y := int(cy + orbit*math.Sin(a))
		disc(img, image.Pt(x, y), r, color.RGBA{R: 0xe0, G: 0x40, B: 0x30, A: 0xff})
		s.Add(NewLayer(fmt.Sprintf("Frame %d", i+1), img))
	}
	return s
}

// disc fills a circle of radius r centred on c.
func disc(dst draw.Image, c image.Point, r int, col color.Color) {
	src := &image.Uniform{C: col}
	for dy := -r; dy <= r; dy++ {
		half := int(math.Sqrt(float64(r*r - dy*dy)))
		row := image.Rect(c.X-half, c.Y+dy, c.X+half+1, c.Y+dy+1)
		draw.Draw(dst, row, src, image.Point{}, draw.Src)
	}
}
