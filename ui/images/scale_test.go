package images

import (
	"image"
	"image/color"
	"testing"
)

func TestScaleToFit_KeepsSmallImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 10))
	if got := ScaleToFit(src, 100, 100); got != image.Image(src) {
		t.Fatalf("expected original image to be returned")
	}
}

func TestScaleToFit_PreservesAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	got := ScaleToFit(src, 100, 100)
	if b := got.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("expected 100x50, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestFitRect_MinimumSize(t *testing.T) {
	r := FitRect(image.Rect(0, 0, 1000, 1), 10, 10)
	if r.Dx() != 10 || r.Dy() != 1 {
		t.Fatalf("expected 10x1, got %v", r)
	}
	if r := FitRect(image.Rectangle{}, 10, 10); r.Dx() != 1 || r.Dy() != 1 {
		t.Fatalf("expected 1x1 for empty source, got %v", r)
	}
}

func TestThumbnail_CentresOnFixedCanvas(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	th := Thumbnail(src, 40, 40)
	if b := th.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Fatalf("expected 40x40 canvas, got %v", b)
	}
	// 20x10 scales to 40x20, centred vertically at rows 10..30.
	if c := th.RGBAAt(20, 20); c.R != 255 || c.A != 255 {
		t.Fatalf("expected red in centre, got %v", c)
	}
	if c := th.RGBAAt(20, 2); c.A != 0 {
		t.Fatalf("expected transparent padding, got %v", c)
	}
}

func TestEncodePNG_Nil(t *testing.T) {
	if b := EncodePNG(nil); b != nil {
		t.Fatalf("expected nil for nil image")
	}
	if b := EncodePNG(image.NewRGBA(image.Rect(0, 0, 2, 2))); len(b) == 0 {
		t.Fatalf("expected png bytes")
	}
}
