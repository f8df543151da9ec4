package images

import (
	"bytes"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// FitRect returns the largest rectangle with src's aspect ratio that fits
// within maxW x maxH, anchored at the origin. Both sides are at least 1.
func FitRect(src image.Rectangle, maxW, maxH int) image.Rectangle {
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	w, h := src.Dx(), src.Dy()
	if w <= 0 || h <= 0 {
		return image.Rect(0, 0, 1, 1)
	}
	ratioW := float64(maxW) / float64(w)
	ratioH := float64(maxH) / float64(h)
	ratio := ratioW
	if ratioH < ratio {
		ratio = ratioH
	}
	newW := int(float64(w)*ratio + 0.5)
	newH := int(float64(h)*ratio + 0.5)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return image.Rect(0, 0, newW, newH)
}

// ScaleToFit scales src so that the returned image fits within maxW x maxH
// preserving aspect ratio. If the source already fits, the original is returned.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	dst := image.NewRGBA(FitRect(b, maxW, maxH))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Thumbnail scales src to fit w x h, centred on a transparent w x h canvas,
// so every frame in a strip has the same footprint. Unlike ScaleToFit it also
// scales up.
func Thumbnail(src image.Image, w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if src == nil {
		return dst
	}
	fit := FitRect(src.Bounds(), w, h)
	offset := image.Point{X: (w - fit.Dx()) / 2, Y: (h - fit.Dy()) / 2}
	draw.ApproxBiLinear.Scale(dst, fit.Add(offset), src, src.Bounds(), draw.Src, nil)
	return dst
}
