package layers

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/draw"
)

// GIF disposal methods.
const (
	restoreBackground = 2
	restorePrevious   = 3
)

// ErrEmpty is returned when a source yields no frames.
var ErrEmpty = errors.New("no frames found")

// FromImages builds a stack with one layer per image, named "Frame N".
func FromImages(name string, logger *slog.Logger, imgs []image.Image) (*Stack, error) {
	if len(imgs) == 0 {
		return nil, ErrEmpty
	}
	s := NewStack(name, logger)
	for i, img := range imgs {
		s.Add(NewLayer(fmt.Sprintf("Frame %d", i+1), img))
	}
	return s, nil
}

// LoadGIF decodes an animated GIF from path and returns one fully rendered
// layer per frame, honouring the frame disposal methods.
func LoadGIF(path string, logger *slog.Logger) (*Stack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	frames, err := DecodeGIFFrames(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return FromImages(filepath.Base(path), logger, frames)
}

// DecodeGIFFrames renders every frame of the GIF in r onto a canvas of the
// logical screen size and returns a copy of the canvas after each frame.
func DecodeGIFFrames(r io.Reader) ([]image.Image, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, ErrEmpty
	}
	if g.Disposal != nil && len(g.Disposal) != len(g.Image) {
		return nil, fmt.Errorf("mismatched image count and disposal count: %d != %d", len(g.Image), len(g.Disposal))
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
		for _, fr := range g.Image[1:] {
			bounds = bounds.Union(fr.Bounds())
		}
	}
	var background image.Image = image.Transparent
	if pal, ok := g.Config.ColorModel.(color.Palette); ok {
		if idx := int(g.BackgroundIndex); idx < len(pal) {
			background = &image.Uniform{C: pal[idx]}
		}
	}

	canvas := image.NewRGBA(bounds)
	out := make([]image.Image, 0, len(g.Image))
	for i, frame := range g.Image {
		var restore *image.RGBA
		if g.Disposal != nil && g.Disposal[i] == restorePrevious {
			restore = image.NewRGBA(frame.Bounds())
			draw.Copy(restore, restore.Bounds().Min, canvas, frame.Bounds(), draw.Src, nil)
		}
		draw.Copy(canvas, frame.Bounds().Min, frame, frame.Bounds(), draw.Over, nil)

		snap := image.NewRGBA(bounds)
		draw.Copy(snap, bounds.Min, canvas, bounds, draw.Src, nil)
		out = append(out, snap)

		if g.Disposal == nil {
			continue
		}
		switch g.Disposal[i] {
		case restoreBackground:
			draw.Copy(canvas, frame.Bounds().Min, background, frame.Bounds(), draw.Src, nil)
		case restorePrevious:
			draw.Copy(canvas, frame.Bounds().Min, restore, restore.Bounds(), draw.Src, nil)
		}
	}
	return out, nil
}

var imageExt = map[string]bool{".png": true, ".gif": true, ".jpg": true, ".jpeg": true}

// LoadDir loads every PNG, GIF or JPEG file in dir as one layer, ordered by
// file name. Multi-frame GIFs contribute their first frame only.
func LoadDir(dir string, logger *slog.Logger) (*Stack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !imageExt[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrEmpty)
	}
	sort.Strings(names)

	s := NewStack(filepath.Base(dir), logger)
	for _, name := range names {
		img, err := decodeFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		s.Add(NewLayer(strings.TrimSuffix(name, filepath.Ext(name)), img))
	}
	s.logger.Info("frames loaded", "dir", dir, "count", len(names))
	return s, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(bufio.NewReader(f))
	return img, err
}
