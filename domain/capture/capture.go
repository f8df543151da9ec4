// Package capture grabs screen frames to seed a layer stack.
package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// Grabber captures one frame. A nil rect means the whole screen.
type Grabber func(rect *image.Rectangle) (*image.RGBA, error)

// Grab returns a screen capture of the current active monitor.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	return img, nil
}

// GrabSelection captures sel clipped to the screen bounds.
func GrabSelection(sel image.Rectangle) (*image.RGBA, error) {
	if sel.Empty() {
		return nil, errors.New("capture: empty selection")
	}
	screen, err := screenshot.ScreenRect()
	if err != nil {
		return nil, fmt.Errorf("capture: screen rect: %w", err)
	}
	r := sel.Intersect(screen)
	if r.Empty() {
		return nil, fmt.Errorf("capture: selection out of bounds sel=%v screen=%v", sel, screen)
	}
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	return img, nil
}

// ScreenGrabber grabs from the real screen.
func ScreenGrabber(rect *image.Rectangle) (*image.RGBA, error) {
	if rect != nil && !rect.Empty() {
		return GrabSelection(*rect)
	}
	return Grab()
}
