package app

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/fanim-go/domain/capture"
	"github.com/soocke/fanim-go/domain/layers"
)

// Source selects where the frames come from. At most one of GIF, Dir and
// Capture may be set; with none set a demo animation is generated.
type Source struct {
	GIF             string
	Dir             string
	Capture         int // number of screen frames to record
	CaptureInterval time.Duration
	CaptureRect     *image.Rectangle
	Grabber         capture.Grabber

	DemoFrames int
	DemoSize   image.Point
}

// ErrSourceConflict is returned when more than one frame source is given.
var ErrSourceConflict = errors.New("choose only one of -gif, -dir and -capture")

// LoadFrames builds the layer stack for src.
func LoadFrames(ctx context.Context, src Source, logger *slog.Logger) (*layers.Stack, error) {
	set := 0
	for _, on := range []bool{src.GIF != "", src.Dir != "", src.Capture > 0} {
		if on {
			set++
		}
	}
	if set > 1 {
		return nil, ErrSourceConflict
	}
	switch {
	case src.GIF != "":
		return layers.LoadGIF(src.GIF, logger)
	case src.Dir != "":
		return layers.LoadDir(src.Dir, logger)
	case src.Capture > 0:
		interval := src.CaptureInterval
		if interval <= 0 {
			interval = 100 * time.Millisecond
		}
		rec := capture.NewRecorder(logger, src.Grabber, src.CaptureRect)
		frames, err := rec.Sequence(ctx, src.Capture, interval)
		if err != nil {
			return nil, err
		}
		return layers.FromImages("capture", logger, frames)
	default:
		n := src.DemoFrames
		if n <= 0 {
			n = 12
		}
		size := src.DemoSize
		if size.X <= 0 || size.Y <= 0 {
			size = image.Pt(320, 240)
		}
		return layers.Demo(n, size.X, size.Y, logger), nil
	}
}
