package capture

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"
	"time"
)

// Stats summarises a capture run.
type Stats struct {
	Captures   uint64
	Skipped    uint64
	AvgCapture time.Duration
}

// Recorder captures a fixed number of frames at a fixed interval.
type Recorder struct {
	logger *slog.Logger
	grab   Grabber
	rect   *image.Rectangle

	captures     atomic.Uint64
	skipped      atomic.Uint64
	captureNanos atomic.Uint64
}

// NewRecorder returns a recorder using grab. rect limits capture to a
// region; nil captures the whole screen.
func NewRecorder(logger *slog.Logger, grab Grabber, rect *image.Rectangle) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if grab == nil {
		grab = ScreenGrabber
	}
	return &Recorder{logger: logger, grab: grab, rect: rect}
}

// Stats returns counters for the runs so far.
func (r *Recorder) Stats() Stats {
	captures := r.captures.Load()
	var avg time.Duration
	if captures > 0 {
		avg = time.Duration(r.captureNanos.Load() / captures)
	}
	return Stats{Captures: captures, Skipped: r.skipped.Load(), AvgCapture: avg}
}

// Sequence grabs n frames, waiting interval between the start of each grab.
// A failed grab is logged and retried on the next tick; the run ends with an
// error when ctx is done before n frames were taken.
func (r *Recorder) Sequence(ctx context.Context, n int, interval time.Duration) ([]image.Image, error) {
	if n <= 0 {
		return nil, fmt.Errorf("capture: frame count must be positive: %d", n)
	}
	frames := make([]image.Image, 0, n)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		start := time.Now()
		img, err := r.grab(r.rect)
		if err != nil {
			r.skipped.Add(1)
			r.logger.Error("capture frame", "error", err)
		} else {
			r.captureNanos.Add(uint64(time.Since(start).Nanoseconds()))
			r.captures.Add(1)
			frames = append(frames, img)
			if len(frames) == n {
				st := r.Stats()
				r.logger.Info("capture finished", "frames", n, "skipped", st.Skipped, "avg_capture", st.AvgCapture)
				return frames, nil
			}
		}
		select {
		case <-ctx.Done():
			return frames, fmt.Errorf("capture: stopped after %d of %d frames: %w", len(frames), n, ctx.Err())
		case <-ticker.C:
		}
	}
}
