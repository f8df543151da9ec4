package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/soocke/fanim-go/app"
	"github.com/soocke/fanim-go/config"
	"github.com/soocke/fanim-go/debug"
)

func main() {
	var (
		cfgPath  = flag.String("config", "fanim.json", "config file (.json or .toml)")
		gifPath  = flag.String("gif", "", "animated GIF to open")
		dir      = flag.String("dir", "", "directory of frame images, ordered by name")
		nCapture = flag.Int("capture", 0, "record this many screen frames")
		interval = flag.Duration("capture-interval", 100*time.Millisecond, "time between screen frames")
		region   = flag.String("region", "", "capture region as x,y,w,h")
		fps      = flag.Float64("fps", 0, "frames per second, overrides the config")
		replay   = flag.Bool("replay", false, "loop playback, overrides the config")
		demo     = flag.Int("demo", 12, "frames in the demo animation when no source is given")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fps":
			cfg.FramesPerSecond = *fps
		case "replay":
			cfg.Replay = *replay
		}
	})
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(2)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if cfg.Debug {
		debug.StartGoroutineLogger(ctx, 5*time.Second, logger)
		debug.StartMemLogger(ctx, 5*time.Second, logger)
	}

	src := app.Source{
		GIF:             *gifPath,
		Dir:             *dir,
		Capture:         *nCapture,
		CaptureInterval: *interval,
		DemoFrames:      *demo,
	}
	if *region != "" {
		r, err := parseRegion(*region)
		if err != nil {
			logger.Error("bad -region", "error", err)
			os.Exit(2)
		}
		src.CaptureRect = &r
	}

	stack, err := app.LoadFrames(ctx, src, logger)
	if err != nil {
		logger.Error("load frames", "error", err)
		os.Exit(1)
	}
	if err := runWindow(ctx, cfg, *cfgPath, stack, logger); err != nil {
		logger.Error("player", "error", err)
		os.Exit(1)
	}
}

func parseRegion(s string) (image.Rectangle, error) {
	var x, y, w, h int
	if _, err := fmt.Sscanf(s, "%d,%d,%d,%d", &x, &y, &w, &h); err != nil {
		return image.Rectangle{}, fmt.Errorf("want x,y,w,h: %w", err)
	}
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, fmt.Errorf("region %q is empty", s)
	}
	return image.Rect(x, y, x+w, y+h), nil
}
