package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds runtime configuration for playback and onionskin review.
// Fields may be loaded from a JSON or TOML file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug" toml:"debug"`

	// Playback
	FramesPerSecond float64 `json:"frames_per_second" toml:"frames_per_second"`
	FrameDelay      float64 `json:"frame_delay" toml:"frame_delay"` // extra seconds between frames
	Replay          bool    `json:"replay" toml:"replay"`

	// Onionskin
	OnionskinEnabled       bool    `json:"onionskin_enabled" toml:"onionskin_enabled"`
	OnionskinDepth         int     `json:"onionskin_depth" toml:"onionskin_depth"`
	OnionskinBackward      bool    `json:"onionskin_backward" toml:"onionskin_backward"`
	OnionskinForward       bool    `json:"onionskin_forward" toml:"onionskin_forward"`
	OnionskinOpacity       float64 `json:"onionskin_opacity" toml:"onionskin_opacity"`
	OnionskinDecay         float64 `json:"onionskin_decay" toml:"onionskin_decay"`
	OnionskinDisableOnPlay bool    `json:"onionskin_disable_on_play" toml:"onionskin_disable_on_play"`
	ActiveOpacity          float64 `json:"active_opacity" toml:"active_opacity"`

	// Frame strip
	ThumbnailSize int `json:"thumbnail_size" toml:"thumbnail_size"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                  false,
		FramesPerSecond:        30,
		FrameDelay:             0.01,
		Replay:                 false,
		OnionskinEnabled:       false,
		OnionskinDepth:         2,
		OnionskinBackward:      true,
		OnionskinForward:       false,
		OnionskinOpacity:       50.0,
		OnionskinDecay:         20.0,
		OnionskinDisableOnPlay: true,
		ActiveOpacity:          100.0,
		ThumbnailSize:          100,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.FramesPerSecond <= 0 {
		c.FramesPerSecond = 30
	}
	if c.FramesPerSecond > 240 {
		c.FramesPerSecond = 240
	}
	if c.FrameDelay < 0 {
		c.FrameDelay = 0
	}
	if c.OnionskinDepth < 1 {
		c.OnionskinDepth = 1
	}
	if c.OnionskinOpacity < 0 || c.OnionskinOpacity > 100 {
		c.OnionskinOpacity = 50
	}
	if c.OnionskinDecay < 0 {
		c.OnionskinDecay = 0
	}
	if c.ActiveOpacity <= 0 || c.ActiveOpacity > 100 {
		c.ActiveOpacity = 100
	}
	if c.ThumbnailSize < 16 {
		c.ThumbnailSize = 100
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load attempts to read configuration from the given path. Files ending in
// .toml are decoded as TOML, anything else as JSON. If the file does not
// exist it returns DefaultConfig(). On decode error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	if isTOML(path) {
		if _, err := toml.NewDecoder(f).Decode(cfg); err != nil {
			return DefaultConfig(), err
		}
	} else {
		dec := json.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return DefaultConfig(), err
		}
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON or TOML format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if isTOML(path) {
		return toml.NewEncoder(f).Encode(c)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
