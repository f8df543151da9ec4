package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoad_JSONAndTOML(t *testing.T) {
	for _, name := range []string{"fanim.json", "fanim.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := DefaultConfig()
			want.FramesPerSecond = 12
			want.Replay = true
			want.OnionskinEnabled = true
			want.OnionskinForward = true
			want.OnionskinDepth = 3
			if err := want.Save(path); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_TOMLPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fanim.toml")
	if err := os.WriteFile(path, []byte("frames_per_second = 8\nonionskin_enabled = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FramesPerSecond != 8 || !cfg.OnionskinEnabled {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.OnionskinDepth != 2 || cfg.OnionskinOpacity != 50 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fanim.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if cfg == nil || cfg.FramesPerSecond != 30 {
		t.Fatalf("expected defaults on error, got %+v", cfg)
	}
}

func TestValidate_Clamps(t *testing.T) {
	c := &Config{FramesPerSecond: -1, FrameDelay: -2, OnionskinDepth: 0, OnionskinOpacity: 300, OnionskinDecay: -5, ActiveOpacity: 0, ThumbnailSize: 2}
	_ = c.Validate()
	want := &Config{FramesPerSecond: 30, FrameDelay: 0, OnionskinDepth: 1, OnionskinOpacity: 50, OnionskinDecay: 0, ActiveOpacity: 100, ThumbnailSize: 100}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("validate mismatch (-want +got):\n%s", diff)
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fanim.json")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan *Config, 4)
	go func() {
		_ = Watch(ctx, path, nil, func(c *Config, err error) {
			if err == nil {
				got <- c
			}
		})
	}()
	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	next := DefaultConfig()
	next.FramesPerSecond = 5
	if err := next.Save(path); err != nil {
		t.Fatal(err)
	}
	select {
	case c := <-got:
		if c.FramesPerSecond != 5 {
			t.Fatalf("expected reloaded fps 5, got %v", c.FramesPerSecond)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timeout waiting for reload")
	}
}
