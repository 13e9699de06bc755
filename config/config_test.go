package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soocke/screen-recorder-go/domain/audio"
	"github.com/soocke/screen-recorder-go/domain/capture"
	"github.com/soocke/screen-recorder-go/domain/video"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := DefaultConfig()
	if cfg.FPS != def.FPS || cfg.Codec != def.Codec || cfg.AudioGain != def.AudioGain || cfg.FilenamePrefix != def.FilenamePrefix {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestSaveLoad_RoundTripAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.json")
	cfg := DefaultConfig()
	cfg.FPS = 24
	cfg.Codec = "h264"
	cfg.AudioSource = "both"
	cfg.SetRegion(capture.Region{Left: 10, Top: 20, Width: 300, Height: 200})
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.FPS != 24 || got.VideoCodec() != video.CodecH264 || got.Mode() != audio.ModeBoth {
		t.Fatalf("round trip lost values: %+v", got)
	}
	if r := got.Region(); r != (capture.Region{Left: 10, Top: 20, Width: 300, Height: 200}) {
		t.Fatalf("region %v", r)
	}

	t.Setenv("SCREENREC_FPS", "15")
	got, err = Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.FPS != 15 {
		t.Fatalf("env override ignored: fps=%v", got.FPS)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if cfg == nil || cfg.FPS != 30 {
		t.Fatalf("defaults expected alongside error, got %+v", cfg)
	}
}

func TestValidate_Normalizes(t *testing.T) {
	c := &Config{FPS: -1, Codec: "divx", AudioSource: "webcam", AudioGain: 0, SelectionW: -5}
	_ = c.Validate()
	if c.FPS != 30 || c.Codec != "MJPG" || c.AudioSource != "None" || c.AudioGain != audio.DefaultGain {
		t.Fatalf("not normalized: %+v", c)
	}
	if !c.Region().FullScreen() {
		t.Fatal("negative selection should fall back to full screen")
	}
	if c.FilenamePrefix != "ScreenRecord" {
		t.Fatalf("prefix %q", c.FilenamePrefix)
	}
}

func TestResolveOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	c := &Config{OutputDir: dir}
	if got := c.ResolveOutputDir(); got != dir {
		t.Fatalf("got %s want %s", got, dir)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Fatalf("dir not created: %v", err)
	}

	// a regular file in the way forces the fallback
	blocker := filepath.Join(t.TempDir(), "file")
	_ = os.WriteFile(blocker, nil, 0o644)
	c = &Config{OutputDir: filepath.Join(blocker, "sub")}
	wd, _ := os.Getwd()
	if got := c.ResolveOutputDir(); got != wd {
		t.Fatalf("fallback %s, want cwd %s", got, wd)
	}
}
