package config

import "testing"

func TestSetGet_EditableFields(t *testing.T) {
	cfg := DefaultConfig()
	for _, f := range EditableFields {
		v, err := cfg.Get(f.Key)
		if err != nil {
			t.Fatalf("get %s: %v", f.Key, err)
		}
		if err := cfg.Set(f.Key, v); err != nil {
			t.Fatalf("set %s=%q: %v", f.Key, v, err)
		}
	}
	if *cfg != *DefaultConfig() {
		t.Fatalf("get/set changed the config: %+v", cfg)
	}
}

func TestSet_ParsesValues(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Set("fps", " 15 "); err != nil || cfg.FPS != 15 {
		t.Fatalf("fps %v err %v", cfg.FPS, err)
	}
	if err := cfg.Set("codec", "h264"); err != nil || cfg.Codec != "H264" {
		t.Fatalf("codec %q err %v", cfg.Codec, err)
	}
	if err := cfg.Set("keep_temp", "yes"); err != nil || !cfg.KeepTemp {
		t.Fatalf("keep_temp %v err %v", cfg.KeepTemp, err)
	}
}

func TestSet_RejectsBadInput(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Set("fps", "fast"); err == nil || cfg.FPS != 30 {
		t.Fatalf("bad fps accepted: %v (fps %v)", err, cfg.FPS)
	}
	if err := cfg.Set("show_cursor", "maybe"); err == nil || !cfg.ShowCursor {
		t.Fatalf("bad bool accepted: %v", err)
	}
	if err := cfg.Set("threshold", "1"); err == nil {
		t.Fatal("unknown key accepted")
	}
	if _, err := cfg.Get("threshold"); err == nil {
		t.Fatal("unknown key readable")
	}
}
