package capture

import (
	"errors"
	"testing"
)

func TestParseRegion(t *testing.T) {
	cases := map[string]Region{
		"":                {},
		"fullscreen":      {},
		"10,20,640,480":   {Left: 10, Top: 20, Width: 640, Height: 480},
		" 0, 0, 1, 1 ":    {Width: 1, Height: 1},
		"640x480+10+20":   {Left: 10, Top: 20, Width: 640, Height: 480},
		"800x600+-1920+0": {Left: -1920, Width: 800, Height: 600},
		"800x600-5+0":     {Left: -5, Width: 800, Height: 600},
	}
	for in, want := range cases {
		got, err := ParseRegion(in)
		if err != nil || got != want {
			t.Fatalf("ParseRegion(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}

func TestParseRegion_Invalid(t *testing.T) {
	for _, in := range []string{"10,20,0,480", "0x0+0+0", "abc", "1,2,3"} {
		if _, err := ParseRegion(in); !errors.Is(err, ErrInvalidRegion) {
			t.Fatalf("ParseRegion(%q) err = %v, want ErrInvalidRegion", in, err)
		}
	}
}
