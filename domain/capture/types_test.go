package capture

import (
	"image"
	"testing"
)

func TestRegion_FullScreenAndRect(t *testing.T) {
	var zero Region
	if !zero.FullScreen() || zero.String() != "fullscreen" {
		t.Fatalf("zero region should be the full screen sentinel")
	}
	r := Region{Left: 10, Top: 20, Width: 640, Height: 480}
	if r.FullScreen() {
		t.Fatalf("sized region reported as full screen")
	}
	if got := r.Rect(); got != image.Rect(10, 20, 650, 500) {
		t.Fatalf("rect %v", got)
	}
	if RegionFromRect(r.Rect()) != r {
		t.Fatalf("round trip through rectangle changed region")
	}
	if r.String() != "640x480+10+20" {
		t.Fatalf("string %q", r.String())
	}
}

func TestFramePool_ReuseResizes(t *testing.T) {
	f := NewFrame(8, 8)
	f.Pix[0] = 0xFF
	RecycleFrame(f)
	g := NewFrame(4, 2)
	if len(g.Pix) != 4*2*3 || g.Width != 4 || g.Height != 2 {
		t.Fatalf("unexpected frame %dx%d len=%d", g.Width, g.Height, len(g.Pix))
	}
	if g.Pix[0] != 0 {
		t.Fatalf("NewFrame must return a black frame")
	}
	RecycleFrame(nil)
}
