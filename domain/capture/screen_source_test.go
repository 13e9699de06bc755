package capture

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"testing"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// newTestSource returns a source over a fake 100x80 screen filled with a
// solid colour.
func newTestSource(showCursor bool, cursor CursorLocator) (*ScreenSource, *[]image.Rectangle) {
	screen := image.Rect(0, 0, 100, 80)
	var calls []image.Rectangle
	s := &ScreenSource{
		logger:     discardLogger,
		cursor:     cursor,
		screenRect: func() (image.Rectangle, error) { return screen, nil },
		captureRect: func(r image.Rectangle) (*image.RGBA, error) {
			calls = append(calls, r)
			img := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
			for y := 0; y < r.Dy(); y++ {
				for x := 0; x < r.Dx(); x++ {
					img.SetRGBA(x, y, color.RGBA{10, 20, 30, 255})
				}
			}
			return img, nil
		},
	}
	s.SetShowCursor(showCursor)
	return s, &calls
}

func pixel(f *Frame, x, y int) [3]byte {
	o := y*f.Stride() + x*3
	return [3]byte{f.Pix[o], f.Pix[o+1], f.Pix[o+2]}
}

func TestScreenSource_FrameMatchesRegion(t *testing.T) {
	s, _ := newTestSource(false, nil)
	for _, r := range []Region{{0, 0, 64, 48}, {10, 5, 1, 1}, {0, 0, 100, 80}} {
		f, err := s.Grab(r)
		if err != nil {
			t.Fatalf("grab %v: %v", r, err)
		}
		if f.Width != r.Width || f.Height != r.Height || len(f.Pix) != r.Width*r.Height*3 {
			t.Fatalf("frame %dx%d (len %d) for region %v", f.Width, f.Height, len(f.Pix), r)
		}
		if got := pixel(f, 0, 0); got != [3]byte{10, 20, 30} {
			t.Fatalf("unexpected pixel %v", got)
		}
		RecycleFrame(f)
	}
}

func TestScreenSource_ClipsOutOfBoundsRegion(t *testing.T) {
	s, calls := newTestSource(false, nil)
	f, err := s.Grab(Region{Left: 90, Top: 70, Width: 20, Height: 20})
	if err != nil {
		t.Fatalf("grab: %v", err)
	}
	if f.Width != 20 || f.Height != 20 {
		t.Fatalf("expected 20x20 frame, got %dx%d", f.Width, f.Height)
	}
	if len(*calls) != 1 || (*calls)[0] != image.Rect(90, 70, 100, 80) {
		t.Fatalf("expected clipped capture rect, got %v", *calls)
	}
	if got := pixel(f, 5, 5); got != [3]byte{10, 20, 30} {
		t.Fatalf("inside pixel %v", got)
	}
	if got := pixel(f, 15, 15); got != [3]byte{} {
		t.Fatalf("outside pixel should be black, got %v", got)
	}

	// entirely off screen: black frame, no platform call
	*calls = nil
	f, err = s.Grab(Region{Left: 500, Top: 500, Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("off-screen grab: %v", err)
	}
	if len(*calls) != 0 || pixel(f, 0, 0) != [3]byte{} {
		t.Fatalf("off-screen grab should be black without capture calls")
	}
}

func TestScreenSource_RejectsInvalidRegion(t *testing.T) {
	s, _ := newTestSource(false, nil)
	if _, err := s.Grab(Region{Width: 0, Height: 10}); !errors.Is(err, ErrInvalidRegion) {
		t.Fatalf("expected ErrInvalidRegion, got %v", err)
	}
	if _, err := s.Grab(Region{Width: 10, Height: -1}); !errors.Is(err, ErrInvalidRegion) {
		t.Fatalf("expected ErrInvalidRegion, got %v", err)
	}
}

func TestScreenSource_CursorOverlay(t *testing.T) {
	cur := CursorFunc(func() (int, int, error) { return 30, 25, nil })
	s, _ := newTestSource(true, cur)
	f, err := s.Grab(Region{Left: 20, Top: 20, Width: 40, Height: 30})
	if err != nil {
		t.Fatalf("grab: %v", err)
	}
	// cursor at (10,5) region-relative
	if got := pixel(f, 10, 5); got != cursorFill {
		t.Fatalf("centre pixel %v, want fill", got)
	}
	if got := pixel(f, 15, 5); got != cursorOutline {
		t.Fatalf("edge pixel %v, want outline", got)
	}
	if got := pixel(f, 30, 20); got != [3]byte{10, 20, 30} {
		t.Fatalf("far pixel touched: %v", got)
	}
}

func TestScreenSource_CursorFailureIsNonFatal(t *testing.T) {
	calls := 0
	cur := CursorFunc(func() (int, int, error) { calls++; return 0, 0, ErrCursorUnavailable })
	s, _ := newTestSource(true, cur)
	for i := 0; i < 3; i++ {
		if _, err := s.Grab(Region{Width: 10, Height: 10}); err != nil {
			t.Fatalf("grab should succeed without cursor: %v", err)
		}
	}
	if calls != 3 {
		t.Fatalf("expected cursor lookup per frame, got %d", calls)
	}
}

func TestScreenSource_CaptureErrorPropagates(t *testing.T) {
	s, _ := newTestSource(false, nil)
	boom := errors.New("display gone")
	s.captureRect = func(image.Rectangle) (*image.RGBA, error) { return nil, boom }
	if _, err := s.Grab(Region{Width: 4, Height: 4}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped capture error, got %v", err)
	}
}

func TestScreenSource_BoundsLookedUpOncePerSession(t *testing.T) {
	s, _ := newTestSource(false, nil)
	lookups := 0
	s.screenRect = func() (image.Rectangle, error) {
		lookups++
		return image.Rect(0, 0, 100, 80), nil
	}
	for i := 0; i < 5; i++ {
		f, err := s.Grab(Region{Left: 0, Top: 0, Width: 32, Height: 32})
		if err != nil {
			t.Fatalf("grab: %v", err)
		}
		RecycleFrame(f)
	}
	if lookups != 1 {
		t.Fatalf("screen bounds looked up %d times, want 1", lookups)
	}
	s.ResetBounds()
	f, _ := s.Grab(Region{Left: 0, Top: 0, Width: 32, Height: 32})
	RecycleFrame(f)
	if lookups != 2 {
		t.Fatalf("lookups after reset %d, want 2", lookups)
	}
}

func TestScreenSource_FailedBoundsLookupRetried(t *testing.T) {
	s, calls := newTestSource(false, nil)
	lookups := 0
	s.screenRect = func() (image.Rectangle, error) {
		lookups++
		if lookups == 1 {
			return image.Rectangle{}, errors.New("display busy")
		}
		return image.Rect(0, 0, 100, 80), nil
	}
	r := Region{Left: 90, Top: 0, Width: 20, Height: 10}
	for i := 0; i < 3; i++ {
		f, err := s.Grab(r)
		if err != nil {
			t.Fatalf("grab: %v", err)
		}
		RecycleFrame(f)
	}
	if lookups != 2 {
		t.Fatalf("lookups %d, want 2", lookups)
	}
	if got := (*calls)[len(*calls)-1]; got != image.Rect(90, 0, 100, 10) {
		t.Fatalf("last capture %v not clipped to the display", got)
	}
}

func TestDrawCursor_OutsideFrameIsIgnored(t *testing.T) {
	f := NewFrame(4, 4)
	DrawCursor(f, -1, 2)
	DrawCursor(f, 4, 0)
	for i, b := range f.Pix {
		if b != 0 {
			t.Fatalf("byte %d modified", i)
		}
	}
}
