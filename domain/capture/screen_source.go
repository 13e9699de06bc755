package capture

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vova616/screenshot"
)

// ScreenSource grabs regions of the primary display using the screenshot
// library and optionally draws a cursor marker onto each frame.
type ScreenSource struct {
	logger     *slog.Logger
	showCursor atomic.Bool
	cursor     CursorLocator

	// seams for tests
	captureRect func(image.Rectangle) (*image.RGBA, error)
	screenRect  func() (image.Rectangle, error)

	cursorFailed atomic.Bool

	boundsMu sync.Mutex
	bounds   image.Rectangle // zero until the first successful lookup
}

// NewScreenSource returns a FrameSource backed by the platform screen.
// When showCursor is set the platform cursor locator is used for the overlay.
func NewScreenSource(logger *slog.Logger, showCursor bool) *ScreenSource {
	s := &ScreenSource{
		logger:      logger,
		cursor:      NewCursorLocator(),
		captureRect: screenshot.CaptureRect,
		screenRect:  screenshot.ScreenRect,
	}
	s.showCursor.Store(showCursor)
	return s
}

// SetShowCursor toggles the cursor overlay for subsequent grabs.
func (s *ScreenSource) SetShowCursor(show bool) { s.showCursor.Store(show) }

// SetCursorLocator overrides the locator used for the cursor overlay.
func (s *ScreenSource) SetCursorLocator(c CursorLocator) { s.cursor = c }

// ResetBounds drops the cached display rectangle so the next grab looks it
// up again. Call it when a new recording starts.
func (s *ScreenSource) ResetBounds() {
	s.boundsMu.Lock()
	s.bounds = image.Rectangle{}
	s.boundsMu.Unlock()
}

// screen returns the display rectangle, querying the platform only until a
// lookup succeeds.
func (s *ScreenSource) screen() (image.Rectangle, bool) {
	if s.screenRect == nil {
		return image.Rectangle{}, false
	}
	s.boundsMu.Lock()
	defer s.boundsMu.Unlock()
	if s.bounds.Empty() {
		rect, err := s.screenRect()
		if err != nil || rect.Empty() {
			return image.Rectangle{}, false
		}
		s.bounds = rect
	}
	return s.bounds, true
}

// ScreenBounds returns the primary display rectangle.
func ScreenBounds() (image.Rectangle, error) {
	return screenshot.ScreenRect()
}

// Resolve turns the full screen sentinel into the primary display bounds and
// validates any other region.
func Resolve(r Region) (Region, error) {
	if !r.FullScreen() {
		return r, r.Validate()
	}
	rect, err := ScreenBounds()
	if err != nil {
		return Region{}, fmt.Errorf("capture: screen bounds: %w", err)
	}
	out := RegionFromRect(rect)
	return out, out.Validate()
}

// Grab captures r. The returned frame always has r's dimensions: the part of
// r outside the display stays black. Cursor lookup failures are ignored.
func (s *ScreenSource) Grab(r Region) (*Frame, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	frame := NewFrame(r.Width, r.Height)
	want := r.Rect()
	clip := want
	if screen, ok := s.screen(); ok {
		clip = want.Intersect(screen)
	}
	if !clip.Empty() {
		img, err := s.captureRect(clip)
		if err != nil {
			RecycleFrame(frame)
			return nil, fmt.Errorf("capture: grab %v: %w", clip, err)
		}
		blitRGBA(frame, img, clip.Min.X-r.Left, clip.Min.Y-r.Top)
	}
	frame.CapturedAt = time.Now()
	if s.showCursor.Load() && s.cursor != nil {
		s.overlayCursor(frame, r)
	}
	return frame, nil
}

func (s *ScreenSource) overlayCursor(f *Frame, r Region) {
	x, y, err := s.cursor.CursorPosition()
	if err != nil {
		// log once; the overlay is cosmetic
		if !s.cursorFailed.Swap(true) && s.logger != nil {
			s.logger.Debug("cursor overlay disabled", "error", err)
		}
		return
	}
	DrawCursor(f, x-r.Left, y-r.Top)
}

// blitRGBA copies src into dst at (dx, dy), dropping alpha. Pixels falling
// outside dst are skipped.
func blitRGBA(dst *Frame, src *image.RGBA, dx, dy int) {
	if src == nil {
		return
	}
	b := src.Bounds()
	for y := 0; y < b.Dy(); y++ {
		ty := dy + y
		if ty < 0 || ty >= dst.Height {
			continue
		}
		so := src.PixOffset(b.Min.X, b.Min.Y+y)
		row := dst.Pix[ty*dst.Stride() : (ty+1)*dst.Stride()]
		for x := 0; x < b.Dx(); x++ {
			tx := dx + x
			if tx < 0 || tx >= dst.Width {
				continue
			}
			i := so + x*4
			o := tx * 3
			row[o+0] = src.Pix[i+0]
			row[o+1] = src.Pix[i+1]
			row[o+2] = src.Pix[i+2]
		}
	}
}
