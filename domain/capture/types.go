package capture

import (
	"errors"
	"fmt"
	"image"
	"time"
)

var (
	// ErrInvalidRegion is returned for regions with non-positive dimensions.
	ErrInvalidRegion = errors.New("capture: invalid region")
	// ErrCursorUnavailable is returned when the pointer position cannot be read
	// (no display server, unsupported platform).
	ErrCursorUnavailable = errors.New("capture: cursor position unavailable")
)

// Region is an integer pixel rectangle in screen coordinates.
// The zero Region is the full screen sentinel.
type Region struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FullScreen reports whether r is the full screen sentinel.
func (r Region) FullScreen() bool { return r.Width == 0 && r.Height == 0 }

// Validate reports ErrInvalidRegion when either dimension is not positive.
func (r Region) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidRegion, r.Width, r.Height)
	}
	return nil
}

// Rect returns r as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Left+r.Width, r.Top+r.Height)
}

func (r Region) String() string {
	if r.FullScreen() {
		return "fullscreen"
	}
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.Left, r.Top)
}

// RegionFromRect converts a rectangle into a Region.
func RegionFromRect(rect image.Rectangle) Region {
	return Region{Left: rect.Min.X, Top: rect.Min.Y, Width: rect.Dx(), Height: rect.Dy()}
}

// Frame is a packed RGB pixel buffer (3 bytes per pixel, no alpha) tagged with
// its capture instant.
type Frame struct {
	Width      int
	Height     int
	Pix        []byte
	CapturedAt time.Time
}

// Stride returns the number of bytes per row.
func (f *Frame) Stride() int { return f.Width * 3 }

// FrameSource grabs the current pixel contents of a region. Grab blocks until
// the platform returns and must tolerate regions that exceed the display.
type FrameSource interface {
	Grab(r Region) (*Frame, error)
}

// CursorLocator returns the pointer position in absolute screen coordinates.
type CursorLocator interface {
	CursorPosition() (x, y int, err error)
}

// CursorFunc adapts a function to CursorLocator.
type CursorFunc func() (int, int, error)

func (f CursorFunc) CursorPosition() (int, int, error) { return f() }
