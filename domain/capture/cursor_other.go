//go:build !windows && !linux

package capture

type noCursor struct{}

// NewCursorLocator returns a locator that always fails; the overlay is skipped.
func NewCursorLocator() CursorLocator { return noCursor{} }

func (noCursor) CursorPosition() (int, int, error) { return 0, 0, ErrCursorUnavailable }
