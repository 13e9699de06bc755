//go:build windows

package capture

// Cursor lookup through user32!GetCursorPos. The DLL is lazy loaded the same
// way the screen and input helpers are.

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos = user32.NewProc("GetCursorPos")
)

// point matches the Win32 POINT layout.
type point struct {
	X int32
	Y int32
}

type winCursor struct{}

// NewCursorLocator returns the GetCursorPos backed locator.
func NewCursorLocator() CursorLocator { return winCursor{} }

func (winCursor) CursorPosition() (int, int, error) {
	if err := procGetCursorPos.Find(); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrCursorUnavailable, err)
	}
	var pt point
	ok, _, callErr := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ok == 0 {
		return 0, 0, fmt.Errorf("%w: GetCursorPos: %v", ErrCursorUnavailable, callErr)
	}
	return int(pt.X), int(pt.Y), nil
}
