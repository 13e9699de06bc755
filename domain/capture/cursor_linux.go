//go:build linux

package capture

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// x11Cursor queries the pointer on the default screen's root window. The X
// connection is opened on first use and reused; a failed dial is remembered so
// headless machines do not redial every frame.
type x11Cursor struct {
	once sync.Once
	conn *xgb.Conn
	root xproto.Window
	err  error
	mu   sync.Mutex
}

// NewCursorLocator returns an X11 locator. Without a display server every call
// fails with ErrCursorUnavailable.
func NewCursorLocator() CursorLocator { return &x11Cursor{} }

func (c *x11Cursor) dial() {
	conn, err := xgb.NewConn()
	if err != nil {
		c.err = fmt.Errorf("%w: %v", ErrCursorUnavailable, err)
		return
	}
	c.conn = conn
	c.root = xproto.Setup(conn).DefaultScreen(conn).Root
}

func (c *x11Cursor) CursorPosition() (int, int, error) {
	c.once.Do(c.dial)
	if c.err != nil {
		return 0, 0, c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	reply, err := xproto.QueryPointer(c.conn, c.root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrCursorUnavailable, err)
	}
	return int(reply.RootX), int(reply.RootY), nil
}
