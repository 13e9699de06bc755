package capture

import (
	"sync"
)

// Frames are recycled once the video sink has written them. The screenshot
// library still allocates a fresh *image.RGBA per grab; the pool only removes
// the second allocation for the packed RGB copy handed to the sink.

var framePool sync.Pool // stores *Frame

// acquireFrame returns a frame sized to w x h. Pix length is exactly w*h*3 and
// its contents are undefined.
func acquireFrame(w, h int) *Frame {
	if w <= 0 || h <= 0 {
		return &Frame{Width: w, Height: h}
	}
	needed := w * h * 3
	var f *Frame
	if v := framePool.Get(); v != nil {
		f = v.(*Frame)
	}
	if f == nil || cap(f.Pix) < needed {
		return &Frame{Width: w, Height: h, Pix: make([]byte, needed)}
	}
	f.Width, f.Height = w, h
	f.Pix = f.Pix[:needed]
	return f
}

// RecycleFrame returns f to the pool. The caller must not touch f afterwards.
func RecycleFrame(f *Frame) {
	if f == nil || f.Pix == nil {
		return
	}
	framePool.Put(f)
}

// NewFrame allocates a zeroed (black) frame of the given size from the pool.
func NewFrame(w, h int) *Frame {
	f := acquireFrame(w, h)
	clear(f.Pix)
	return f
}
