package capture

const (
	cursorRadius = 5
)

var (
	cursorFill    = [3]byte{0xFF, 0x00, 0x00}
	cursorOutline = [3]byte{0x00, 0x00, 0x00}
)

// DrawCursor paints a filled red circle with a black outline centred on
// (cx, cy) in frame coordinates. Nothing is drawn when the centre lies outside
// the frame.
func DrawCursor(f *Frame, cx, cy int) {
	if f == nil || cx < 0 || cy < 0 || cx >= f.Width || cy >= f.Height {
		return
	}
	r := cursorRadius
	inner := (r - 1) * (r - 1)
	outer := r * r
	for y := cy - r; y <= cy+r; y++ {
		if y < 0 || y >= f.Height {
			continue
		}
		for x := cx - r; x <= cx+r; x++ {
			if x < 0 || x >= f.Width {
				continue
			}
			d := (x-cx)*(x-cx) + (y-cy)*(y-cy)
			if d > outer {
				continue
			}
			c := cursorFill
			if d > inner {
				c = cursorOutline
			}
			o := y*f.Stride() + x*3
			f.Pix[o], f.Pix[o+1], f.Pix[o+2] = c[0], c[1], c[2]
		}
	}
}
