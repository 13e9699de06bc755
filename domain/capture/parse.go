package capture

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// geometryRe matches window geometry strings "WIDTHxHEIGHT+X+Y".
	geometryRe = regexp.MustCompile(`^(\d+)x(\d+)([+-]-?\d+)([+-]-?\d+)$`)
	// listRe matches "x,y,w,h".
	listRe = regexp.MustCompile(`^(-?\d+)\s*,\s*(-?\d+)\s*,\s*(\d+)\s*,\s*(\d+)$`)
)

// ParseRegion accepts "x,y,w,h", a window geometry "WxH+X+Y", or
// "fullscreen"/"" for the full screen sentinel.
func ParseRegion(s string) (Region, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "fullscreen") {
		return Region{}, nil
	}
	var r Region
	if m := listRe.FindStringSubmatch(s); m != nil {
		r.Left, _ = strconv.Atoi(m[1])
		r.Top, _ = strconv.Atoi(m[2])
		r.Width, _ = strconv.Atoi(m[3])
		r.Height, _ = strconv.Atoi(m[4])
	} else if m := geometryRe.FindStringSubmatch(s); m != nil {
		r.Width, _ = strconv.Atoi(m[1])
		r.Height, _ = strconv.Atoi(m[2])
		r.Left = signedOffset(m[3])
		r.Top = signedOffset(m[4])
	} else {
		return Region{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidRegion, s)
	}
	return r, r.Validate()
}

// signedOffset parses "+10", "-10" and the Tk form "+-10".
func signedOffset(s string) int {
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	n, _ := strconv.Atoi(s)
	return n
}
