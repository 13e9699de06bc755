package video

import "time"

// SinkStats summarises video loop behaviour for instrumentation.
type SinkStats struct {
	Frames       uint64
	Iterations   uint64
	Paused       bool
	AvgGrab      time.Duration
	AvgWrite     time.Duration
	LastFrame    time.Time
	LastFrameAge time.Duration
}
