package model

import (
	"math"
	"time"
)

// CountdownModel tracks a pre-recording countdown. The zero value is idle.
// Only the UI thread touches it.
type CountdownModel struct {
	deadline time.Time
	active   bool
}

// Begin starts a countdown of the given length at now. Non-positive lengths
// leave the model idle.
func (m *CountdownModel) Begin(seconds int, now time.Time) {
	if m == nil || seconds <= 0 {
		return
	}
	m.deadline = now.Add(time.Duration(seconds) * time.Second)
	m.active = true
}

// Cancel abandons a running countdown.
func (m *CountdownModel) Cancel() {
	if m == nil {
		return
	}
	m.active = false
}

// Active reports whether a countdown is running.
func (m *CountdownModel) Active() bool { return m != nil && m.active }

// Poll returns the whole seconds left and whether the countdown just
// finished. A finished countdown returns to idle.
func (m *CountdownModel) Poll(now time.Time) (remaining int, finished bool) {
	if m == nil || !m.active {
		return 0, false
	}
	left := m.deadline.Sub(now)
	if left <= 0 {
		m.active = false
		return 0, true
	}
	return int(math.Ceil(left.Seconds())), false
}
