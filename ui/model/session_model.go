package model

import (
	"time"
)

// SessionModel tracks the current recording duration and the accumulated
// recorded time across sessions. The controller owns pause accounting; the
// model only mirrors what it reports. The zero value is ready to use.
type SessionModel struct {
	active      bool
	current     time.Duration
	accumulated time.Duration
	sessions    int
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model with whether a session is active and its recorded
// time. Call periodically (for example, from a presenter tick).
func (m *SessionModel) OnTick(active bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	switch {
	case active && !m.active: // idle -> recording
		m.active = true
		m.sessions++
		m.current = elapsed
	case active:
		m.current = elapsed
	case m.active: // recording -> idle
		if elapsed > m.current {
			m.current = elapsed
		}
		m.accumulated += m.current
		m.active = false
	}
}

// Values returns the current session duration and the total recorded time.
// The total includes the ongoing session when active.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	session = m.current
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}

// Sessions returns how many sessions have been observed.
func (m *SessionModel) Sessions() int {
	if m == nil {
		return 0
	}
	return m.sessions
}
