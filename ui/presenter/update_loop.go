package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Recording *RecordingPresenter
	State     *StatePresenter
	Session   *SessionPresenter
	Schedule  func()
}

func NewLoop(rec *RecordingPresenter, state *StatePresenter, sess *SessionPresenter, schedule func()) *Loop {
	return &Loop{Recording: rec, State: state, Session: sess, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	// Recording first so a finished stop is visible in the same tick.
	if l.Recording != nil {
		l.Recording.Tick(now)
	}
	if l.State != nil {
		l.State.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
