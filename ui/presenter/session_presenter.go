package presenter

import (
	"time"

	"github.com/soocke/screen-recorder-go/domain/session"
	"github.com/soocke/screen-recorder-go/ui/model"
)

// ElapsedSource reports recorded time for the active session.
type ElapsedSource interface {
	State() session.State
	Elapsed() time.Duration
}

// SessionView displays formatted session and total durations.
type SessionView interface {
	SetSession(session, total time.Duration)
}

// SessionPresenter mirrors controller elapsed time into the model and view.
type SessionPresenter struct {
	sess *model.SessionModel
	src  ElapsedSource
	view SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, src ElapsedSource, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, src: src, view: view}
}

// Tick updates the presenter: advance the session model and push values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.src == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.src.State().Active(), p.src.Elapsed())
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
}
