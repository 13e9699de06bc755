package presenter

import (
	"sync"
	"time"

	"github.com/soocke/screen-recorder-go/domain/session"
)

// StateSource provides the controller state.
type StateSource interface {
	State() session.State
}

// StateView sets the state label and the pause button caption.
type StateView interface {
	SetStateLabel(string)
	SetPauseLabel(string)
}

// StatePresenter receives controller transitions and updates the view on the
// UI thread. Transitions may arrive from the background stop goroutine.
type StatePresenter struct {
	src     StateSource
	view    StateView
	mu      sync.Mutex
	latest  session.State
	pending []session.State
	primed  bool
}

func NewStatePresenter(src StateSource, view StateView) *StatePresenter {
	return &StatePresenter{src: src, view: view}
}

// OnState queues a transitioned state; use as a session.Listener.
//
// The latest queued state will be reflected on the next Tick.
func (p *StatePresenter) OnState(_, next session.State) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.pending = append(p.pending, next)
	p.mu.Unlock()
}

// Tick reflects the most recent queued state. The first Tick shows the
// source's current state.
func (p *StatePresenter) Tick(now time.Time) {
	if p == nil || p.src == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	var next session.State
	have := len(p.pending) > 0
	if have {
		next = p.pending[len(p.pending)-1]
		p.pending = p.pending[:0]
	}
	p.mu.Unlock()
	if !have {
		if p.primed {
			return
		}
		next = p.src.State()
	}
	if p.primed && next == p.latest {
		return
	}
	p.primed = true
	p.latest = next
	p.view.SetStateLabel("State: " + next.String())
	if next == session.StatePaused {
		p.view.SetPauseLabel("Resume")
	} else {
		p.view.SetPauseLabel("Pause")
	}
}
