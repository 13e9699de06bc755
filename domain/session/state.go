package session

// State is the recording lifecycle.
type State int

const (
	StateIdle State = iota
	StateRecording
	StatePaused
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StatePaused:
		return "paused"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Active reports whether a recording occupies the controller.
func (s State) Active() bool {
	return s == StateRecording || s == StatePaused || s == StateStopping
}

// Listener is invoked on every transition, with the controller lock held.
// Listeners must not call back into the controller.
type Listener func(prev, next State)
