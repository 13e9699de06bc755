package presenter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soocke/screen-recorder-go/domain/session"
	"github.com/soocke/screen-recorder-go/ui/model"
)

// Recorder narrows what the presenter needs from the session controller.
type Recorder interface {
	Start(opts session.Options) error
	TogglePause()
	Stop(ctx context.Context) (session.Result, error)
	State() session.State
}

// RecordingView updates UI elements affected by the recording lifecycle.
// State label updates are owned by StatePresenter.
type RecordingView interface {
	SetStatus(text string)
	SetCountdown(remaining int) // 0 hides the countdown
	ConfigEditable(bool)
}

type stopOutcome struct {
	res session.Result
	err error
}

// RecordingPresenter turns button presses into controller calls. Stop runs
// off the UI thread; its outcome is reflected on the next Tick.
type RecordingPresenter struct {
	rec       Recorder
	options   func() (session.Options, error)
	countdown func() int
	view      RecordingView
	logger    *slog.Logger

	cd       model.CountdownModel
	stopping bool
	stopCh   chan stopOutcome
	now      func() time.Time
}

// NewRecordingPresenter wires the presenter. options builds the session options
// at the moment recording begins; countdown returns the configured countdown
// length in seconds (0 disables it).
func NewRecordingPresenter(rec Recorder, options func() (session.Options, error), countdown func() int, view RecordingView, logger *slog.Logger) *RecordingPresenter {
	return &RecordingPresenter{
		rec:       rec,
		options:   options,
		countdown: countdown,
		view:      view,
		logger:    logger,
		stopCh:    make(chan stopOutcome, 1),
		now:       time.Now,
	}
}

func (p *RecordingPresenter) ready() bool {
	return p != nil && p.rec != nil && p.view != nil && p.options != nil
}

// Start begins recording, after the countdown when one is configured.
// Ignored while a session, countdown or save is in progress.
func (p *RecordingPresenter) Start() {
	if !p.ready() || p.stopping || p.cd.Active() || p.rec.State().Active() {
		return
	}
	secs := 0
	if p.countdown != nil {
		secs = p.countdown()
	}
	if secs > 0 {
		p.cd.Begin(secs, p.now())
		p.view.ConfigEditable(false)
		p.view.SetCountdown(secs)
		p.view.SetStatus(fmt.Sprintf("Starting in %d...", secs))
		return
	}
	p.begin()
}

func (p *RecordingPresenter) begin() {
	opts, err := p.options()
	if err == nil {
		err = p.rec.Start(opts)
	}
	if err != nil {
		if p.logger != nil {
			p.logger.Error("start recording", "error", err)
		}
		p.view.SetStatus("Error: " + err.Error())
		p.view.ConfigEditable(true)
		return
	}
	p.view.ConfigEditable(false)
	p.view.SetStatus("Recording...")
}

// TogglePause pauses or resumes the active session.
func (p *RecordingPresenter) TogglePause() {
	if !p.ready() || p.stopping {
		return
	}
	p.rec.TogglePause()
}

// Stop cancels a pending countdown or stops the session in the background.
func (p *RecordingPresenter) Stop() {
	if !p.ready() || p.stopping {
		return
	}
	if p.cd.Active() {
		p.cd.Cancel()
		p.view.SetCountdown(0)
		p.view.SetStatus("Cancelled")
		p.view.ConfigEditable(true)
		return
	}
	st := p.rec.State()
	if st != session.StateRecording && st != session.StatePaused {
		return
	}
	p.stopping = true
	p.view.SetStatus("Saving...")
	go func() {
		defer func() {
			if r := recover(); r != nil {
				p.stopCh <- stopOutcome{err: fmt.Errorf("stop panicked: %v", r)}
			}
		}()
		res, err := p.rec.Stop(context.Background())
		p.stopCh <- stopOutcome{res: res, err: err}
	}()
}

// Busy reports whether a countdown or save is in progress.
func (p *RecordingPresenter) Busy() bool { return p != nil && (p.stopping || p.cd.Active()) }

// Tick advances the countdown and reflects a finished stop.
func (p *RecordingPresenter) Tick(now time.Time) {
	if !p.ready() {
		return
	}
	if p.cd.Active() {
		remaining, finished := p.cd.Poll(now)
		if finished {
			p.view.SetCountdown(0)
			p.begin()
		} else {
			p.view.SetCountdown(remaining)
		}
	}
	select {
	case out := <-p.stopCh:
		p.stopping = false
		p.view.ConfigEditable(true)
		p.view.SetStatus(statusFor(out))
	default:
	}
}

// WaitStopped blocks until a background stop has finished. Used on exit.
func (p *RecordingPresenter) WaitStopped(timeout time.Duration) bool {
	if p == nil || !p.stopping {
		return true
	}
	select {
	case out := <-p.stopCh:
		p.stopping = false
		p.view.SetStatus(statusFor(out))
		return true
	case <-time.After(timeout):
		return false
	}
}

func statusFor(out stopOutcome) string {
	if out.err != nil {
		if errors.Is(out.err, session.ErrNotRecording) {
			return "Not recording"
		}
		if errors.Is(out.err, session.ErrNothingRecorded) {
			return "Nothing recorded: " + out.err.Error()
		}
		if out.res.TempDir != "" {
			return fmt.Sprintf("Error saving: %v (files kept in %s)", out.err, out.res.TempDir)
		}
		return "Error saving: " + out.err.Error()
	}
	msg := "Saved: " + filepath.Base(out.res.OutputPath)
	if out.res.Size > 0 {
		msg += " (" + humanize.Bytes(uint64(out.res.Size)) + ")"
	}
	if !out.res.HasAudio {
		msg += ", no audio"
	}
	if out.res.VideoErr != nil {
		msg += "; capture stopped early: " + out.res.VideoErr.Error()
	}
	return msg
}
