package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/screen-recorder-go/domain/session"
)

// HeadlessRecorder is the part of the session controller the headless front
// end drives.
type HeadlessRecorder interface {
	Start(opts session.Options) error
	Stop(ctx context.Context) (session.Result, error)
	Elapsed() time.Duration
}

// Headless records without a window: an optional countdown, then until
// Duration elapses or ctx is cancelled (SIGINT/SIGTERM).
type Headless struct {
	Recorder  HeadlessRecorder
	Logger    *slog.Logger
	Duration  time.Duration // 0 records until ctx is cancelled
	Countdown int           // seconds
	Step      time.Duration // countdown step, defaults to 1s
	Progress  time.Duration // elapsed log interval, defaults to 5s
}

// Run starts a session with opts and blocks until it has been handed off.
// Cancelling ctx during the countdown aborts without recording; cancelling
// it while recording stops and saves normally.
func (h *Headless) Run(ctx context.Context, opts session.Options) (session.Result, error) {
	step := h.Step
	if step <= 0 {
		step = time.Second
	}
	for remaining := h.Countdown; remaining > 0; remaining-- {
		h.log("starting in", "seconds", remaining)
		select {
		case <-ctx.Done():
			return session.Result{}, fmt.Errorf("countdown aborted: %w", ctx.Err())
		case <-time.After(step):
		}
	}
	if err := h.Recorder.Start(opts); err != nil {
		return session.Result{}, err
	}
	h.log("recording", "region", opts.Region.String(), "duration", h.Duration)

	var deadline <-chan time.Time
	if h.Duration > 0 {
		timer := time.NewTimer(h.Duration)
		defer timer.Stop()
		deadline = timer.C
	}
	progress := h.Progress
	if progress <= 0 {
		progress = 5 * time.Second
	}
	ticker := time.NewTicker(progress)
	defer ticker.Stop()
wait:
	for {
		select {
		case <-ctx.Done():
			h.log("interrupted, stopping")
			break wait
		case <-deadline:
			break wait
		case <-ticker.C:
			h.log("recording", "elapsed", h.Recorder.Elapsed().Round(time.Second))
		}
	}
	// the mux must finish even when ctx was cancelled by a signal
	return h.Recorder.Stop(context.WithoutCancel(ctx))
}

func (h *Headless) log(msg string, args ...any) {
	if h.Logger != nil {
		h.Logger.Info(msg, args...)
	}
}
