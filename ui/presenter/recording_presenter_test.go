package presenter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/soocke/screen-recorder-go/domain/capture"
	"github.com/soocke/screen-recorder-go/domain/session"
)

type mockRecorder struct {
	mu       sync.Mutex
	state    session.State
	starts   int
	toggles  int
	stops    int
	startErr error
	result   session.Result
	stopErr  error
	release  chan struct{} // blocks Stop until closed when non-nil
}

func (r *mockRecorder) Start(session.Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts++
	if r.startErr != nil {
		return r.startErr
	}
	r.state = session.StateRecording
	return nil
}

func (r *mockRecorder) TogglePause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toggles++
}

func (r *mockRecorder) Stop(context.Context) (session.Result, error) {
	if r.release != nil {
		<-r.release
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops++
	r.state = session.StateStopped
	return r.result, r.stopErr
}

func (r *mockRecorder) State() session.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

type mockRecordingView struct {
	status    string
	countdown int
	editable  bool
	edits     int
}

func (v *mockRecordingView) SetStatus(s string)    { v.status = s }
func (v *mockRecordingView) SetCountdown(n int)    { v.countdown = n }
func (v *mockRecordingView) ConfigEditable(b bool) { v.editable = b; v.edits++ }

func okOptions() (session.Options, error) {
	return session.Options{Region: capture.Region{Width: 10, Height: 10}, TargetFPS: 30}, nil
}

func noCountdown() int { return 0 }

// waitForStatus ticks the presenter until the view status satisfies ok.
func waitForStatus(t *testing.T, p *RecordingPresenter, v *mockRecordingView, ok func(string) bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.Tick(time.Now())
		if ok(v.status) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out; last status %q", v.status)
}

func TestRecordingPresenter_StartStop(t *testing.T) {
	rec := &mockRecorder{result: session.Result{OutputPath: "/videos/ScreenRecord_20240101_120000.mp4", Size: 2048, HasAudio: true}}
	view := &mockRecordingView{editable: true}
	p := NewRecordingPresenter(rec, okOptions, noCountdown, view, nil)

	p.Start()
	if rec.starts != 1 || view.editable || view.status != "Recording..." {
		t.Fatalf("start: starts=%d editable=%v status=%q", rec.starts, view.editable, view.status)
	}
	p.Start() // already recording
	if rec.starts != 1 {
		t.Fatalf("second start should be ignored")
	}
	p.TogglePause()
	if rec.toggles != 1 {
		t.Fatalf("toggle not forwarded")
	}

	p.Stop()
	if !p.Busy() {
		t.Fatal("presenter should be busy while saving")
	}
	waitForStatus(t, p, view, func(s string) bool { return s != "Saving..." })
	if view.status != "Saved: ScreenRecord_20240101_120000.mp4 (2.0 kB)" {
		t.Fatalf("status %q", view.status)
	}
	if !view.editable || p.Busy() {
		t.Fatal("config should be editable again after save")
	}
}

func TestRecordingPresenter_StartError(t *testing.T) {
	rec := &mockRecorder{startErr: errors.New("cannot open container")}
	view := &mockRecordingView{}
	p := NewRecordingPresenter(rec, okOptions, noCountdown, view, nil)
	p.Start()
	if view.status != "Error: cannot open container" || !view.editable {
		t.Fatalf("status %q editable %v", view.status, view.editable)
	}
	p.Stop()
	if rec.stops != 0 {
		t.Fatal("stop should not reach the recorder when idle")
	}
}

func TestRecordingPresenter_Countdown(t *testing.T) {
	rec := &mockRecorder{}
	view := &mockRecordingView{}
	p := NewRecordingPresenter(rec, okOptions, func() int { return 3 }, view, nil)
	base := time.Unix(1000, 0)
	p.now = func() time.Time { return base }

	p.Start()
	if rec.starts != 0 || view.countdown != 3 {
		t.Fatalf("countdown should defer start: starts=%d countdown=%d", rec.starts, view.countdown)
	}
	p.Tick(base.Add(1500 * time.Millisecond))
	if view.countdown != 2 || rec.starts != 0 {
		t.Fatalf("countdown=%d starts=%d", view.countdown, rec.starts)
	}
	p.Tick(base.Add(3 * time.Second))
	if rec.starts != 1 || view.countdown != 0 {
		t.Fatalf("session should start when countdown ends: starts=%d countdown=%d", rec.starts, view.countdown)
	}
}

func TestRecordingPresenter_StopCancelsCountdown(t *testing.T) {
	rec := &mockRecorder{}
	view := &mockRecordingView{}
	p := NewRecordingPresenter(rec, okOptions, func() int { return 3 }, view, nil)
	base := time.Unix(1000, 0)
	p.now = func() time.Time { return base }
	p.Start()
	p.Stop()
	p.Tick(base.Add(time.Minute))
	if rec.starts != 0 || rec.stops != 0 || view.status != "Cancelled" {
		t.Fatalf("starts=%d stops=%d status=%q", rec.starts, rec.stops, view.status)
	}
}

func TestRecordingPresenter_StopFailureReportsTempDir(t *testing.T) {
	rec := &mockRecorder{
		state:   session.StateRecording,
		result:  session.Result{TempDir: "/tmp/screen_recorder/abc"},
		stopErr: errors.New("mux: encode failed"),
		release: make(chan struct{}),
	}
	view := &mockRecordingView{}
	p := NewRecordingPresenter(rec, okOptions, noCountdown, view, nil)
	p.Stop()
	p.Stop() // ignored while saving
	p.Tick(time.Now())
	if view.status != "Saving..." {
		t.Fatalf("status %q", view.status)
	}
	close(rec.release)
	waitForStatus(t, p, view, func(s string) bool { return s != "Saving..." })
	want := "Error saving: mux: encode failed (files kept in /tmp/screen_recorder/abc)"
	if view.status != want {
		t.Fatalf("status %q, want %q", view.status, want)
	}
	if rec.stops != 1 {
		t.Fatalf("stops %d", rec.stops)
	}
}

func TestStatusFor(t *testing.T) {
	lost := errors.New("display lost")
	tests := []struct {
		name string
		out  stopOutcome
		want string
	}{
		{"saved", stopOutcome{res: session.Result{OutputPath: "/o/a.mp4", HasAudio: true}}, "Saved: a.mp4"},
		{"stopped early", stopOutcome{res: session.Result{OutputPath: "/o/a.avi", VideoErr: lost}},
			"Saved: a.avi, no audio; capture stopped early: display lost"},
		{"nothing recorded", stopOutcome{err: fmt.Errorf("%w: %w", session.ErrNothingRecorded, lost)},
			"Nothing recorded: session: no video frames captured: display lost"},
	}
	for _, tt := range tests {
		if got := statusFor(tt.out); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}
