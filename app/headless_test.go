package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/soocke/screen-recorder-go/domain/capture"
	"github.com/soocke/screen-recorder-go/domain/session"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

type mockRecorder struct {
	mu       sync.Mutex
	starts   int
	stops    int
	opts     session.Options
	startErr error
	stopCtx  context.Context
	started  chan struct{}
}

func newMockRecorder() *mockRecorder { return &mockRecorder{started: make(chan struct{})} }

func (r *mockRecorder) Start(opts session.Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts++
	r.opts = opts
	if r.startErr != nil {
		return r.startErr
	}
	close(r.started)
	return nil
}

func (r *mockRecorder) Stop(ctx context.Context) (session.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops++
	r.stopCtx = ctx
	return session.Result{OutputPath: "out.mp4"}, nil
}

func (r *mockRecorder) Elapsed() time.Duration { return time.Second }

func testOpts() session.Options {
	return session.Options{Region: capture.Region{Width: 8, Height: 8}, TargetFPS: 10}
}

func TestHeadless_StopsAfterDuration(t *testing.T) {
	rec := newMockRecorder()
	h := &Headless{Recorder: rec, Logger: discardLogger, Duration: 30 * time.Millisecond, Countdown: 2, Step: time.Millisecond, Progress: 5 * time.Millisecond}
	start := time.Now()
	res, err := h.Run(context.Background(), testOpts())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.OutputPath != "out.mp4" || rec.starts != 1 || rec.stops != 1 {
		t.Fatalf("res=%+v starts=%d stops=%d", res, rec.starts, rec.stops)
	}
	if time.Since(start) < 30*time.Millisecond {
		t.Fatal("stopped before the duration elapsed")
	}
	if rec.opts.TargetFPS != 10 {
		t.Fatalf("options not forwarded: %+v", rec.opts)
	}
}

func TestHeadless_CancelWhileRecordingStillSaves(t *testing.T) {
	rec := newMockRecorder()
	h := &Headless{Recorder: rec, Logger: discardLogger}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-rec.started
		cancel()
	}()
	if _, err := h.Run(ctx, testOpts()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if rec.stops != 1 {
		t.Fatalf("stops %d", rec.stops)
	}
	if rec.stopCtx.Err() != nil {
		t.Fatal("stop context must not inherit the cancellation")
	}
}

func TestHeadless_CancelDuringCountdownSkipsRecording(t *testing.T) {
	rec := newMockRecorder()
	h := &Headless{Recorder: rec, Logger: discardLogger, Countdown: 3, Step: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.Run(ctx, testOpts())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if rec.starts != 0 || rec.stops != 0 {
		t.Fatalf("starts=%d stops=%d", rec.starts, rec.stops)
	}
}

func TestHeadless_StartErrorReturned(t *testing.T) {
	rec := newMockRecorder()
	rec.startErr = errors.New("no display")
	h := &Headless{Recorder: rec, Duration: time.Millisecond}
	if _, err := h.Run(context.Background(), testOpts()); !errors.Is(err, rec.startErr) {
		t.Fatalf("expected start error, got %v", err)
	}
	if rec.stops != 0 {
		t.Fatal("stop called after failed start")
	}
}
