package video

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/soocke/screen-recorder-go/domain/capture"
)

const sinkStatsLogInterval = 5 * time.Second

var (
	// ErrSinkStarted is returned by Start on a sink that already left Idle.
	ErrSinkStarted = errors.New("video: sink already started")
	// ErrInvalidFPS rejects non-positive target rates.
	ErrInvalidFPS = errors.New("video: target fps must be positive")
)

// State is the VideoSink lifecycle.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateDraining
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateDraining:
		return "Draining"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Options configures a Sink.
type Options struct {
	Path      string
	Codec     Codec
	Region    capture.Region
	TargetFPS float64
}

// Sink pulls frames from a FrameSource on its own goroutine and appends them
// to a container at the target cadence. The container and counters are owned
// by that goroutine; other goroutines only flip the pause and stop flags.
type Sink struct {
	source capture.FrameSource
	opener Opener
	opts   Options
	logger *slog.Logger

	state    atomic.Int32
	paused   atomic.Bool
	stopping atomic.Bool

	frames     atomic.Uint64
	iterations atomic.Uint64
	grabNanos  atomic.Uint64
	writeNanos atomic.Uint64
	lastFrame  atomic.Int64 // unix nanos

	done  chan struct{}
	drift DriftRecord
	err   error

	// seams for tests
	now   func() time.Time
	sleep func(time.Duration)
}

// NewSink returns an idle sink.
func NewSink(source capture.FrameSource, opener Opener, opts Options, logger *slog.Logger) *Sink {
	return &Sink{
		source: source,
		opener: opener,
		opts:   opts,
		logger: logger,
		done:   make(chan struct{}),
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// Path returns the container path.
func (s *Sink) Path() string { return s.opts.Path }

// State reports the current lifecycle state.
func (s *Sink) State() State { return State(s.state.Load()) }

// Done is closed once the container has been finalized.
func (s *Sink) Done() <-chan struct{} { return s.done }

// Start opens the container and launches the capture loop. An error means
// nothing will be recorded and the sink is Closed.
func (s *Sink) Start() error {
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return ErrSinkStarted
	}
	if err := s.opts.Region.Validate(); err != nil {
		s.abort()
		return err
	}
	if s.opts.TargetFPS <= 0 {
		s.abort()
		return ErrInvalidFPS
	}
	c, err := s.opener.Open(ContainerSpec{
		Path:   s.opts.Path,
		Codec:  s.opts.Codec,
		Width:  s.opts.Region.Width,
		Height: s.opts.Region.Height,
		FPS:    s.opts.TargetFPS,
	})
	if err != nil {
		s.abort()
		if !errors.Is(err, ErrContainerOpen) {
			err = fmt.Errorf("%w: %v", ErrContainerOpen, err)
		}
		return err
	}
	if s.logger != nil {
		s.logger.Info("video sink started",
			"path", s.opts.Path,
			"codec", s.opts.Codec,
			"region", s.opts.Region.String(),
			"fps", s.opts.TargetFPS,
		)
	}
	go s.loop(c)
	return nil
}

func (s *Sink) abort() {
	s.state.Store(int32(StateClosed))
	close(s.done)
}

// Pause stops frames from being written until Resume. The loop keeps running.
func (s *Sink) Pause() { s.paused.Store(true) }

// Resume re-enables frame writes.
func (s *Sink) Resume() { s.paused.Store(false) }

// Paused reports the pause flag.
func (s *Sink) Paused() bool { return s.paused.Load() }

// Stop cancels the loop, waits for the container to be finalized and returns
// the drift record plus the first stream error, if any. Frames written before
// an error are kept. Stop on an idle sink closes it without output.
func (s *Sink) Stop() (DriftRecord, error) {
	if s.state.CompareAndSwap(int32(StateIdle), int32(StateClosed)) {
		close(s.done)
		return DriftRecord{TargetFPS: s.opts.TargetFPS}, nil
	}
	s.stopping.Store(true)
	<-s.done
	return s.drift, s.err
}

// Stats returns a snapshot of the loop counters.
func (s *Sink) Stats() SinkStats {
	frames := s.frames.Load()
	st := SinkStats{
		Frames:     frames,
		Iterations: s.iterations.Load(),
		Paused:     s.paused.Load(),
	}
	if frames > 0 {
		st.AvgGrab = time.Duration(s.grabNanos.Load() / frames)
		st.AvgWrite = time.Duration(s.writeNanos.Load() / frames)
	}
	if ns := s.lastFrame.Load(); ns != 0 {
		st.LastFrame = time.Unix(0, ns)
		st.LastFrameAge = time.Since(st.LastFrame)
	}
	return st
}

func (s *Sink) loop(c Container) {
	frameTime := time.Duration(float64(time.Second) / s.opts.TargetFPS)
	logTicker := time.NewTicker(sinkStatsLogInterval)
	defer logTicker.Stop()

	var active time.Duration
	for !s.stopping.Load() {
		start := s.now()
		paused := s.paused.Load()
		if !paused {
			if err := s.captureOne(c); err != nil {
				s.err = err
				if s.logger != nil {
					s.logger.Error("video stream error", "error", err, "frames", s.frames.Load())
				}
				active += s.now().Sub(start)
				break
			}
		}
		s.iterations.Add(1)
		if d := frameTime - s.now().Sub(start); d > 0 {
			s.sleep(d)
		}
		if !paused {
			active += s.now().Sub(start)
		}

		select {
		case <-logTicker.C:
			s.logStats()
		default:
		}
	}

	s.state.Store(int32(StateDraining))
	if err := c.Close(); err != nil {
		if s.logger != nil {
			s.logger.Error("video container close", "error", err)
		}
		if s.err == nil {
			s.err = err
		}
	}
	s.drift = newDriftRecord(s.frames.Load(), active, s.opts.TargetFPS)
	if err := SaveDrift(s.opts.Path, s.drift); err != nil && s.logger != nil {
		s.logger.Warn("video drift record not saved", "error", err)
	}
	if s.logger != nil {
		s.logger.Info("video sink closed",
			"frames", s.drift.Frames,
			"measured_fps", s.drift.MeasuredFPS,
			"target_fps", s.drift.TargetFPS,
			"elapsed", s.drift.Elapsed,
		)
	}
	s.state.Store(int32(StateClosed))
	close(s.done)
}

func (s *Sink) captureOne(c Container) error {
	t0 := s.now()
	f, err := s.source.Grab(s.opts.Region)
	if err != nil {
		return err
	}
	t1 := s.now()
	err = c.WriteFrame(f)
	capture.RecycleFrame(f)
	if err != nil {
		return err
	}
	t2 := s.now()
	s.grabNanos.Add(uint64(t1.Sub(t0)))
	s.writeNanos.Add(uint64(t2.Sub(t1)))
	s.lastFrame.Store(t2.UnixNano())
	s.frames.Add(1)
	return nil
}

func (s *Sink) logStats() {
	if s.logger == nil {
		return
	}
	st := s.Stats()
	s.logger.Debug("video.stats",
		"frames", st.Frames,
		"iterations", st.Iterations,
		"paused", st.Paused,
		"avg_grab", st.AvgGrab,
		"avg_write", st.AvgWrite,
	)
}
