package audio

import (
	"errors"
	"log/slog"
	"sync/atomic"
)

// blockQueue is the number of blocks buffered between the driver callback and
// the accumulator, roughly six seconds at the preferred period.
const blockQueue = 256

// SinkOptions configures a Sink. Microphone and System may be nil when the
// mode does not need them or the device could not be created.
type SinkOptions struct {
	Path       string
	Mode       Mode
	Gain       float64
	Microphone Source
	System     Source
}

// SinkStats are counters updated from driver callbacks.
type SinkStats struct {
	Tracks   int
	Blocks   uint64
	Paused   uint64 // dropped while paused
	Overflow uint64 // dropped because the accumulator fell behind
}

// Sink accumulates blocks from one or two sources and writes a single PCM
// file on Stop. Each track's block sequence is owned by its accumulator
// goroutine; driver callbacks only hand blocks over a channel.
type Sink struct {
	opts   SinkOptions
	logger *slog.Logger

	paused   atomic.Bool
	started  atomic.Bool
	stopped  atomic.Bool
	tracks   []*track
	blocks   atomic.Uint64
	dropped  atomic.Uint64
	overflow atomic.Uint64
}

type track struct {
	src    Source
	ch     chan SampleBlock
	quit   chan struct{}
	done   chan struct{}
	blocks [][]float32
}

// NewSink returns an idle sink.
func NewSink(opts SinkOptions, logger *slog.Logger) *Sink {
	if opts.Gain <= 0 {
		opts.Gain = DefaultGain
	}
	return &Sink{opts: opts, logger: logger}
}

// Path returns the target PCM path.
func (s *Sink) Path() string { return s.opts.Path }

// Active reports whether at least one source is delivering.
func (s *Sink) Active() bool { return len(s.tracks) > 0 }

// Start opens the configured sources. Unavailable sources are logged and
// skipped; with none left the sink stays inactive and the recording proceeds
// without audio. Start never fails.
func (s *Sink) Start() {
	if s.started.Swap(true) {
		return
	}
	if s.opts.Mode == ModeNone {
		return
	}
	var wanted []Source
	if s.opts.Mode.UsesMicrophone() {
		wanted = append(wanted, s.opts.Microphone)
	}
	if s.opts.Mode.UsesSystem() {
		wanted = append(wanted, s.opts.System)
	}
	for _, src := range wanted {
		if src == nil {
			s.warn("audio source not configured", nil, "mode", s.opts.Mode.String())
			continue
		}
		t := &track{
			src:  src,
			ch:   make(chan SampleBlock, blockQueue),
			quit: make(chan struct{}),
			done: make(chan struct{}),
		}
		go t.accumulate()
		if err := src.Start(s.deliverTo(t)); err != nil {
			close(t.quit)
			<-t.done
			s.warn("audio source unavailable, continuing without it", err, "source", src.Name())
			continue
		}
		s.tracks = append(s.tracks, t)
		if s.logger != nil {
			s.logger.Info("audio source started", "source", src.Name())
		}
	}
}

func (s *Sink) warn(msg string, err error, args ...any) {
	if s.logger == nil {
		return
	}
	if err != nil {
		args = append(args, "error", err)
	}
	s.logger.Warn(msg, args...)
}

func (s *Sink) deliverTo(t *track) func(SampleBlock) {
	return func(b SampleBlock) {
		if s.paused.Load() {
			s.dropped.Add(1)
			return
		}
		select {
		case t.ch <- b:
			s.blocks.Add(1)
		default:
			s.overflow.Add(1)
		}
	}
}

func (t *track) accumulate() {
	defer close(t.done)
	for {
		select {
		case b := <-t.ch:
			t.blocks = append(t.blocks, b.Samples)
		case <-t.quit:
			for {
				select {
				case b := <-t.ch:
					t.blocks = append(t.blocks, b.Samples)
				default:
					return
				}
			}
		}
	}
}

// Pause drops incoming blocks until Resume.
func (s *Sink) Pause() { s.paused.Store(true) }

// Resume accepts blocks again.
func (s *Sink) Resume() { s.paused.Store(false) }

// Stats returns the callback counters.
func (s *Sink) Stats() SinkStats {
	return SinkStats{
		Tracks:   len(s.tracks),
		Blocks:   s.blocks.Load(),
		Paused:   s.dropped.Load(),
		Overflow: s.overflow.Load(),
	}
}

// Stop halts the sources, joins the accumulators and runs the finishing pass:
// concatenate, merge tracks, apply gain, clip, quantize and write. written is
// false when no block was captured; that is not an error.
func (s *Sink) Stop() (written bool, err error) {
	if !s.started.Load() || s.stopped.Swap(true) {
		return false, nil
	}
	for _, t := range s.tracks {
		if err := t.src.Stop(); err != nil {
			s.warn("audio source stop", err, "source", t.src.Name())
		}
		close(t.quit)
	}
	for _, t := range s.tracks {
		<-t.done
	}

	err = s.finish()
	if errors.Is(err, ErrNoAudio) {
		if s.logger != nil && s.Active() {
			s.logger.Info("no audio captured; recording is video only")
		}
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Sink) finish() error {
	var samples []float32
	for i, t := range s.tracks {
		seq := Concat(t.blocks)
		t.blocks = nil
		if i == 0 {
			samples = seq
			continue
		}
		if len(samples) != len(seq) && s.logger != nil {
			s.logger.Debug("audio tracks differ in length; truncating", "a", len(samples), "b", len(seq))
		}
		samples = Merge(samples, seq)
	}
	if len(samples) == 0 {
		return ErrNoAudio
	}
	ApplyGain(samples, s.opts.Gain)
	if err := WriteWAV(s.opts.Path, samples); err != nil {
		return err
	}
	if s.logger != nil {
		st := s.Stats()
		s.logger.Info("audio written",
			"path", s.opts.Path,
			"frames", len(samples)/Channels,
			"blocks", st.Blocks,
			"dropped_paused", st.Paused,
			"dropped_overflow", st.Overflow,
		)
	}
	return nil
}
