package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/screen-recorder-go/domain/audio"
	"github.com/soocke/screen-recorder-go/domain/capture"
	"github.com/soocke/screen-recorder-go/domain/mux"
	"github.com/soocke/screen-recorder-go/domain/video"
)

const (
	tempDirName   = "screen_recorder"
	outputLayout  = "20060102_150405"
	defaultPrefix = "ScreenRecord"
)

var (
	// ErrSessionActive rejects Start while a recording is in progress.
	ErrSessionActive = errors.New("session: recording already in progress")
	// ErrNotRecording is returned by Stop when there is nothing to stop.
	ErrNotRecording = errors.New("session: not recording")
	// ErrNothingRecorded is returned by Stop when the video stream failed
	// before a single frame was written.
	ErrNothingRecorded = errors.New("session: no video frames captured")
)

// Options describe one recording. Region must already be resolved to real
// display coordinates.
type Options struct {
	Region    capture.Region
	TargetFPS float64
	Codec     video.Codec
	AudioMode audio.Mode
	Gain      float64
	OutputDir string
	Prefix    string
	TempRoot  string // defaults to os.TempDir()
}

// Result is reported once a session has been handed off.
type Result struct {
	OutputPath string
	TempDir    string
	HasAudio   bool
	Drift      video.DriftRecord
	Scale      float64
	Size       int64
	Duration   time.Duration
	VideoErr   error // stream error; captured frames were still kept
}

// Controller owns the lifecycle shared by the video and audio sinks and hands
// their outputs to the muxer on Stop. At most one session is active.
type Controller struct {
	mu        sync.Mutex
	state     State
	logger    *slog.Logger
	factory   SinkFactory
	muxer     Muxer
	listeners []Listener
	now       func() time.Time

	opts        Options
	id          string
	tempDir     string
	outputPath  string
	started     time.Time
	pausedAt    time.Time
	pausedTotal time.Duration
	final       time.Duration
	video       VideoSink
	audio       AudioSink
}

// NewController returns an idle controller.
func NewController(factory SinkFactory, muxer Muxer, logger *slog.Logger) *Controller {
	return &Controller{factory: factory, muxer: muxer, logger: logger, now: time.Now}
}

// AddListener registers a listener for state transitions.
func (c *Controller) AddListener(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ID returns the current or last session id.
func (c *Controller) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

func (c *Controller) transition(next State) {
	prev := c.state
	if prev == next {
		return
	}
	c.state = next
	if c.logger != nil {
		c.logger.Debug("session state transition", "from", prev.String(), "to", next.String(), "session", c.id)
	}
	for _, l := range c.listeners {
		l(prev, next)
	}
}

// Elapsed is recorded time: wall time since start minus paused time. It is
// frozen while paused and after stop.
func (c *Controller) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsedLocked(c.now())
}

func (c *Controller) elapsedLocked(now time.Time) time.Duration {
	switch c.state {
	case StateRecording:
		return now.Sub(c.started) - c.pausedTotal
	case StatePaused:
		return c.pausedAt.Sub(c.started) - c.pausedTotal
	case StateStopping, StateStopped:
		return c.final
	default:
		return 0
	}
}

// Start launches the sinks. It fails with ErrSessionActive while a session is
// running and with the video sink's error when nothing can be recorded.
// Audio problems never fail Start.
func (c *Controller) Start(opts Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Active() {
		return ErrSessionActive
	}
	if err := opts.Region.Validate(); err != nil {
		return err
	}
	if opts.TargetFPS <= 0 {
		return video.ErrInvalidFPS
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}
	root := opts.TempRoot
	if root == "" {
		root = os.TempDir()
	}
	id := uuid.NewString()
	tempDir := filepath.Join(root, tempDirName, id)
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return fmt.Errorf("session: temp dir: %w", err)
	}

	v := c.factory.NewVideo(video.Options{
		Path:      filepath.Join(tempDir, "video"+opts.Codec.Extension()),
		Codec:     opts.Codec,
		Region:    opts.Region,
		TargetFPS: opts.TargetFPS,
	})
	if err := v.Start(); err != nil {
		_ = os.RemoveAll(tempDir)
		if c.logger != nil {
			c.logger.Error("session start failed", "error", err)
		}
		return err
	}
	a := c.factory.NewAudio(audio.SinkOptions{
		Path: filepath.Join(tempDir, "audio.wav"),
		Mode: opts.AudioMode,
		Gain: opts.Gain,
	})
	a.Start()

	now := c.now()
	c.opts = opts
	c.id = id
	c.tempDir = tempDir
	c.outputPath = filepath.Join(opts.OutputDir, fmt.Sprintf("%s_%s.mp4", opts.Prefix, now.Format(outputLayout)))
	c.started = now
	c.pausedAt = time.Time{}
	c.pausedTotal = 0
	c.final = 0
	c.video, c.audio = v, a
	if c.logger != nil {
		c.logger.Info("session started",
			"session", id,
			"region", opts.Region.String(),
			"fps", opts.TargetFPS,
			"codec", opts.Codec,
			"audio", opts.AudioMode.String(),
			"temp", tempDir,
		)
	}
	c.transition(StateRecording)
	return nil
}

// Pause suspends writing in both sinks. No-op unless Recording.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRecording {
		return
	}
	c.pausedAt = c.now()
	c.video.Pause()
	c.audio.Pause()
	c.transition(StatePaused)
}

// Resume continues a paused session. No-op unless Paused.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePaused {
		return
	}
	c.pausedTotal += c.now().Sub(c.pausedAt)
	c.pausedAt = time.Time{}
	c.video.Resume()
	c.audio.Resume()
	c.transition(StateRecording)
}

// TogglePause pauses a recording session or resumes a paused one.
func (c *Controller) TogglePause() {
	if c.State() == StatePaused {
		c.Resume()
		return
	}
	c.Pause()
}

// Stop cancels both sinks, waits for them and runs the muxer synchronously.
// On a mux failure the temporary files are kept and the error is returned
// along with the partial result. A video stream that failed before its first
// frame yields ErrNothingRecorded and no hand-off; one that failed later is
// still handed off and reported in Result.VideoErr. The lock is not held while sinks drain, so
// State and Elapsed stay responsive.
func (c *Controller) Stop(ctx context.Context) (Result, error) {
	c.mu.Lock()
	if c.state != StateRecording && c.state != StatePaused {
		c.mu.Unlock()
		return Result{}, ErrNotRecording
	}
	now := c.now()
	c.final = c.elapsedLocked(now)
	if c.state == StatePaused {
		c.pausedTotal += now.Sub(c.pausedAt)
	}
	c.transition(StateStopping)
	v, a := c.video, c.audio
	res := Result{OutputPath: c.outputPath, TempDir: c.tempDir, Duration: c.final}
	c.mu.Unlock()

	drift, verr := v.Stop()
	res.Drift, res.VideoErr = drift, verr
	written, aerr := a.Stop()
	if aerr != nil && c.logger != nil {
		c.logger.Warn("audio finalize failed; continuing video only", "error", aerr)
	}
	res.HasAudio = written && aerr == nil

	var (
		mres mux.Result
		err  error
	)
	if drift.Frames == 0 && verr != nil {
		// the video backend never delivered; temp files stay for inspection
		err = fmt.Errorf("%w: %w", ErrNothingRecorded, verr)
	} else {
		job := mux.Job{VideoPath: v.Path(), OutputPath: res.OutputPath, Drift: drift}
		if res.HasAudio {
			job.AudioPath = a.Path()
		}
		mres, err = c.muxer.Mux(ctx, job)
		res.Scale, res.Size = mres.Scale, mres.Size
		if mres.OutputPath != "" {
			res.OutputPath = mres.OutputPath
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.video, c.audio = nil, nil
	c.transition(StateStopped)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("session hand-off failed; temporary files kept", "error", err, "temp", res.TempDir)
		}
		return res, err
	}
	// only removes the directory once the muxer has consumed its contents
	_ = os.Remove(res.TempDir)
	if c.logger != nil {
		c.logger.Info("session finished",
			"session", c.id,
			"output", res.OutputPath,
			"duration", res.Duration,
			"frames", drift.Frames,
			"measured_fps", drift.MeasuredFPS,
			"audio", res.HasAudio,
			"video_error", res.VideoErr,
		)
	}
	return res, nil
}
