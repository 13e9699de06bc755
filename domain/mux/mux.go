package mux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/soocke/screen-recorder-go/domain/video"
)

const (
	// DriftTolerance is the fraction of the target rate below which the
	// measured rate is corrected.
	DriftTolerance = 0.97
	// DefaultFPS is the output rate when no target was recorded.
	DefaultFPS = 30

	audioBitrate    = "192k"
	audioSampleRate = 44100
	audioChannels   = 2
)

// ErrEncode reports a failed combination step. Temporary inputs are kept.
var ErrEncode = errors.New("mux: encode failed")

// Job is one hand-off from a finished session. AudioPath is empty when the
// recording has no audio.
type Job struct {
	VideoPath  string
	AudioPath  string
	OutputPath string
	Drift      video.DriftRecord
}

// Result describes a successful hand-off.
type Result struct {
	OutputPath string
	Scale      float64
	Muxed      bool // false when the video was moved without re-encoding
	Size       int64
	Took       time.Duration
}

// Runner executes the encoder and returns its combined output.
type Runner interface {
	Run(ctx context.Context, bin string, args []string) ([]byte, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, bin string, args []string) ([]byte, error)

func (f RunnerFunc) Run(ctx context.Context, bin string, args []string) ([]byte, error) {
	return f(ctx, bin, args)
}

// ExecRunner runs the encoder as a child process.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, bin string, args []string) ([]byte, error) {
	return exec.CommandContext(ctx, bin, args...).CombinedOutput()
}

// Muxer combines a session's video and audio into the final file.
type Muxer struct {
	Runner      Runner
	EncoderPath func() (string, error)
	KeepTemp    bool
	logger      *slog.Logger
}

// New returns a Muxer running the encoder found by encoderPath.
func New(encoderPath func() (string, error), logger *slog.Logger) *Muxer {
	return &Muxer{Runner: ExecRunner{}, EncoderPath: encoderPath, logger: logger}
}

// ScaleFactor returns the time-scale applied to the video stream so played
// time matches wall time. It is 1 unless the measured rate fell below
// DriftTolerance of the target.
func ScaleFactor(d video.DriftRecord) float64 {
	if d.MeasuredFPS <= 0 || d.TargetFPS <= 0 {
		return 1
	}
	if d.MeasuredFPS < d.TargetFPS*DriftTolerance {
		return d.TargetFPS / d.MeasuredFPS
	}
	return 1
}

func outputFPS(d video.DriftRecord) float64 {
	if d.TargetFPS > 0 {
		return d.TargetFPS
	}
	return DefaultFPS
}

// Args builds the encoder arguments for job.
func Args(job Job, scale float64) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	if scale != 1 {
		args = append(args, "-itsscale", strconv.FormatFloat(scale, 'f', -1, 64))
	}
	args = append(args,
		"-i", job.VideoPath,
		"-i", job.AudioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		"-vf", "scale=trunc(iw/2)*2:trunc(ih/2)*2",
		"-r", strconv.FormatFloat(outputFPS(job.Drift), 'f', -1, 64),
		"-c:a", "aac",
		"-b:a", audioBitrate,
		"-ar", strconv.Itoa(audioSampleRate),
		"-ac", strconv.Itoa(audioChannels),
		"-shortest",
		"-movflags", "+faststart",
		job.OutputPath,
	)
	return args
}

// Mux produces job.OutputPath. Without audio the video is moved into place
// unchanged, so the output keeps the video container's extension and
// Result.OutputPath reports the final name.
// With audio the encoder re-encodes both streams; success requires a zero exit
// status and a non-empty output. Temporary inputs are deleted on success only.
// A zero Drift is read from the sidecar next to the video.
func (m *Muxer) Mux(ctx context.Context, job Job) (Result, error) {
	start := time.Now()
	if job.Drift.TargetFPS == 0 {
		if rec, err := video.LoadDrift(job.VideoPath); err == nil {
			job.Drift = rec
		}
	}
	if job.AudioPath == "" {
		job.OutputPath = withExt(job.OutputPath, filepath.Ext(job.VideoPath))
		if err := moveFile(job.VideoPath, job.OutputPath); err != nil {
			return Result{}, fmt.Errorf("%w: move video: %v", ErrEncode, err)
		}
		m.cleanup(job.VideoPath)
		size := fileSize(job.OutputPath)
		m.log("video moved into place", "output", job.OutputPath, "size", size)
		return Result{OutputPath: job.OutputPath, Scale: 1, Size: size, Took: time.Since(start)}, nil
	}

	if m.EncoderPath == nil {
		return Result{}, fmt.Errorf("%w: no encoder configured", ErrEncode)
	}
	bin, err := m.EncoderPath()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	scale := ScaleFactor(job.Drift)
	args := Args(job, scale)
	if m.logger != nil {
		m.logger.Info("mux started",
			"video", job.VideoPath,
			"audio", job.AudioPath,
			"output", job.OutputPath,
			"measured_fps", job.Drift.MeasuredFPS,
			"target_fps", job.Drift.TargetFPS,
			"scale", scale,
		)
	}
	out, err := m.Runner.Run(ctx, bin, args)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v: %s", ErrEncode, err, tail(out))
	}
	size := fileSize(job.OutputPath)
	if size <= 0 {
		return Result{}, fmt.Errorf("%w: empty output %s", ErrEncode, job.OutputPath)
	}
	m.cleanup(job.VideoPath, job.AudioPath)
	res := Result{OutputPath: job.OutputPath, Scale: scale, Muxed: true, Size: size, Took: time.Since(start)}
	m.log("mux finished", "output", res.OutputPath, "size", res.Size, "took", res.Took)
	return res, nil
}

// withExt replaces the extension of p with ext. An empty ext leaves p as is.
func withExt(p, ext string) string {
	if ext == "" {
		return p
	}
	return strings.TrimSuffix(p, filepath.Ext(p)) + ext
}

func (m *Muxer) cleanup(videoPath string, others ...string) {
	if m.KeepTemp {
		return
	}
	if err := video.RemoveDrift(videoPath); err != nil {
		m.log("remove drift record", "error", err)
	}
	for _, p := range append(others, videoPath) {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			m.log("remove temp file", "path", p, "error", err)
		}
	}
}

func (m *Muxer) log(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Info(msg, args...)
	}
}

// moveFile renames src to dst, copying across filesystems when needed.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	in.Close()
	return os.Remove(src)
}

func fileSize(path string) int64 {
	fi, err := os.Stat(path)
	if err != nil {
		return -1
	}
	return fi.Size()
}

func tail(b []byte) string {
	b = bytes.TrimSpace(b)
	const max = 512
	if len(b) > max {
		b = b[len(b)-max:]
	}
	return strings.ReplaceAll(string(b), "\n", " | ")
}
