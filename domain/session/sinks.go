package session

import (
	"context"
	"log/slog"

	"github.com/soocke/screen-recorder-go/domain/audio"
	"github.com/soocke/screen-recorder-go/domain/capture"
	"github.com/soocke/screen-recorder-go/domain/mux"
	"github.com/soocke/screen-recorder-go/domain/video"
)

// VideoSink is the part of video.Sink the controller drives.
type VideoSink interface {
	Start() error
	Pause()
	Resume()
	Stop() (video.DriftRecord, error)
	Path() string
}

// AudioSink is the part of audio.Sink the controller drives.
type AudioSink interface {
	Start()
	Pause()
	Resume()
	Stop() (written bool, err error)
	Path() string
}

// Muxer combines the finished outputs.
type Muxer interface {
	Mux(ctx context.Context, job mux.Job) (mux.Result, error)
}

// SinkFactory creates the sinks for one session.
type SinkFactory interface {
	NewVideo(opts video.Options) VideoSink
	NewAudio(opts audio.SinkOptions) AudioSink
}

// DeviceFactory builds real sinks from a frame source, a container opener and
// an audio source constructor. NewAudioSource may be nil for video-only use.
type DeviceFactory struct {
	Source         capture.FrameSource
	Opener         video.Opener
	NewAudioSource func(kind audio.Kind) audio.Source
	Logger         *slog.Logger
}

func (f *DeviceFactory) NewVideo(opts video.Options) VideoSink {
	if r, ok := f.Source.(interface{ ResetBounds() }); ok {
		r.ResetBounds()
	}
	return video.NewSink(f.Source, f.Opener, opts, f.Logger)
}

func (f *DeviceFactory) NewAudio(opts audio.SinkOptions) AudioSink {
	if f.NewAudioSource != nil {
		if opts.Mode.UsesMicrophone() && opts.Microphone == nil {
			opts.Microphone = f.NewAudioSource(audio.KindMicrophone)
		}
		if opts.Mode.UsesSystem() && opts.System == nil {
			opts.System = f.NewAudioSource(audio.KindSystem)
		}
	}
	return audio.NewSink(opts, f.Logger)
}
