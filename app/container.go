package app

import (
	"fmt"
	"log/slog"

	"github.com/soocke/screen-recorder-go/config"
	"github.com/soocke/screen-recorder-go/domain/audio"
	"github.com/soocke/screen-recorder-go/domain/capture"
	"github.com/soocke/screen-recorder-go/domain/encoder"
	"github.com/soocke/screen-recorder-go/domain/mux"
	"github.com/soocke/screen-recorder-go/domain/session"
	"github.com/soocke/screen-recorder-go/domain/video"
	"github.com/soocke/screen-recorder-go/ui/model"
)

// AppContainer assembles the capture services, the session controller and the
// models shared by the GUI and headless front ends.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Source     *capture.ScreenSource
	Opener     *video.FileOpener
	Muxer      *mux.Muxer
	Controller *session.Controller
	Session    *model.SessionModel

	// resolve turns the configured region into display coordinates.
	resolve func(capture.Region) (capture.Region, error)
}

// BuildContainer constructs all components. The encoder override must be
// installed here, before anything resolves the encoder.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) *AppContainer {
	if !encoder.SetDefault(cfg.EncoderPath) && logger != nil {
		logger.Debug("encoder locator already initialised", "override", cfg.EncoderPath)
	}
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger, resolve: capture.Resolve}
	c.Source = capture.NewScreenSource(logger, cfg.ShowCursor)
	c.Opener = video.NewFileOpener(encoder.Path, logger)
	c.Muxer = mux.New(encoder.Path, logger)
	factory := &session.DeviceFactory{
		Source:         c.Source,
		Opener:         c.Opener,
		NewAudioSource: c.newAudioSource,
		Logger:         logger,
	}
	c.Controller = session.NewController(factory, c.Muxer, logger)
	c.Session = model.NewSessionModel()
	return c
}

// newAudioSource reads the device names at session start so edits made in the
// control window apply to the next recording.
func (c *AppContainer) newAudioSource(kind audio.Kind) audio.Source {
	device := c.Config.MicDevice
	if kind == audio.KindSystem {
		device = c.Config.SystemDevice
	}
	return audio.NewDeviceSource(kind, device)
}

// Options builds session options from the current config. Settings that
// live outside the session (cursor overlay, temp retention) are applied to
// their components as a side effect.
func (c *AppContainer) Options() (session.Options, error) {
	cfg := c.Config
	_ = cfg.Validate()
	region, err := c.resolve(cfg.Region())
	if err != nil {
		return session.Options{}, fmt.Errorf("region %s: %w", cfg.Region(), err)
	}
	c.Source.SetShowCursor(cfg.ShowCursor)
	c.Muxer.KeepTemp = cfg.KeepTemp
	return session.Options{
		Region:    region,
		TargetFPS: cfg.FPS,
		Codec:     cfg.VideoCodec(),
		AudioMode: cfg.Mode(),
		Gain:      cfg.AudioGain,
		OutputDir: cfg.ResolveOutputDir(),
		Prefix:    cfg.FilenamePrefix,
	}, nil
}

// CountdownSeconds is the configured countdown, or 0 when disabled.
func (c *AppContainer) CountdownSeconds() int {
	if !c.Config.ShowCountdown {
		return 0
	}
	return c.Config.CountdownSeconds
}

// CheckEncoder warns when the external encoder is missing. Recording still
// works for MJPG without audio.
func (c *AppContainer) CheckEncoder() bool {
	p, err := encoder.Path()
	if err != nil {
		if c.Logger != nil {
			c.Logger.Warn("ffmpeg not found; audio muxing and piped codecs will fail", "error", err)
		}
		return false
	}
	if c.Logger != nil {
		c.Logger.Debug("encoder found", "path", p)
	}
	return true
}
