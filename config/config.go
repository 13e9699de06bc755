package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/soocke/screen-recorder-go/domain/audio"
	"github.com/soocke/screen-recorder-go/domain/capture"
	"github.com/soocke/screen-recorder-go/domain/video"
)

const (
	appDir   = "screen-recorder"
	fileName = "config.json"
	// EnvPrefix prefixes environment overrides, e.g. SCREENREC_FPS=15.
	EnvPrefix = "SCREENREC"

	maxFPS = 120
)

// Config holds runtime configuration for capture and output.
// Fields are loaded from a JSON file, then environment, then command-line flags.
type Config struct {
	Debug bool `json:"debug" mapstructure:"debug"`

	// Output
	OutputDir      string `json:"output_dir" mapstructure:"output_dir"`
	FilenamePrefix string `json:"filename_prefix" mapstructure:"filename_prefix"`
	KeepTemp       bool   `json:"keep_temp" mapstructure:"keep_temp"`
	EncoderPath    string `json:"encoder_path" mapstructure:"encoder_path"`

	// Video
	FPS        float64 `json:"fps" mapstructure:"fps"`
	Codec      string  `json:"codec" mapstructure:"codec"`
	ShowCursor bool    `json:"show_cursor" mapstructure:"show_cursor"`

	// Audio
	AudioSource  string  `json:"audio_source" mapstructure:"audio_source"`
	MicDevice    string  `json:"mic_device" mapstructure:"mic_device"`
	SystemDevice string  `json:"system_device" mapstructure:"system_device"`
	AudioGain    float64 `json:"audio_gain" mapstructure:"audio_gain"`

	ShowCountdown    bool `json:"show_countdown" mapstructure:"show_countdown"`
	CountdownSeconds int  `json:"countdown_seconds" mapstructure:"countdown_seconds"`

	// Selection rectangle; zero width or height records the full screen.
	SelectionX int `json:"selection_x" mapstructure:"selection_x"`
	SelectionY int `json:"selection_y" mapstructure:"selection_y"`
	SelectionW int `json:"selection_w" mapstructure:"selection_w"`
	SelectionH int `json:"selection_h" mapstructure:"selection_h"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:        DefaultOutputDir(),
		FilenamePrefix:   "ScreenRecord",
		FPS:              30,
		Codec:            string(video.CodecMJPG),
		ShowCursor:       true,
		AudioSource:      audio.ModeMicrophone.String(),
		AudioGain:        audio.DefaultGain,
		ShowCountdown:    true,
		CountdownSeconds: 3,
	}
}

// DefaultOutputDir is the user's videos folder, or ~/Videos when the platform
// does not define one.
func DefaultOutputDir() string {
	if xdg.UserDirs.Videos != "" {
		return xdg.UserDirs.Videos
	}
	return filepath.Join(xdg.Home, "Videos")
}

// DefaultPath returns the per-user config file location, creating its parent
// directory. It falls back to the working directory.
func DefaultPath() string {
	p, err := xdg.ConfigFile(filepath.Join(appDir, fileName))
	if err != nil {
		return fileName
	}
	return p
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.FPS <= 0 || c.FPS > maxFPS {
		c.FPS = 30
	}
	if codec, err := video.ParseCodec(c.Codec); err != nil {
		c.Codec = string(video.CodecMJPG)
	} else {
		c.Codec = string(codec)
	}
	if mode, err := audio.ParseMode(c.AudioSource); err != nil {
		c.AudioSource = audio.ModeNone.String()
	} else {
		c.AudioSource = mode.String()
	}
	if c.AudioGain <= 0 {
		c.AudioGain = audio.DefaultGain
	}
	if strings.TrimSpace(c.FilenamePrefix) == "" {
		c.FilenamePrefix = "ScreenRecord"
	}
	if c.CountdownSeconds < 0 {
		c.CountdownSeconds = 0
	}
	if c.SelectionW < 0 || c.SelectionH < 0 {
		c.SelectionW, c.SelectionH = 0, 0
	}
	return nil
}

// Region returns the configured selection; the zero region means full screen.
func (c *Config) Region() capture.Region {
	if c.SelectionW <= 0 || c.SelectionH <= 0 {
		return capture.Region{}
	}
	return capture.Region{Left: c.SelectionX, Top: c.SelectionY, Width: c.SelectionW, Height: c.SelectionH}
}

// SetRegion stores r as the selection.
func (c *Config) SetRegion(r capture.Region) {
	c.SelectionX, c.SelectionY, c.SelectionW, c.SelectionH = r.Left, r.Top, r.Width, r.Height
}

// Mode returns the parsed audio source.
func (c *Config) Mode() audio.Mode {
	m, _ := audio.ParseMode(c.AudioSource)
	return m
}

// VideoCodec returns the parsed codec.
func (c *Config) VideoCodec() video.Codec {
	codec, err := video.ParseCodec(c.Codec)
	if err != nil {
		return video.CodecMJPG
	}
	return codec
}

// Load reads configuration from the given JSON file path, overlaid with
// SCREENREC_* environment variables. A missing file yields the defaults. On a
// decode error the defaults are returned with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	v.SetConfigType("json")
	if err := setDefaults(v, cfg); err != nil {
		return cfg, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return DefaultConfig(), err
			}
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// setDefaults registers every field so AutomaticEnv can override keys absent
// from the file.
func setDefaults(v *viper.Viper, cfg *Config) error {
	b, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	for k, val := range m {
		v.SetDefault(k, val)
	}
	return nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// ResolveOutputDir returns a writable output folder: the configured one,
// created when missing, else the working directory, else the temp dir.
func (c *Config) ResolveOutputDir() string {
	if dir := strings.TrimSpace(c.OutputDir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			return dir
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return os.TempDir()
}
