package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Field describes one user-editable option by its file key.
type Field struct {
	Key   string
	Label string
}

// EditableFields lists the options exposed in the control window, in display
// order.
var EditableFields = []Field{
	{"fps", "Target FPS"},
	{"codec", "Codec (MJPG/XVID/MP4V/H264)"},
	{"audio_source", "Audio (None/Microphone/SystemAudio/Both)"},
	{"mic_device", "Microphone device"},
	{"system_device", "System audio device"},
	{"audio_gain", "Audio gain"},
	{"filename_prefix", "Filename prefix"},
	{"output_dir", "Output folder"},
	{"show_cursor", "Show cursor (true/false)"},
	{"show_countdown", "Countdown (true/false)"},
	{"keep_temp", "Keep temp files (true/false)"},
}

// Get returns the textual value of the option named key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "fps":
		return strconv.FormatFloat(c.FPS, 'f', -1, 64), nil
	case "codec":
		return c.Codec, nil
	case "audio_source":
		return c.AudioSource, nil
	case "mic_device":
		return c.MicDevice, nil
	case "system_device":
		return c.SystemDevice, nil
	case "audio_gain":
		return strconv.FormatFloat(c.AudioGain, 'f', -1, 64), nil
	case "filename_prefix":
		return c.FilenamePrefix, nil
	case "output_dir":
		return c.OutputDir, nil
	case "encoder_path":
		return c.EncoderPath, nil
	case "show_cursor":
		return strconv.FormatBool(c.ShowCursor), nil
	case "show_countdown":
		return strconv.FormatBool(c.ShowCountdown), nil
	case "keep_temp":
		return strconv.FormatBool(c.KeepTemp), nil
	case "debug":
		return strconv.FormatBool(c.Debug), nil
	}
	return "", fmt.Errorf("config: unknown option %q", key)
}

// Set parses value into the option named key. The config is left unchanged
// when value does not parse.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "fps":
		return setFloat(&c.FPS, key, value)
	case "audio_gain":
		return setFloat(&c.AudioGain, key, value)
	case "codec":
		c.Codec = strings.ToUpper(value)
	case "audio_source":
		c.AudioSource = value
	case "mic_device":
		c.MicDevice = value
	case "system_device":
		c.SystemDevice = value
	case "filename_prefix":
		c.FilenamePrefix = value
	case "output_dir":
		c.OutputDir = value
	case "encoder_path":
		c.EncoderPath = value
	case "show_cursor":
		return setBool(&c.ShowCursor, key, value)
	case "show_countdown":
		return setBool(&c.ShowCountdown, key, value)
	case "keep_temp":
		return setBool(&c.KeepTemp, key, value)
	case "debug":
		return setBool(&c.Debug, key, value)
	default:
		return fmt.Errorf("config: unknown option %q", key)
	}
	return nil
}

func setFloat(dst *float64, key, s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = f
	return nil
}

func setBool(dst *bool, key, s string) error {
	b, ok := parseBoolLoose(s)
	if !ok {
		return fmt.Errorf("config: %s: invalid boolean %q", key, s)
	}
	*dst = b
	return nil
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
