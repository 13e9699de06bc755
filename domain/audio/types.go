package audio

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// SampleRate of every captured stream and of the written container.
	SampleRate = 44100
	// Channels of every captured stream and of the written container.
	Channels = 2
	// BlockFrames is the preferred device period in frames.
	BlockFrames = 1024
	// DefaultGain compensates for low raw input levels.
	DefaultGain = 2.0
)

var (
	// ErrDeviceUnavailable means no capture backend or device could be opened.
	ErrDeviceUnavailable = errors.New("audio: device unavailable")
	// ErrNoAudio is returned by the finishing pass when nothing was captured.
	ErrNoAudio = errors.New("audio: no samples captured")
)

// SampleBlock is one device period of interleaved float samples in [-1, 1].
type SampleBlock struct {
	Seq     uint64
	Samples []float32
}

// Frames returns the number of multi-channel frames in the block.
func (b SampleBlock) Frames() int { return len(b.Samples) / Channels }

// Source pushes sample blocks to a callback from a driver goroutine until
// stopped. After Stop returns no further callbacks are made.
type Source interface {
	Start(deliver func(SampleBlock)) error
	Stop() error
	Name() string
}

// Mode selects which inputs are recorded.
type Mode int

const (
	ModeNone Mode = iota
	ModeMicrophone
	ModeSystem
	ModeBoth
)

func (m Mode) String() string {
	switch m {
	case ModeMicrophone:
		return "Microphone"
	case ModeSystem:
		return "SystemAudio"
	case ModeBoth:
		return "Both"
	default:
		return "None"
	}
}

// ParseMode accepts the names produced by String, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ModeNone, nil
	case "microphone", "mic":
		return ModeMicrophone, nil
	case "systemaudio", "system":
		return ModeSystem, nil
	case "both":
		return ModeBoth, nil
	}
	return ModeNone, fmt.Errorf("audio: unknown source %q", s)
}

// UsesMicrophone reports whether m records the microphone.
func (m Mode) UsesMicrophone() bool { return m == ModeMicrophone || m == ModeBoth }

// UsesSystem reports whether m records the system mix.
func (m Mode) UsesSystem() bool { return m == ModeSystem || m == ModeBoth }
