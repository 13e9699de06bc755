package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"
)

// Kind distinguishes microphone capture from system-mix capture.
type Kind int

const (
	KindMicrophone Kind = iota
	KindSystem
)

func (k Kind) String() string {
	if k == KindSystem {
		return "system"
	}
	return "microphone"
}

// Device describes a device usable as mic_device or system_device.
type Device struct {
	ID      string
	Name    string
	Kind    Kind
	Default bool
}

// deviceTypes returns the device type opened for kind and the device list
// its configured name is looked up in. WASAPI loopback records a render
// endpoint, so on Windows system capture searches playback devices.
func deviceTypes(kind Kind, goos string) (open, enumerate malgo.DeviceType) {
	if kind == KindSystem && goos == "windows" {
		return malgo.Loopback, malgo.Playback
	}
	return malgo.Capture, malgo.Capture
}

// captureKind classifies a capture device. PulseAudio and PipeWire expose the
// output mix as "Monitor of ..." capture sources.
func captureKind(name string) Kind {
	if strings.Contains(strings.ToLower(name), "monitor") {
		return KindSystem
	}
	return KindMicrophone
}

// ListDevices enumerates devices for both kinds. Elsewhere than Windows,
// monitor sources are ordinary capture devices; on Windows system audio is
// recorded from playback endpoints through loopback.
func ListDevices() ([]Device, error) {
	return listDevices(runtime.GOOS)
}

func listDevices(goos string) ([]Device, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()
	infos, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	out := make([]Device, 0, len(infos))
	for _, d := range toDevices(infos) {
		d.Kind = captureKind(d.Name)
		out = append(out, d)
	}
	if _, enum := deviceTypes(KindSystem, goos); enum == malgo.Playback {
		playback, err := ctx.Devices(malgo.Playback)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
		}
		for _, d := range toDevices(playback) {
			d.Kind = KindSystem
			out = append(out, d)
		}
	}
	return out, nil
}

func toDevices(infos []malgo.DeviceInfo) []Device {
	out := make([]Device, len(infos))
	for i := range infos {
		out[i] = Device{
			ID:      infos[i].ID.String(),
			Name:    infos[i].Name(),
			Default: infos[i].IsDefault != 0,
		}
	}
	return out
}

// matchDevice returns the index of the device whose ID equals want, else the
// first whose name contains want case-insensitively.
func matchDevice(devices []Device, want string) (int, bool) {
	for i, d := range devices {
		if d.ID == want {
			return i, true
		}
	}
	needle := strings.ToLower(want)
	for i, d := range devices {
		if strings.Contains(strings.ToLower(d.Name), needle) {
			return i, true
		}
	}
	return -1, false
}

// DeviceSource captures float32 stereo blocks from a miniaudio device.
type DeviceSource struct {
	kind   Kind
	device string // ID or name substring; empty selects the default

	mu  sync.Mutex
	ctx *malgo.AllocatedContext
	dev *malgo.Device
	seq atomic.Uint64
}

// NewDeviceSource returns a source for the given kind. device may be a backend
// ID, a name substring or empty.
func NewDeviceSource(kind Kind, device string) *DeviceSource {
	return &DeviceSource{kind: kind, device: device}
}

func (s *DeviceSource) Name() string {
	if s.device == "" {
		return s.kind.String()
	}
	return s.kind.String() + ":" + s.device
}

// Start opens the device and begins delivering blocks. Any backend failure is
// reported as ErrDeviceUnavailable.
func (s *DeviceSource) Start(deliver func(SampleBlock)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev != nil {
		return nil
	}
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	devType, enumType := deviceTypes(s.kind, runtime.GOOS)
	cfg := malgo.DefaultDeviceConfig(devType)
	cfg.Capture.Format = malgo.FormatF32
	cfg.Capture.Channels = Channels
	cfg.SampleRate = SampleRate
	cfg.PeriodSizeInFrames = BlockFrames
	cfg.Alsa.NoMMap = 1

	want := s.device
	if want == "" && s.kind == KindSystem && devType == malgo.Capture {
		want = "monitor"
	}
	if want != "" {
		id, err := findDevice(ctx, enumType, want)
		if err != nil {
			_ = ctx.Uninit()
			ctx.Free()
			return err
		}
		cfg.Capture.DeviceID = id.Pointer()
	}

	onData := func(_, in []byte, frames uint32) {
		n := int(frames) * Channels
		if len(in) < n*4 {
			n = len(in) / 4
		}
		samples := make([]float32, n)
		for i := range samples {
			samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(in[i*4:]))
		}
		deliver(SampleBlock{Seq: s.seq.Add(1), Samples: samples})
	}
	dev, err := malgo.InitDevice(ctx.Context, cfg, malgo.DeviceCallbacks{Data: onData})
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("%w: %s: %v", ErrDeviceUnavailable, s.Name(), err)
	}
	if err := dev.Start(); err != nil {
		dev.Uninit()
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("%w: start %s: %v", ErrDeviceUnavailable, s.Name(), err)
	}
	s.ctx, s.dev = ctx, dev
	return nil
}

// Stop halts the device. Uninit blocks until the driver callback has returned.
func (s *DeviceSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return nil
	}
	err := s.dev.Stop()
	s.dev.Uninit()
	_ = s.ctx.Uninit()
	s.ctx.Free()
	s.dev, s.ctx = nil, nil
	return err
}

func findDevice(ctx *malgo.AllocatedContext, enumType malgo.DeviceType, want string) (malgo.DeviceID, error) {
	infos, err := ctx.Devices(enumType)
	if err != nil {
		return malgo.DeviceID{}, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	i, ok := matchDevice(toDevices(infos), want)
	if !ok {
		return malgo.DeviceID{}, fmt.Errorf("%w: no %s device matching %q", ErrDeviceUnavailable, enumName(enumType), want)
	}
	return infos[i].ID, nil
}

func enumName(t malgo.DeviceType) string {
	if t == malgo.Playback {
		return "playback"
	}
	return "capture"
}
