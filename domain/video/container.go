package video

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/soocke/screen-recorder-go/domain/capture"
)

// ErrContainerOpen is returned when the video container cannot be created.
// Nothing can be recorded, so the session aborts.
var ErrContainerOpen = errors.New("video: cannot open container")

// Container is an append-only video file. Frames must match the dimensions
// the container was opened with.
type Container interface {
	WriteFrame(f *capture.Frame) error
	Close() error
}

// ContainerSpec describes the container to open.
type ContainerSpec struct {
	Path   string
	Codec  Codec
	Width  int
	Height int
	FPS    float64
}

// Opener creates containers.
type Opener interface {
	Open(spec ContainerSpec) (Container, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(spec ContainerSpec) (Container, error)

func (f OpenerFunc) Open(spec ContainerSpec) (Container, error) { return f(spec) }

// FileOpener opens MJPG containers in process and pipes every other codec to
// the external encoder resolved by EncoderPath.
type FileOpener struct {
	EncoderPath func() (string, error)
	JPEGQuality int
	Logger      *slog.Logger
}

// NewFileOpener returns the default opener.
func NewFileOpener(encoderPath func() (string, error), logger *slog.Logger) *FileOpener {
	return &FileOpener{EncoderPath: encoderPath, JPEGQuality: defaultJPEGQuality, Logger: logger}
}

func (o *FileOpener) Open(spec ContainerSpec) (Container, error) {
	if spec.Width <= 0 || spec.Height <= 0 || spec.FPS <= 0 {
		return nil, fmt.Errorf("%w: invalid spec %dx%d@%.2f", ErrContainerOpen, spec.Width, spec.Height, spec.FPS)
	}
	if !spec.Codec.piped() {
		return openMJPEG(spec, o.JPEGQuality)
	}
	if o.EncoderPath == nil {
		return nil, fmt.Errorf("%w: codec %s needs an encoder", ErrContainerOpen, spec.Codec)
	}
	bin, err := o.EncoderPath()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContainerOpen, err)
	}
	return openPipe(bin, spec, o.Logger)
}
