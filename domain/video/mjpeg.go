package video

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"github.com/icza/mjpeg"

	"github.com/soocke/screen-recorder-go/domain/capture"
)

const defaultJPEGQuality = 85

// mjpegContainer encodes every frame as JPEG into a Motion-JPEG AVI.
type mjpegContainer struct {
	w       mjpeg.AviWriter
	width   int
	height  int
	quality int
	rgba    *image.RGBA
	buf     bytes.Buffer
}

func openMJPEG(spec ContainerSpec, quality int) (*mjpegContainer, error) {
	fps := int32(math.Round(spec.FPS))
	if fps < 1 {
		fps = 1
	}
	w, err := mjpeg.New(spec.Path, int32(spec.Width), int32(spec.Height), fps)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContainerOpen, err)
	}
	if quality <= 0 || quality > 100 {
		quality = defaultJPEGQuality
	}
	return &mjpegContainer{
		w:       w,
		width:   spec.Width,
		height:  spec.Height,
		quality: quality,
		rgba:    image.NewRGBA(image.Rect(0, 0, spec.Width, spec.Height)),
	}, nil
}

func (c *mjpegContainer) WriteFrame(f *capture.Frame) error {
	if f.Width != c.width || f.Height != c.height {
		return fmt.Errorf("video: frame %dx%d does not match container %dx%d", f.Width, f.Height, c.width, c.height)
	}
	// RGB -> RGBA so the jpeg encoder takes its fast path
	px := c.rgba.Pix
	for i, j := 0, 0; i < len(f.Pix); i, j = i+3, j+4 {
		px[j], px[j+1], px[j+2], px[j+3] = f.Pix[i], f.Pix[i+1], f.Pix[i+2], 0xFF
	}
	c.buf.Reset()
	if err := jpeg.Encode(&c.buf, c.rgba, &jpeg.Options{Quality: c.quality}); err != nil {
		return fmt.Errorf("video: jpeg encode: %w", err)
	}
	return c.w.AddFrame(c.buf.Bytes())
}

func (c *mjpegContainer) Close() error { return c.w.Close() }
