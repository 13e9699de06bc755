package video

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/soocke/screen-recorder-go/domain/capture"
)

// pipeContainer streams raw rgb24 frames into the encoder's stdin; the encoder
// owns the output file.
type pipeContainer struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	width  int
	height int
	logger *slog.Logger
}

func pipeArgs(spec ContainerSpec) []string {
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", spec.Width, spec.Height),
		"-r", strconv.FormatFloat(spec.FPS, 'f', -1, 64),
		"-i", "-",
	}
	args = append(args, spec.Codec.encoderArgs()...)
	return append(args, "-an", spec.Path)
}

func openPipe(bin string, spec ContainerSpec, logger *slog.Logger) (*pipeContainer, error) {
	c := &pipeContainer{width: spec.Width, height: spec.Height, logger: logger}
	c.cmd = exec.Command(bin, pipeArgs(spec)...)
	c.cmd.Stderr = &c.stderr
	stdin, err := c.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdin pipe: %v", ErrContainerOpen, err)
	}
	c.stdin = stdin
	if err := c.cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start encoder: %v", ErrContainerOpen, err)
	}
	if logger != nil {
		logger.Debug("video encoder started", "cmd", c.cmd.String())
	}
	return c, nil
}

func (c *pipeContainer) WriteFrame(f *capture.Frame) error {
	if f.Width != c.width || f.Height != c.height {
		return fmt.Errorf("video: frame %dx%d does not match container %dx%d", f.Width, f.Height, c.width, c.height)
	}
	if _, err := c.stdin.Write(f.Pix); err != nil {
		return fmt.Errorf("video: encoder write: %w", err)
	}
	return nil
}

func (c *pipeContainer) Close() error {
	_ = c.stdin.Close()
	if err := c.cmd.Wait(); err != nil {
		msg := strings.TrimSpace(c.stderr.String())
		return fmt.Errorf("video: encoder exited: %w: %s", err, msg)
	}
	return nil
}
