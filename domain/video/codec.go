package video

import (
	"fmt"
	"strings"
)

// Codec identifies the temporary video container format.
type Codec string

const (
	// CodecMJPG writes Motion-JPEG AVI in process.
	CodecMJPG Codec = "MJPG"
	// CodecXVID pipes raw frames to the encoder (MPEG-4 ASP, xvid tag).
	CodecXVID Codec = "XVID"
	// CodecMP4V pipes raw frames to the encoder (MPEG-4 part 2).
	CodecMP4V Codec = "MP4V"
	// CodecH264 pipes raw frames to the encoder (libx264, lossless-ish preset).
	CodecH264 Codec = "H264"
)

// Codecs lists the supported codecs in display order.
var Codecs = []Codec{CodecMJPG, CodecXVID, CodecMP4V, CodecH264}

// ParseCodec returns the codec matching s case-insensitively.
func ParseCodec(s string) (Codec, error) {
	c := Codec(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Codecs {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("video: unknown codec %q", s)
}

// Extension returns the file extension, including the dot, for the codec's
// container.
func (c Codec) Extension() string {
	if c == CodecH264 {
		return ".mkv"
	}
	return ".avi"
}

// piped reports whether frames go through the external encoder.
func (c Codec) piped() bool { return c != CodecMJPG }

// encoderArgs returns the output codec arguments for piped codecs.
func (c Codec) encoderArgs() []string {
	switch c {
	case CodecXVID:
		return []string{"-c:v", "mpeg4", "-vtag", "xvid", "-q:v", "3"}
	case CodecMP4V:
		return []string{"-c:v", "mpeg4", "-q:v", "3"}
	case CodecH264:
		return []string{"-c:v", "libx264", "-preset", "ultrafast", "-crf", "18", "-pix_fmt", "yuv444p"}
	default:
		return nil
	}
}
