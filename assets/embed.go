package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/png"
)

// RecordIconPNG contains the raw PNG bytes of the recording indicator icon.
//
//go:embed record_icon.png
var RecordIconPNG []byte

// RecordIcon decodes the embedded PNG into an image.Image.
func RecordIcon() (image.Image, error) {
	if len(RecordIconPNG) == 0 {
		return nil, fmt.Errorf("embedded record_icon.png is empty")
	}
	return png.Decode(bytes.NewReader(RecordIconPNG))
}
