package assets

import "testing"

func TestRecordIconDecodes(t *testing.T) {
	img, err := RecordIcon()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("icon size %v", b)
	}
}
