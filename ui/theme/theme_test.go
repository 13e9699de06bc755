package theme

import "testing"

func TestStateStyle(t *testing.T) {
	cases := map[string]string{
		"recording": StyleRecordingLabel,
		"paused":    StylePausedLabel,
		"idle":      StyleIdleLabel,
		"stopping":  StyleIdleLabel,
	}
	for state, want := range cases {
		if got := StateStyle(state); got != want {
			t.Fatalf("StateStyle(%q) = %q, want %q", state, got, want)
		}
	}
}

func TestCurrentPalette_DarkDiffers(t *testing.T) {
	darkMode = false
	light := CurrentPalette()
	darkMode = true
	dark := CurrentPalette()
	darkMode = false
	if light.AppBg == dark.AppBg || light.Danger == "" || dark.Warn == "" {
		t.Fatalf("unexpected palettes %+v / %+v", light, dark)
	}
}
