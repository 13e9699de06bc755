package audio

import (
	"testing"

	"github.com/gen2brain/malgo"
)

func TestDeviceTypes_SystemLoopbackSearchesPlayback(t *testing.T) {
	open, enum := deviceTypes(KindSystem, "windows")
	if open != malgo.Loopback || enum != malgo.Playback {
		t.Fatalf("windows system: open=%v enum=%v", open, enum)
	}
	open, enum = deviceTypes(KindMicrophone, "windows")
	if open != malgo.Capture || enum != malgo.Capture {
		t.Fatalf("windows mic: open=%v enum=%v", open, enum)
	}
	open, enum = deviceTypes(KindSystem, "linux")
	if open != malgo.Capture || enum != malgo.Capture {
		t.Fatalf("linux system: open=%v enum=%v", open, enum)
	}
}

func TestMatchDevice(t *testing.T) {
	devices := []Device{
		{ID: "a1", Name: "Microphone (USB Audio)"},
		{ID: "b2", Name: "Speakers (Realtek)"},
		{ID: "speakers", Name: "Line In"},
	}
	if i, ok := matchDevice(devices, "speakers"); !ok || i != 2 {
		t.Fatalf("exact ID should win over name: %d %v", i, ok)
	}
	if i, ok := matchDevice(devices, "REALTEK"); !ok || i != 1 {
		t.Fatalf("name substring: %d %v", i, ok)
	}
	if _, ok := matchDevice(devices, "hdmi"); ok {
		t.Fatal("unexpected match")
	}
}

func TestCaptureKind(t *testing.T) {
	if captureKind("Monitor of Built-in Audio") != KindSystem {
		t.Fatal("monitor source should be system audio")
	}
	if captureKind("Built-in Microphone") != KindMicrophone {
		t.Fatal("microphone misclassified")
	}
}
