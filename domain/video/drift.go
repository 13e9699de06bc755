package video

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// DriftRecord captures the rate the video loop actually achieved. It is
// computed once when the sink closes and consumed once by the mux step.
type DriftRecord struct {
	MeasuredFPS float64       `json:"measured_fps"`
	TargetFPS   float64       `json:"target_fps"`
	Frames      uint64        `json:"frames"`
	Elapsed     time.Duration `json:"elapsed_ns"`
}

// newDriftRecord derives the measured rate from a frame count and the active
// capture time. Zero elapsed time yields a zero rate.
func newDriftRecord(frames uint64, elapsed time.Duration, target float64) DriftRecord {
	rec := DriftRecord{TargetFPS: target, Frames: frames, Elapsed: elapsed}
	if elapsed > 0 {
		rec.MeasuredFPS = float64(frames) / elapsed.Seconds()
	}
	return rec
}

// DriftPath returns the sidecar path keyed by the video path.
func DriftPath(videoPath string) string { return videoPath + ".drift.json" }

// SaveDrift writes rec next to videoPath.
func SaveDrift(videoPath string, rec DriftRecord) error {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(DriftPath(videoPath), b, 0o644)
}

// LoadDrift reads the sidecar for videoPath.
func LoadDrift(videoPath string) (DriftRecord, error) {
	var rec DriftRecord
	b, err := os.ReadFile(DriftPath(videoPath))
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(b, &rec); err != nil {
		return rec, fmt.Errorf("video: decode drift record: %w", err)
	}
	return rec, nil
}

// RemoveDrift deletes the sidecar; a missing file is not an error.
func RemoveDrift(videoPath string) error {
	err := os.Remove(DriftPath(videoPath))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
