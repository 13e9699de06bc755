package audio

import "math"

// Concat joins blocks in arrival order.
func Concat(blocks [][]float32) []float32 {
	n := 0
	for _, b := range blocks {
		n += len(b)
	}
	out := make([]float32, 0, n)
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}

// ApplyGain multiplies every sample by gain and hard-clips to [-1, 1] in place.
// NaN samples become silence.
func ApplyGain(samples []float32, gain float64) []float32 {
	g := float32(gain)
	for i, s := range samples {
		v := s * g
		switch {
		case math.IsNaN(float64(v)):
			v = 0
		case v > 1:
			v = 1
		case v < -1:
			v = -1
		}
		samples[i] = v
	}
	return samples
}

// Merge truncates both interleaved sequences to the shorter length in whole
// frames (Channels samples each) and averages them sample by sample. A
// trailing partial frame is dropped. When one side is empty the other is
// returned unchanged.
func Merge(a, b []float32) []float32 {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	n := min(len(a), len(b))
	// keep frames whole
	n -= n % Channels
	out := make([]float32, n)
	for i := range out {
		out[i] = (a[i] + b[i]) / 2
	}
	return out
}

// Quantize converts clipped float samples to 16-bit integers.
func Quantize(samples []float32) []int {
	out := make([]int, len(samples))
	for i, s := range samples {
		out[i] = int(math.Trunc(float64(s) * math.MaxInt16))
	}
	return out
}
