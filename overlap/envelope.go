// SPDX-License-Identifier: EPL-2.0

package overlap

import "math"

// Envelope returns the triangular blending weights for a window of size
// frames: a ramp up over the first half and down over the second, scaled to
// a peak of 1 and raised to power. Every weight is strictly positive.
func Envelope(size int, power float64) []float32 {
	env := make([]float32, size)
	half := size / 2

	peak := 0
	for i := range size {
		v := size - i
		if i < half {
			v = i + 1
		}
		env[i] = float32(v)
		peak = max(peak, v)
	}

	for i, v := range env {
		w := float64(v) / float64(peak)
		if power != 1 {
			w = math.Pow(w, power)
		}
		env[i] = float32(w)
	}

	return env
}
