// SPDX-License-Identifier: EPL-2.0

package utils

import "github.com/go-audio/audio"

// FloatToPCM scales x in [-1, 1] to a signed PCM value of bitDepth bits.
// Out of range input is clamped.
func FloatToPCM(x float32, bitDepth int) int {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use the positive max for both signs to avoid overflow
	return int(float64(x) * float64(audio.IntMaxSignedValue(bitDepth)))
}

// PCMToFloat maps a signed PCM value of bitDepth bits back to [-1, 1].
func PCMToFloat(v int, bitDepth int) float32 {
	return float32(float64(v) / float64(audio.IntMaxSignedValue(bitDepth)))
}
