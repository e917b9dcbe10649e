// SPDX-License-Identifier: EPL-2.0

package audio

// Remix maps planar samples onto a different channel count and writes the
// result into dst, which must hold channels slices of at least len(src[0]).
//
// Downmixing averages source channel s into destination channel s%channels,
// so stereo folds to mono and four channels fold to two pairwise. Upmixing
// replicates source channel d%len(src) into destination channel d.
func Remix(dst, src [][]float32) {
	channels := len(dst)
	srcChannels := len(src)
	if channels == 0 || srcChannels == 0 {
		return
	}
	frames := len(src[0])

	if srcChannels == channels {
		for c := range src {
			copy(dst[c][:frames], src[c])
		}
		return
	}

	if srcChannels < channels {
		for d := range dst {
			copy(dst[d][:frames], src[d%srcChannels])
		}
		return
	}

	// Unrolled loop for the common case
	if channels == 1 && srcChannels == 2 {
		left, right, out := src[0], src[1], dst[0]
		for f := range frames {
			out[f] = (left[f] + right[f]) * 0.5
		}
		return
	}

	for d := range dst {
		out := dst[d][:frames]
		clear(out)
		count := 0
		for s := d; s < srcChannels; s += channels {
			for f, v := range src[s] {
				out[f] += v
			}
			count++
		}
		inv := float32(1.0) / float32(count)
		for f := range out {
			out[f] *= inv
		}
	}
}
