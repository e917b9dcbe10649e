// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"strings"
)

// SampleFormat is the on-disk representation a stream is encoded to or
// decoded from. Inside the pipeline samples are always float32.
type SampleFormat int

const (
	SampleFormatF32 SampleFormat = iota
	SampleFormatU8
	SampleFormatS16
	SampleFormatS24
	SampleFormatS32
)

var sampleFormatNames = map[SampleFormat]string{
	SampleFormatF32: "f32",
	SampleFormatU8:  "u8",
	SampleFormatS16: "s16",
	SampleFormatS24: "s24",
	SampleFormatS32: "s32",
}

func (f SampleFormat) String() string {
	if name, ok := sampleFormatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("SampleFormat(%d)", int(f))
}

// BitDepth returns the number of bits per sample.
func (f SampleFormat) BitDepth() int {
	switch f {
	case SampleFormatU8:
		return 8
	case SampleFormatS16:
		return 16
	case SampleFormatS24:
		return 24
	default:
		return 32
	}
}

// ParseSampleFormat maps names such as "s16" or "f32" to a SampleFormat.
func ParseSampleFormat(name string) (SampleFormat, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range sampleFormatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: sample format %q", ErrUnsupportedFormat, name)
}

// SampleFormatForDepth returns the integer format for a PCM bit depth.
func SampleFormatForDepth(bits int) (SampleFormat, error) {
	switch bits {
	case 8:
		return SampleFormatU8, nil
	case 16:
		return SampleFormatS16, nil
	case 24:
		return SampleFormatS24, nil
	case 32:
		return SampleFormatS32, nil
	}
	return 0, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedFormat, bits)
}

// Format tags the samples carried by a Chunk.
type Format struct {
	// SampleRate in Hz.
	SampleRate int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels int
	// SampleFormat the samples were decoded from or will be encoded to.
	SampleFormat SampleFormat
}

func (f Format) String() string {
	return fmt.Sprintf("%dHz/%dch/%s", f.SampleRate, f.Channels, f.SampleFormat)
}

// Chunk is a bounded block of planar float32 samples in [-1,1].
// Data[c][i] is frame i of channel c; every channel has the same length.
type Chunk struct {
	Format Format
	Data   [][]float32
}

// NewChunk allocates a silent chunk of the given number of frames.
func NewChunk(format Format, frames int) *Chunk {
	data := make([][]float32, format.Channels)
	backing := make([]float32, format.Channels*frames)
	for c := range data {
		data[c] = backing[c*frames : (c+1)*frames : (c+1)*frames]
	}
	return &Chunk{Format: format, Data: data}
}

// Frames returns the number of samples per channel.
func (c *Chunk) Frames() int {
	if c == nil || len(c.Data) == 0 {
		return 0
	}
	return len(c.Data[0])
}

// Empty reports whether the chunk carries no samples.
func (c *Chunk) Empty() bool { return c.Frames() == 0 }

// Interleave writes the chunk as interleaved samples into dst, growing it
// when needed, and returns the filled slice.
func (c *Chunk) Interleave(dst []float32) []float32 {
	channels := len(c.Data)
	frames := c.Frames()
	n := channels * frames
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]

	for ch, samples := range c.Data {
		for i, v := range samples {
			dst[i*channels+ch] = v
		}
	}
	return dst
}

// Deinterleave builds a chunk from interleaved samples. A trailing partial
// frame is dropped.
func Deinterleave(format Format, src []float32) *Chunk {
	channels := format.Channels
	if channels <= 0 {
		return &Chunk{Format: format}
	}
	frames := len(src) / channels
	c := NewChunk(format, frames)

	// Unrolled for the common layouts
	switch channels {
	case 1:
		copy(c.Data[0], src[:frames])
	case 2:
		left, right := c.Data[0], c.Data[1]
		for f := range frames {
			idx := f << 1
			left[f] = src[idx]
			right[f] = src[idx+1]
		}
	default:
		for f := range frames {
			base := f * channels
			for ch := range channels {
				c.Data[ch][f] = src[base+ch]
			}
		}
	}
	return c
}
