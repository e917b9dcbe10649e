// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/stemflow/utils"
)

// Resampler converts a stream between two sample rates and channel layouts
// using cubic interpolation. It is a Transformer: written chunks are queued,
// and every Read emits exactly FrameSize frames once enough input is buffered.
// After the input closes, the remainder is emitted, followed by the terminal
// signal. Includes basic anti-aliasing filtering when downsampling.
type Resampler struct {
	src       Format
	dst       Format
	frameSize int

	// Queued input frames, already remixed to the destination layout.
	// in[c][0] is one frame of history once output has started.
	in [][]float32
	// Output frames interpolated so far and input frames dropped from in.
	// Output frame k sits at input position k*srcRate/dstRate, kept exact.
	produced int64
	dropped  int64

	// Interpolated frames waiting to be emitted
	out [][]float32

	mixBuf [][]float32

	// Simple low-pass filter state for anti-aliasing (when downsampling)
	filterState  []float32
	filterPrimed bool
	useFilter    bool
	filterAlpha  float32

	inputClosed  bool
	outputClosed bool
}

// NewResampler creates a resampler from src to dst. A zero dst.Channels keeps
// the source channel count. frameSize is the number of frames per emitted
// chunk, usually the frame size of the next stage.
func NewResampler(src, dst Format, frameSize int) (*Resampler, error) {
	if frameSize <= 0 {
		return nil, ErrInvalidFrameSize
	}
	if src.SampleRate <= 0 || src.Channels <= 0 || dst.SampleRate <= 0 || dst.Channels < 0 {
		return nil, fmt.Errorf("%w: resample %s to %s", ErrUnsupportedFormat, src, dst)
	}
	if dst.Channels == 0 {
		dst.Channels = src.Channels
	}

	ratio := float64(src.SampleRate) / float64(dst.SampleRate)

	// Enable simple low-pass filter when downsampling
	useFilter := ratio > 1.0
	var filterAlpha float32
	if useFilter {
		// Simple one-pole low-pass filter
		// Cutoff at Nyquist frequency of destination rate
		filterAlpha = 0.5
	}

	r := &Resampler{
		src:         src,
		dst:         dst,
		frameSize:   frameSize,
		in:          make([][]float32, dst.Channels),
		out:         make([][]float32, dst.Channels),
		mixBuf:      make([][]float32, dst.Channels),
		useFilter:   useFilter,
		filterAlpha: filterAlpha,
		filterState: make([]float32, dst.Channels),
	}

	return r, nil
}

func (r *Resampler) Format() Format { return r.dst }
func (r *Resampler) FrameSize() int { return r.frameSize }

// FitInput sizes the chunks of in, when it has SetFrameSize, so that one
// read resamples to at most FrameSize frames. It reports whether in was
// resized.
func (r *Resampler) FitInput(in Source) bool {
	fs, ok := in.(interface{ SetFrameSize(int) })
	if !ok {
		return false
	}
	fs.SetFrameSize(max(1, r.frameSize*r.src.SampleRate/r.dst.SampleRate))
	return true
}

// Close releases the queued samples. Reads after Close report the end of
// the stream.
func (r *Resampler) Close() error {
	r.outputClosed = true
	r.in, r.out, r.mixBuf = nil, nil, nil
	return nil
}

func (r *Resampler) Write(c *Chunk, s Signal) error {
	if r.outputClosed {
		return nil
	}

	if !c.Empty() {
		if len(c.Data) != r.src.Channels {
			return fmt.Errorf("%w: resampler expects %d channels, got %d",
				ErrChannelMismatch, r.src.Channels, len(c.Data))
		}
		if c.Format.SampleRate != 0 && c.Format.SampleRate != r.src.SampleRate {
			return fmt.Errorf("%w: resampler expects %d Hz, got %d Hz",
				ErrFormatMismatch, r.src.SampleRate, c.Format.SampleRate)
		}
		r.push(c.Data)
	}

	if s.Ended {
		r.inputClosed = true
	}

	return nil
}

// push remixes, filters and queues one block of input frames.
func (r *Resampler) push(data [][]float32) {
	frames := len(data[0])
	for c := range r.mixBuf {
		if cap(r.mixBuf[c]) < frames {
			r.mixBuf[c] = make([]float32, frames)
		}
		r.mixBuf[c] = r.mixBuf[c][:frames]
	}
	Remix(r.mixBuf, data)

	if r.useFilter {
		// Initialize filter state with first sample to avoid warm-up transients
		if !r.filterPrimed {
			for c := range r.filterState {
				r.filterState[c] = r.mixBuf[c][0]
			}
			r.filterPrimed = true
		}
		for c, samples := range r.mixBuf {
			state := r.filterState[c]
			for i, x := range samples {
				// One-pole low-pass: y[n] = alpha * x[n] + (1-alpha) * y[n-1]
				state = r.filterAlpha*x + (1-r.filterAlpha)*state
				samples[i] = state
			}
			r.filterState[c] = state
		}
	}

	for c := range r.in {
		r.in[c] = append(r.in[c], r.mixBuf[c]...)
	}
}

// position returns the queue index and fractional offset of the next
// output frame.
func (r *Resampler) position() (int, float32) {
	srcRate := int64(r.src.SampleRate)
	dstRate := int64(r.dst.SampleRate)
	num := r.produced * srcRate
	idx := num/dstRate - r.dropped
	return int(idx), float32(num%dstRate) / float32(dstRate)
}

// produce interpolates every output frame the queued input allows.
func (r *Resampler) produce() {
	avail := len(r.in[0])

	for {
		i, alpha := r.position()
		if r.inputClosed {
			if i >= avail {
				break
			}
		} else if i+2 >= avail {
			// Not enough lookahead for cubic interpolation yet
			break
		}

		prev := max(i-1, 0)
		next := min(i+1, avail-1)
		next2 := min(i+2, avail-1)

		for c, y := range r.in {
			// Edge frames are duplicated at both ends of the stream
			r.out[c] = append(r.out[c], utils.CubicInterpolate(y[prev], y[i], y[next], y[next2], alpha))
		}

		r.produced++
	}

	// Drop consumed input, keep one frame of history
	next, _ := r.position()
	drop := min(next-1, avail)
	if drop > 0 {
		for c := range r.in {
			r.in[c] = append(r.in[c][:0], r.in[c][drop:]...)
		}
		r.dropped += int64(drop)
	}
}

func (r *Resampler) emit(frames int) *Chunk {
	chunk := NewChunk(r.dst, frames)
	for c := range r.out {
		copy(chunk.Data[c], r.out[c][:frames])
		r.out[c] = append(r.out[c][:0], r.out[c][frames:]...)
	}
	return chunk
}

func (r *Resampler) Read() (*Chunk, Signal, error) {
	if r.outputClosed {
		return nil, Signal{Ended: true}, nil
	}

	r.produce()

	have := len(r.out[0])
	if have >= r.frameSize {
		return r.emit(r.frameSize), Signal{Produced: true}, nil
	}

	if !r.inputClosed {
		return nil, Signal{}, nil
	}

	if have > 0 {
		return r.emit(have), Signal{Produced: true}, nil
	}

	_ = r.Close()
	return nil, Signal{Ended: true}, nil
}
