// SPDX-License-Identifier: EPL-2.0

package overlap

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ik5/stemflow/audio"
)

// Model is a fixed-window inference function. Forward receives one window
// shaped [channels][size] and returns one or more buffers of the same shape,
// one per output source. The window belongs to the model for the duration
// of the call.
type Model interface {
	Forward(window [][]float32) ([][][]float32, error)
}

// Options control how consecutive windows are blended.
type Options struct {
	// Overlap is the fraction of the window shared by consecutive windows,
	// in [0, 1).
	Overlap float64
	// TransitionPower shapes the blending envelope. Values above 1 make the
	// crossfade sharper.
	TransitionPower float64
}

// DefaultOptions returns an overlap of a quarter window and a linear
// crossfade.
func DefaultOptions() Options {
	return Options{Overlap: 0.25, TransitionPower: 1.0}
}

// Transformer adapts a fixed-window Model to a streaming audio.Transformer.
//
// Every Write consumes at most one hop of new frames, slides the window by a
// hop and runs the model on it. The weighted model output is accumulated, and
// the next Read emits the frames that are about to leave the window, which
// no later window can reach. Output therefore trails input by size-hop
// frames and has the same total length.
type Transformer struct {
	model  Model
	format audio.Format
	size   int
	hop    int

	envelope []float32

	// window holds the most recent size frames; next and scratch are
	// swapped in so a failing model leaves the state untouched.
	window  [][]float32
	next    [][]float32
	scratch [][]float32

	out    [][][]float32 // [source][channel][frame], not normalised
	weight []float32

	pending  int
	closed   bool
	released bool
}

// New creates a transformer whose hop follows opts.Overlap.
func New(m Model, format audio.Format, size int, opts Options) (*Transformer, error) {
	if opts.Overlap < 0 || opts.Overlap >= 1 {
		return nil, fmt.Errorf("%w: overlap %v outside [0, 1)", ErrInvalidWindow, opts.Overlap)
	}
	return NewWithHop(m, format, size, size-int(opts.Overlap*float64(size)), opts)
}

// NewWithHop creates a transformer with an explicit hop, 0 < hop <= size.
func NewWithHop(m Model, format audio.Format, size, hop int, opts Options) (*Transformer, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: no model", ErrInvalidWindow)
	}
	if size <= 0 || hop <= 0 || hop > size {
		return nil, fmt.Errorf("%w: size %d, hop %d", ErrInvalidWindow, size, hop)
	}
	if format.Channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidWindow, format.Channels)
	}
	if opts.TransitionPower <= 0 {
		return nil, fmt.Errorf("%w: transition power %v", ErrInvalidWindow, opts.TransitionPower)
	}

	t := &Transformer{
		model:    m,
		format:   format,
		size:     size,
		hop:      hop,
		envelope: Envelope(size, opts.TransitionPower),
		window:   planar(format.Channels, size),
		next:     planar(format.Channels, size),
		scratch:  planar(format.Channels, size),
		weight:   make([]float32, size),
	}

	log.Debug().
		Int("size", size).
		Int("hop", hop).
		Int("channels", format.Channels).
		Msg("overlap window ready")

	return t, nil
}

func planar(channels, frames int) [][]float32 {
	return audio.NewChunk(audio.Format{Channels: channels}, frames).Data
}

// Size returns the window length in frames.
func (t *Transformer) Size() int { return t.size }

// Hop returns the number of new frames each window consumes.
func (t *Transformer) Hop() int { return t.hop }

// FrameSize is the largest chunk Write accepts, which is one hop.
func (t *Transformer) FrameSize() int { return t.hop }

// Format returns the format of written chunks.
func (t *Transformer) Format() audio.Format { return t.format }

// Sources returns the number of model outputs, or 0 before the first window.
func (t *Transformer) Sources() int { return len(t.out) }

// Close releases the window buffers. Later reads report the end of stream.
func (t *Transformer) Close() error {
	t.released = true
	t.closed = true
	t.pending = 0
	t.window, t.next, t.scratch, t.out, t.weight = nil, nil, nil, nil, nil
	return nil
}

func (t *Transformer) Write(c *audio.Chunk, s audio.Signal) error {
	if c.Empty() {
		if s.Ended {
			t.closed = true
		}
		return nil
	}

	if t.released || t.closed {
		return audio.ErrSinkClosed
	}

	n := c.Frames()
	if n > t.hop {
		return fmt.Errorf("%w: %d frames, hop is %d", ErrChunkTooLarge, n, t.hop)
	}
	if len(c.Data) != t.format.Channels {
		return fmt.Errorf("%w: window expects %d channels, got %d",
			audio.ErrChannelMismatch, t.format.Channels, len(c.Data))
	}

	keep := t.size - t.hop
	for ch, next := range t.next {
		copy(next, t.window[ch][t.hop:])
		copy(next[keep:], c.Data[ch])
		clear(next[keep+n:])
		copy(t.scratch[ch], next)
	}

	outs, err := t.model.Forward(t.scratch)
	if err != nil {
		return fmt.Errorf("overlap: forward: %w", err)
	}
	if err := t.checkShape(outs); err != nil {
		return err
	}

	t.window, t.next = t.next, t.window
	if t.out == nil {
		t.out = make([][][]float32, len(outs))
		for i := range t.out {
			t.out[i] = planar(t.format.Channels, t.size)
		}
		log.Debug().Int("sources", len(outs)).Msg("overlap model output shape fixed")
	}

	shift(t.weight, t.hop)
	for i, env := range t.envelope {
		t.weight[i] += env
	}

	for src, buf := range outs {
		for ch, acc := range t.out[src] {
			shift(acc, t.hop)
			for i, v := range buf[ch] {
				acc[i] += t.envelope[i] * v
			}
		}
	}

	t.pending = n
	t.closed = s.Ended

	log.Trace().Int("frames", n).Bool("ended", s.Ended).Msg("overlap window forwarded")

	return nil
}

// checkShape validates model output before any state changes.
func (t *Transformer) checkShape(outs [][][]float32) error {
	if len(outs) == 0 {
		return fmt.Errorf("%w: model returned no sources", ErrShapeMismatch)
	}
	if t.out != nil && len(outs) != len(t.out) {
		return fmt.Errorf("%w: %d sources, previously %d", ErrShapeMismatch, len(outs), len(t.out))
	}
	for src, buf := range outs {
		if len(buf) != t.format.Channels {
			return fmt.Errorf("%w: source %d has %d channels, want %d",
				ErrShapeMismatch, src, len(buf), t.format.Channels)
		}
		for ch, samples := range buf {
			if len(samples) != t.size {
				return fmt.Errorf("%w: source %d channel %d has %d frames, want %d",
					ErrShapeMismatch, src, ch, len(samples), t.size)
			}
		}
	}
	return nil
}

// shift moves buf left by hop and zeroes the freed tail.
func shift(buf []float32, hop int) {
	copy(buf, buf[hop:])
	clear(buf[len(buf)-hop:])
}

func (t *Transformer) Read() (*audio.Chunk, audio.Signal, error) {
	if t.pending == 0 {
		return nil, audio.Signal{Ended: t.closed}, nil
	}

	n := t.pending
	t.pending = 0

	channels := t.format.Channels
	format := t.format
	format.Channels = len(t.out) * channels
	chunk := audio.NewChunk(format, n)

	for src, acc := range t.out {
		for ch, samples := range acc {
			dst := chunk.Data[src*channels+ch]
			for i := range n {
				if w := t.weight[i]; w > 0 {
					dst[i] = samples[i] / w
				}
			}
		}
	}

	return chunk, audio.Signal{Produced: true, Ended: t.closed}, nil
}
