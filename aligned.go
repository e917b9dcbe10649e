// SPDX-License-Identifier: EPL-2.0

package stemflow

import (
	"fmt"

	"github.com/ik5/stemflow/audio"
	"github.com/ik5/stemflow/overlap"
)

// alignedWindow drives an overlap window with whole hops and removes its
// latency, so frame i of the output belongs to frame i of the input.
//
// Input is buffered until a full hop is available. When the input ends,
// size-hop frames of silence push the last real frames out of the window,
// and the first size-hop output frames are dropped. The output has exactly
// as many frames as the input.
type alignedWindow struct {
	w *overlap.Transformer

	in   [][]float32 // less than a hop between writes
	out  [][]float32 // aligned output waiting to be read
	skip int

	outFormat audio.Format
	closed    bool
}

func newAlignedWindow(w *overlap.Transformer) *alignedWindow {
	return &alignedWindow{
		w:    w,
		in:   make([][]float32, w.Format().Channels),
		skip: w.Size() - w.Hop(),
	}
}

// Close releases the buffered frames and the window.
func (a *alignedWindow) Close() error {
	a.closed = true
	a.in, a.out = nil, nil
	return a.w.Close()
}

func (a *alignedWindow) Write(c *audio.Chunk, s audio.Signal) error {
	if a.closed {
		if c.Empty() {
			return nil
		}
		return audio.ErrSinkClosed
	}

	if !c.Empty() {
		if len(c.Data) != len(a.in) {
			return fmt.Errorf("%w: window expects %d channels, got %d",
				audio.ErrChannelMismatch, len(a.in), len(c.Data))
		}
		for ch, samples := range c.Data {
			a.in[ch] = append(a.in[ch], samples...)
		}
	}

	if s.Ended {
		tail := make([]float32, a.w.Size()-a.w.Hop())
		for ch := range a.in {
			a.in[ch] = append(a.in[ch], tail...)
		}
	}

	hop := a.w.Hop()
	for len(a.in[0]) >= hop || (s.Ended && len(a.in[0]) > 0) {
		if err := a.forward(min(hop, len(a.in[0]))); err != nil {
			return err
		}
	}

	if s.Ended {
		a.closed = true
		return a.w.Write(nil, audio.Signal{Ended: true})
	}
	return nil
}

// forward writes the first n buffered frames to the window and queues what
// it emits.
func (a *alignedWindow) forward(n int) error {
	chunk := audio.NewChunk(a.w.Format(), n)
	for ch := range a.in {
		copy(chunk.Data[ch], a.in[ch][:n])
		a.in[ch] = append(a.in[ch][:0], a.in[ch][n:]...)
	}

	if err := a.w.Write(chunk, audio.Signal{Produced: true}); err != nil {
		return err
	}
	out, sig, err := a.w.Read()
	if err != nil || !sig.Produced {
		return err
	}

	if a.out == nil {
		a.out = make([][]float32, len(out.Data))
		a.outFormat = out.Format
	}

	drop := min(a.skip, out.Frames())
	a.skip -= drop
	for ch, samples := range out.Data {
		a.out[ch] = append(a.out[ch], samples[drop:]...)
	}
	return nil
}

// Read emits at most one hop of aligned output.
func (a *alignedWindow) Read() (*audio.Chunk, audio.Signal, error) {
	have := 0
	if len(a.out) > 0 {
		have = len(a.out[0])
	}
	if have == 0 {
		return nil, audio.Signal{Ended: a.closed}, nil
	}

	n := min(have, a.w.Hop())
	chunk := audio.NewChunk(a.outFormat, n)
	for ch := range a.out {
		copy(chunk.Data[ch], a.out[ch][:n])
		a.out[ch] = append(a.out[ch][:0], a.out[ch][n:]...)
	}

	return chunk, audio.Signal{Produced: true, Ended: a.closed && n == have}, nil
}
