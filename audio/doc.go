// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives stemflow pipelines are
// built from.
//
// # Pull Model
//
// A pipeline is a Source pulled by Run and pushed into a Sink:
//
//	type Source interface {
//	    Read() (*Chunk, Signal, error)
//	}
//
//	type Sink interface {
//	    Write(c *Chunk, s Signal) error
//	}
//
// Every pull reports a Signal. Produced tells whether the chunk carries
// data, Ended tells whether the stream is over. The four combinations mean:
//   - {false, false}: nothing yet, pull again
//   - {true, false}: data, more to come
//   - {true, true}: final data
//   - {false, true}: over, nothing more will ever come
//
// A Transformer is both a Sink and a Source. Chain feeds a Source into a
// Transformer and exposes the result as a new Source:
//
//	src := audio.Pipe(input, resampler, separator)
//	err := audio.Run(src, sink)
//
// Chain(Chain(s, a), b) and Chain(s, Join(a, b)) make the same calls in the
// same order, so stages can be grouped freely.
//
// # Chunks
//
// A Chunk holds planar float32 samples in [-1.0, 1.0], one slice per
// channel, tagged with its Format. Chunks are owned by the caller once
// returned from Read, and a Sink must copy what it keeps past Write.
//
// # Resampling
//
// The Resampler changes the sample rate and channel layout using cubic
// interpolation and emits fixed-size chunks, so that it can feed a stage
// with a strict frame size:
//
//	r, err := audio.NewResampler(in.Format(), audio.Format{SampleRate: 44100, Channels: 2}, 1024)
//
// # Format Registry
//
// The registry maps file extensions to decoders and encoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	registry.RegisterEncoder("wav", wav.Encoder{})
//	decoder, _ := registry.Get("wav")
//
// # Error Handling
//
// Errors travel up through Read and Write unchanged and stop Run on the
// first one. Collaborator failures wrap ErrIOFailure, unsupported layouts
// and codecs wrap ErrUnsupportedFormat:
//
//	if errors.Is(err, audio.ErrUnsupportedFormat) {
//	    // reject the input before running
//	}
package audio
