// SPDX-License-Identifier: EPL-2.0

// Package overlap drives a fixed-window inference function from a stream of
// variable-size chunks.
//
// A Transformer keeps the most recent Size() frames in a window. Each write
// of up to Hop() new frames slides the window, runs the Model on a copy of
// it and accumulates the output weighted by a triangular Envelope. The next
// read normalises the frames about to leave the window by the summed
// weights and emits them:
//
//	t, err := overlap.New(m, format, 4096, overlap.DefaultOptions())
//	src := audio.Chain(input, t)
//
// Output trails input by Size()-Hop() frames and has exactly the same
// length. A final chunk shorter than a hop is zero-padded inside the
// window and emits only its own frames.
//
// A model returning several sources yields chunks with one channel group per
// source, laid out source by source. audio.SplitSink fans them out again.
package overlap
