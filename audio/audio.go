// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"strings"
	"sync"
)

// Signal reports the outcome of a single pull.
type Signal struct {
	// Produced is true when the pull yielded usable data.
	Produced bool
	// Ended is true when no further data will ever be produced.
	// Data returned together with Ended is valid and final.
	Ended bool
}

// Terminal reports whether s is the final, data-less end of a stream.
// A Source that returned a terminal signal keeps returning it.
func (s Signal) Terminal() bool { return s.Ended && !s.Produced }

// Pending reports whether s means "nothing yet, try again".
func (s Signal) Pending() bool { return !s.Ended && !s.Produced }

// Source produces chunks on demand.
type Source interface {
	// Read pulls the next chunk. The chunk is nil whenever the signal
	// reports that nothing was produced.
	Read() (*Chunk, Signal, error)
}

// Sink consumes chunks. A write carrying Ended is the last chance for the
// sink to flush what it owns.
type Sink interface {
	Write(c *Chunk, s Signal) error
}

// Transformer consumes upstream chunks and produces downstream chunks.
// Buffering inside a transformer may desynchronize input and output cadence.
type Transformer interface {
	Sink
	Source
}

// Input is a Source that owns resources, usually a decoded file.
type Input interface {
	Source
	// Format describes the chunks produced by Read.
	Format() Format
	// Close releases any resources. It may be called at any point.
	Close() error
}

// Output is a Sink that owns resources, usually an encoded file.
type Output interface {
	Sink
	// Close finalizes and releases the output. It is safe to call after
	// the sink was already finalized by an Ended write.
	Close() error
}

// SinkOptions describe the stream an encoder should produce.
type SinkOptions struct {
	SampleRate   int
	Channels     int
	SampleFormat SampleFormat
	// BitRate is advisory. PCM encoders derive it from rate and depth.
	BitRate int64
}

// Decoder constructs an Input from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Input, error)
}

// Encoder constructs an Output that writes into w.
type Encoder interface {
	Encode(w io.WriteSeeker, opts SinkOptions) (Output, error)
}

// Registry for decoders and encoders by format key (e.g., "wav", "mp3", "ogg").
// Keys are case-insensitive and may carry a leading dot.
type Registry struct {
	decoders map[string]Decoder
	encoders map[string]Encoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		decoders: make(map[string]Decoder),
		encoders: make(map[string]Encoder),
		mtx:      &sync.Mutex{},
	}
}

func formatKey(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.decoders[formatKey(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.decoders[formatKey(format)]
	return d, ok
}

func (r *Registry) RegisterEncoder(format string, e Encoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.encoders[formatKey(format)] = e
}

func (r *Registry) Encoder(format string) (Encoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	e, ok := r.encoders[formatKey(format)]
	return e, ok
}
