// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// DefaultFrameSize is the number of frames a decoder produces per Read when
// its caller did not ask for a specific size.
const DefaultFrameSize = 4096

// SampleReader is the decoder-facing side of an Input.
type SampleReader interface {
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with
	// err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)
}

// ReaderSource turns a SampleReader into an Input that yields chunks of at
// most frameSize frames.
type ReaderSource struct {
	r         SampleReader
	closer    io.Closer
	format    Format
	frameSize int
	buf       []float32
	ended     bool
}

// NewReaderSource wraps r. closer may be nil; when set it is closed once by
// Close.
func NewReaderSource(r SampleReader, format Format, frameSize int, closer io.Closer) *ReaderSource {
	if frameSize <= 0 {
		frameSize = DefaultFrameSize
	}
	return &ReaderSource{
		r:         r,
		closer:    closer,
		format:    format,
		frameSize: frameSize,
		buf:       make([]float32, frameSize*max(format.Channels, 1)),
	}
}

func (s *ReaderSource) Format() Format { return s.format }
func (s *ReaderSource) FrameSize() int { return s.frameSize }

// SetFrameSize changes the chunk size of later reads, DefaultFrameSize when
// n <= 0.
func (s *ReaderSource) SetFrameSize(n int) {
	if n <= 0 {
		n = DefaultFrameSize
	}
	s.frameSize = n
	if need := n * max(s.format.Channels, 1); cap(s.buf) < need {
		s.buf = make([]float32, need)
	} else {
		s.buf = s.buf[:need]
	}
}

func (s *ReaderSource) Close() error {
	s.ended = true
	if s.closer == nil {
		return nil
	}
	closer := s.closer
	s.closer = nil
	if err := closer.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

func (s *ReaderSource) Read() (*Chunk, Signal, error) {
	if s.ended {
		return nil, Signal{Ended: true}, nil
	}

	n, err := s.r.ReadSamples(s.buf)
	eof := errors.Is(err, io.EOF)
	if err != nil && !eof {
		return nil, Signal{}, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if eof {
		s.ended = true
	}

	frames := n / max(s.format.Channels, 1)
	if frames == 0 {
		return nil, Signal{Ended: s.ended}, nil
	}

	return Deinterleave(s.format, s.buf[:frames*s.format.Channels]), Signal{Produced: true, Ended: s.ended}, nil
}
