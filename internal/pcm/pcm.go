// SPDX-License-Identifier: EPL-2.0

// Package pcm bridges go-audio integer buffers and float32 pipeline chunks.
// It backs the WAV and AIFF codecs, which share the go-audio buffer API.
package pcm

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/rs/zerolog/log"

	"github.com/ik5/stemflow/audio"
	"github.com/ik5/stemflow/utils"
)

// Reader is the read side of a go-audio decoder.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Writer is the write side of a go-audio encoder.
type Writer interface {
	Write(buf *goaudio.IntBuffer) error
	Close() error
}

// Samples adapts a Reader to audio.SampleReader.
type Samples struct {
	dec      Reader
	bitDepth int
	offset   int
	buf      *goaudio.IntBuffer
}

// NewSamples reads bitDepth-bit integers from dec. offset is subtracted from
// every value before scaling, 128 for unsigned 8-bit data and 0 otherwise.
func NewSamples(dec Reader, format *goaudio.Format, bitDepth, offset int) *Samples {
	return &Samples{
		dec:      dec,
		bitDepth: bitDepth,
		offset:   offset,
		buf:      &goaudio.IntBuffer{Format: format, SourceBitDepth: bitDepth},
	}
}

func (s *Samples) ReadSamples(dst []float32) (int, error) {
	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = utils.PCMToFloat(v-s.offset, s.bitDepth)
	}

	return n, nil
}

// Sink is an audio.Output writing integer PCM through a Writer.
type Sink struct {
	name     string
	enc      Writer
	closer   io.Closer
	format   audio.Format
	bitDepth int
	offset   int

	buf         *goaudio.IntBuffer
	interleaved []float32
	frames      int
	closed      bool
}

// NewSink writes chunks of the given format to enc. offset is added to every
// scaled value. closer may be nil; when set it is closed after enc. name
// only labels log lines.
func NewSink(name string, enc Writer, closer io.Closer, format audio.Format, offset int) *Sink {
	bitDepth := format.SampleFormat.BitDepth()
	return &Sink{
		name:     name,
		enc:      enc,
		closer:   closer,
		format:   format,
		bitDepth: bitDepth,
		offset:   offset,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: format.Channels, SampleRate: format.SampleRate},
			SourceBitDepth: bitDepth,
		},
	}
}

// Format returns the stream format the sink accepts.
func (s *Sink) Format() audio.Format { return s.format }

// Frames returns the number of frames written so far.
func (s *Sink) Frames() int { return s.frames }

func (s *Sink) Write(c *audio.Chunk, sig audio.Signal) error {
	if s.closed {
		if c.Empty() {
			return nil
		}
		return audio.ErrSinkClosed
	}

	if !c.Empty() {
		if err := s.encode(c); err != nil {
			return err
		}
	}

	if sig.Ended {
		return s.Close()
	}

	return nil
}

func (s *Sink) encode(c *audio.Chunk) error {
	if len(c.Data) != s.format.Channels {
		return fmt.Errorf("%w: %s sink expects %d channels, got %d",
			audio.ErrChannelMismatch, s.name, s.format.Channels, len(c.Data))
	}
	if c.Format.SampleRate != 0 && c.Format.SampleRate != s.format.SampleRate {
		return fmt.Errorf("%w: %s sink expects %d Hz, got %d Hz",
			audio.ErrFormatMismatch, s.name, s.format.SampleRate, c.Format.SampleRate)
	}

	s.interleaved = c.Interleave(s.interleaved)
	if cap(s.buf.Data) < len(s.interleaved) {
		s.buf.Data = make([]int, len(s.interleaved))
	}
	s.buf.Data = s.buf.Data[:len(s.interleaved)]

	for i, v := range s.interleaved {
		s.buf.Data[i] = utils.FloatToPCM(v, s.bitDepth) + s.offset
	}

	if err := s.enc.Write(s.buf); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrIOFailure, err)
	}
	s.frames += c.Frames()

	return nil
}

// Close finalises the container header. It is safe to call more than once.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	// go-audio encoders write the header with the first buffer
	if s.frames == 0 {
		s.buf.Data = s.buf.Data[:0]
		if err := s.enc.Write(s.buf); err != nil {
			return fmt.Errorf("%w: %w", audio.ErrIOFailure, err)
		}
	}

	if err := s.enc.Close(); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrIOFailure, err)
	}

	log.Debug().Str("container", s.name).Int("frames", s.frames).Stringer("format", s.format).Msg("sink finalised")

	if s.closer != nil {
		if err := s.closer.Close(); err != nil {
			return fmt.Errorf("%w: %w", audio.ErrIOFailure, err)
		}
	}

	return nil
}
