// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/rs/zerolog/log"

	"github.com/ik5/stemflow/audio"
)

// ErrNotFlacFile is returned when r does not start with a FLAC signature and
// STREAMINFO block.
var ErrNotFlacFile = fmt.Errorf("%w: not a FLAC stream", audio.ErrUnsupportedFormat)

// frameParser is an interface for flac.Stream to allow testing
type frameParser interface {
	ParseNext() (*frame.Frame, error)
}

// source drains FLAC frames into interleaved float32 samples. A frame
// usually holds more samples than one read asks for; the rest is kept.
type source struct {
	stream   frameParser
	channels int
	scale    float32

	buf     []float32
	pending []float32
	eof     bool
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	var n int
	for n < len(dst) {
		if len(s.pending) == 0 {
			if s.eof {
				break
			}
			if err := s.next(); err != nil {
				return n, err
			}
			continue
		}

		m := copy(dst[n:], s.pending)
		s.pending = s.pending[m:]
		n += m
	}

	if s.eof && len(s.pending) == 0 {
		return n, io.EOF
	}
	return n, nil
}

func (s *source) next() error {
	f, err := s.stream.ParseNext()
	if errors.Is(err, io.EOF) {
		s.eof = true
		return nil
	}
	if err != nil {
		return err
	}

	if len(f.Subframes) != s.channels {
		return fmt.Errorf("%w: frame has %d channels, stream has %d",
			audio.ErrChannelMismatch, len(f.Subframes), s.channels)
	}

	frames := len(f.Subframes[0].Samples)
	if cap(s.buf) < frames*s.channels {
		s.buf = make([]float32, frames*s.channels)
	}
	s.buf = s.buf[:frames*s.channels]

	for ch, sub := range f.Subframes {
		if len(sub.Samples) != frames {
			return fmt.Errorf("%w: subframe %d has %d samples, want %d",
				audio.ErrFormatMismatch, ch, len(sub.Samples), frames)
		}
		for i, v := range sub.Samples {
			s.buf[i*s.channels+ch] = float32(v) * s.scale
		}
	}
	s.pending = s.buf

	return nil
}

// sampleFormat picks the narrowest integer format holding bits, since FLAC
// allows any depth from 4 to 32.
func sampleFormat(bits int) audio.SampleFormat {
	switch {
	case bits <= 16:
		return audio.SampleFormatS16
	case bits <= 24:
		return audio.SampleFormatS24
	default:
		return audio.SampleFormatS32
	}
}

// Decoder reads native FLAC streams. FrameSize is the number of frames per
// chunk, audio.DefaultFrameSize when zero.
type Decoder struct {
	FrameSize int
}

// Decode reads the FLAC metadata of r. Closing the Input closes r if it is
// an io.Closer.
func (d Decoder) Decode(r io.Reader) (audio.Input, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	info := stream.Info
	bits := int(info.BitsPerSample)
	format := audio.Format{
		SampleRate:   int(info.SampleRate),
		Channels:     int(info.NChannels),
		SampleFormat: sampleFormat(bits),
	}
	if format.SampleRate <= 0 || format.Channels <= 0 || bits < 4 || bits > 32 {
		return nil, fmt.Errorf("%w: %s at %d bits", ErrNotFlacFile, format, bits)
	}

	log.Debug().
		Stringer("format", format).
		Int("bits", bits).
		Uint64("frames", info.NSamples).
		Msg("flac stream opened")

	closer, _ := r.(io.Closer)
	src := &source{
		stream:   stream,
		channels: format.Channels,
		scale:    float32(1 / float64(int64(1)<<(bits-1)-1)),
	}
	return audio.NewReaderSource(src, format, d.FrameSize, closer), nil
}
