// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
	"github.com/rs/zerolog/log"

	"github.com/ik5/stemflow/audio"
)

// ErrNotVorbisFile is returned when r does not start with Vorbis headers.
var ErrNotVorbisFile = fmt.Errorf("%w: not an Ogg Vorbis stream", audio.ErrUnsupportedFormat)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec oggReader
}

// ReadSamples fills dst across packet boundaries. The decoder returns at
// most one packet per call.
func (s *source) ReadSamples(dst []float32) (int, error) {
	var n int
	for n < len(dst) {
		m, err := s.dec.Read(dst[n:])
		n += m
		if errors.Is(err, io.EOF) {
			return n, io.EOF
		}
		if err != nil {
			return n, err
		}
		if m == 0 {
			break
		}
	}
	return n, nil
}

// Decoder reads Ogg Vorbis streams. FrameSize is the number of frames per
// chunk, audio.DefaultFrameSize when zero.
type Decoder struct {
	FrameSize int
}

// Decode reads the Vorbis headers from r. If r is an io.Closer, closing the
// Input closes it.
func (d Decoder) Decode(r io.Reader) (audio.Input, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}

	format := audio.Format{
		SampleRate:   dec.SampleRate(),
		Channels:     dec.Channels(),
		SampleFormat: audio.SampleFormatF32,
	}
	if format.SampleRate <= 0 || format.Channels <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotVorbisFile, format)
	}

	log.Debug().Stringer("format", format).Msg("vorbis stream opened")

	closer, _ := r.(io.Closer)
	return audio.NewReaderSource(&source{dec: dec}, format, d.FrameSize, closer), nil
}
