// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/rs/zerolog/log"

	"github.com/ik5/stemflow/audio"
	"github.com/ik5/stemflow/utils"
)

// go-mp3 always produces 16-bit little-endian stereo
const (
	channels       = 2
	bytesPerSample = 2
)

// ErrNotMP3File is returned when no MPEG audio frame could be parsed.
var ErrNotMP3File = fmt.Errorf("%w: not an MP3 stream", audio.ErrUnsupportedFormat)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec mp3Reader
	buf []byte
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	bytesNeeded := len(dst) * bytesPerSample
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	// The decoder hands out partial frames, fill the whole buffer so every
	// chunk except the last one is complete
	n, err := io.ReadFull(s.dec, s.buf)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}

	samples := n / bytesPerSample
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))
		dst[i] = utils.PCMToFloat(int(v), 16)
	}

	return samples, err
}

// Decoder reads MPEG-1/2 Layer III streams. FrameSize is the number of
// frames per chunk, audio.DefaultFrameSize when zero.
type Decoder struct {
	FrameSize int
}

// Decode parses the first MPEG frame of r. Output is always stereo. If r is
// an io.Closer, closing the Input closes it.
func (d Decoder) Decode(r io.Reader) (audio.Input, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	format := audio.Format{
		SampleRate:   dec.SampleRate(),
		Channels:     channels,
		SampleFormat: audio.SampleFormatS16,
	}

	// Length is only known for seekable input
	log.Debug().
		Stringer("format", format).
		Int64("bytes", dec.Length()).
		Msg("mp3 stream opened")

	closer, _ := r.(io.Closer)
	return audio.NewReaderSource(&source{dec: dec}, format, d.FrameSize, closer), nil
}
