// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/rs/zerolog/log"

	"github.com/ik5/stemflow/audio"
	"github.com/ik5/stemflow/internal/pcm"
)

// Decoder reads AIFF files. FrameSize is the number of frames per chunk,
// audio.DefaultFrameSize when zero.
type Decoder struct {
	FrameSize int
}

// Decode parses the COMM chunk of r. A reader that cannot seek is read into
// memory first. If r is an io.Closer, closing the Input closes it.
func (d Decoder) Decode(r io.Reader) (audio.Input, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", audio.ErrIOFailure, err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	// AIFF samples are signed at every depth
	bitDepth := int(dec.BitDepth)
	sampleFormat, err := audio.SampleFormatForDepth(bitDepth)
	if err != nil {
		return nil, err
	}

	f := dec.Format()
	if f == nil || f.SampleRate <= 0 || f.NumChannels <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	format := audio.Format{
		SampleRate:   f.SampleRate,
		Channels:     f.NumChannels,
		SampleFormat: sampleFormat,
	}

	log.Debug().Stringer("format", format).Msg("aiff stream opened")

	closer, _ := r.(io.Closer)
	samples := pcm.NewSamples(dec, f, bitDepth, 0)
	return audio.NewReaderSource(samples, format, d.FrameSize, closer), nil
}
