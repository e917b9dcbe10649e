// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/rs/zerolog/log"

	"github.com/ik5/stemflow/audio"
	"github.com/ik5/stemflow/internal/pcm"
)

// WAVE_FORMAT_PCM
const formatPCM = 1

// 8-bit WAV is unsigned, every other depth is signed
func unsignedOffset(bitDepth int) int {
	if bitDepth == 8 {
		return 128
	}
	return 0
}

// Decoder reads integer PCM WAV files. FrameSize is the number of frames per
// chunk, audio.DefaultFrameSize when zero.
type Decoder struct {
	FrameSize int
}

// Decode parses the WAV header from r. A reader that cannot seek is read
// into memory first. If r is an io.Closer, closing the Input closes it.
func (d Decoder) Decode(r io.Reader) (audio.Input, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", audio.ErrIOFailure, err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
	}

	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrOnlyPCMSupported, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	sampleFormat, err := audio.SampleFormatForDepth(bitDepth)
	if err != nil {
		return nil, err
	}

	format := audio.Format{
		SampleRate:   int(dec.SampleRate),
		Channels:     int(dec.NumChans),
		SampleFormat: sampleFormat,
	}
	if format.SampleRate <= 0 || format.Channels <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedWavChunks, format)
	}

	log.Debug().Stringer("format", format).Msg("wav stream opened")

	closer, _ := r.(io.Closer)
	samples := pcm.NewSamples(dec, dec.Format(), bitDepth, unsignedOffset(bitDepth))
	return audio.NewReaderSource(samples, format, d.FrameSize, closer), nil
}
