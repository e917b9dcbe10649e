// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/rs/zerolog/log"

	"github.com/ik5/stemflow/audio"
	"github.com/ik5/stemflow/internal/pcm"
)

// Encoder writes integer PCM WAV files.
type Encoder struct{}

// Encode returns an Output writing a WAV container into w. The header is
// finalised on the write carrying Ended or on Close, whichever comes first.
// If w is an io.Closer, it is closed after the header.
func (Encoder) Encode(w io.WriteSeeker, opts audio.SinkOptions) (audio.Output, error) {
	if opts.SampleRate <= 0 || opts.Channels <= 0 {
		return nil, fmt.Errorf("%w: wav %dHz %d channels", audio.ErrUnsupportedFormat, opts.SampleRate, opts.Channels)
	}
	if opts.SampleFormat == audio.SampleFormatF32 {
		return nil, fmt.Errorf("%w: float wav", ErrOnlyPCMSupported)
	}

	bitDepth := opts.SampleFormat.BitDepth()
	format := audio.Format{SampleRate: opts.SampleRate, Channels: opts.Channels, SampleFormat: opts.SampleFormat}

	// BitRate is implied by rate, depth and channels for PCM
	log.Debug().
		Stringer("format", format).
		Int64("requested_bit_rate", opts.BitRate).
		Int("bit_rate", opts.SampleRate*bitDepth*opts.Channels).
		Msg("wav sink opened")

	enc := wav.NewEncoder(w, opts.SampleRate, bitDepth, opts.Channels, formatPCM)
	closer, _ := w.(io.Closer)

	return pcm.NewSink("wav", enc, closer, format, unsignedOffset(bitDepth)), nil
}
