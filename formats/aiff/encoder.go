// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/rs/zerolog/log"

	"github.com/ik5/stemflow/audio"
	"github.com/ik5/stemflow/internal/pcm"
)

// Encoder writes signed PCM AIFF files.
type Encoder struct{}

// Encode returns an Output writing an AIFF container into w. 8-bit output is
// signed. If w is an io.Closer, it is closed once the header is final.
func (Encoder) Encode(w io.WriteSeeker, opts audio.SinkOptions) (audio.Output, error) {
	if opts.SampleRate <= 0 || opts.Channels <= 0 {
		return nil, fmt.Errorf("%w: aiff %dHz %d channels", audio.ErrUnsupportedFormat, opts.SampleRate, opts.Channels)
	}
	if opts.SampleFormat == audio.SampleFormatF32 {
		return nil, fmt.Errorf("%w: float aiff", audio.ErrUnsupportedFormat)
	}

	format := audio.Format{SampleRate: opts.SampleRate, Channels: opts.Channels, SampleFormat: opts.SampleFormat}
	log.Debug().Stringer("format", format).Msg("aiff sink opened")

	enc := aiff.NewEncoder(w, opts.SampleRate, opts.SampleFormat.BitDepth(), opts.Channels)
	closer, _ := w.(io.Closer)

	return pcm.NewSink("aiff", enc, closer, format, 0), nil
}
