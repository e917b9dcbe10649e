// SPDX-License-Identifier: EPL-2.0

package stemflow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/ik5/stemflow/audio"
)

// OpenSource opens path and decodes it with the decoder registered for its
// extension. Closing the returned Input closes the file.
func OpenSource(path string) (audio.Input, error) {
	ext := filepath.Ext(path)
	dec, ok := defaultRegistry.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: no decoder for %q", audio.ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIOFailure, err)
	}

	in, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debug().Str("path", path).Stringer("format", in.Format()).Msg("source opened")

	return in, nil
}

// OpenSink creates path and encodes into it with the encoder registered for
// its extension. The file is removed again if the encoder rejects opts.
func OpenSink(path string, opts audio.SinkOptions) (audio.Output, error) {
	ext := filepath.Ext(path)
	enc, ok := defaultRegistry.Encoder(ext)
	if !ok {
		return nil, fmt.Errorf("%w: no encoder for %q", audio.ErrUnsupportedFormat, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIOFailure, err)
	}

	out, err := enc.Encode(f, opts)
	if err != nil {
		err = errors.Join(fmt.Errorf("%s: %w", path, err), f.Close(), os.Remove(path))
		return nil, err
	}

	log.Debug().Str("path", path).Int("sample_rate", opts.SampleRate).Msg("sink opened")

	return out, nil
}
