// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/ik5/stemflow/audio"
)

var (
	ErrNotWavFile           = fmt.Errorf("%w: not a WAV file", audio.ErrUnsupportedFormat)
	ErrOnlyPCMSupported     = fmt.Errorf("%w: only integer PCM WAV supported", audio.ErrUnsupportedFormat)
	ErrUnsupportedWavChunks = fmt.Errorf("%w: unsupported WAV chunks", audio.ErrUnsupportedFormat)
)
