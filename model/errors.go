// SPDX-License-Identifier: EPL-2.0

package model

import (
	"fmt"

	"github.com/ik5/stemflow/audio"
)

// All model errors are reported before the pipeline runs and match
// audio.ErrUnsupportedFormat.
var (
	ErrUnknownModel       = fmt.Errorf("%w: unknown model", audio.ErrUnsupportedFormat)
	ErrBackendUnavailable = fmt.Errorf("%w: inference backend not available", audio.ErrUnsupportedFormat)
	ErrUnsupportedDevice  = fmt.Errorf("%w: device not supported", audio.ErrUnsupportedFormat)
	ErrInvalidParams      = fmt.Errorf("%w: invalid model parameters", audio.ErrUnsupportedFormat)
)
