// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"

	"github.com/ik5/stemflow/audio"
)

var (
	// ErrNotAiffFile indicates the file is not a valid AIFF file
	ErrNotAiffFile = fmt.Errorf("%w: not an AIFF file", audio.ErrUnsupportedFormat)

	// ErrUnsupportedAiffLayout indicates a header this decoder cannot map to
	// a stream format
	ErrUnsupportedAiffLayout = fmt.Errorf("%w: unsupported AIFF layout", audio.ErrUnsupportedFormat)
)
