// SPDX-License-Identifier: EPL-2.0

package overlap

import "errors"

var (
	// ErrChunkTooLarge is returned when a written chunk holds more frames than
	// one hop. Upstream stages must chunk to at most Hop() frames.
	ErrChunkTooLarge = errors.New("chunk exceeds hop size")

	// ErrShapeMismatch is returned when the model output does not match the
	// window shape, or the number of sources changes between calls.
	ErrShapeMismatch = errors.New("model output shape mismatch")

	// ErrInvalidWindow is returned by New and NewWithHop for an unusable
	// size, hop, channel count or transition power.
	ErrInvalidWindow = errors.New("invalid window geometry")
)
