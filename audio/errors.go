// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrIOFailure marks open, read or write failures of a collaborator.
	ErrIOFailure = errors.New("audio i/o failure")

	// ErrUnsupportedFormat marks codecs, layouts or devices a collaborator
	// cannot handle. It is reported before the pipeline runs.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	ErrChannelMismatch  = errors.New("chunk channel count does not match stage")
	ErrFormatMismatch   = errors.New("chunk format does not match stage")
	ErrInvalidFrameSize = errors.New("frame size must be positive")
	ErrSinkClosed       = errors.New("sink is closed")
)
