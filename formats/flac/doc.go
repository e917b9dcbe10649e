// SPDX-License-Identifier: EPL-2.0

// Package flac decodes native FLAC streams with github.com/mewkiz/flac.
//
// Any bit depth from 4 to 32 is accepted. The reported sample format is the
// narrowest of s16, s24 or s32 that holds it, and samples are scaled by the
// stream's own depth.
package flac
