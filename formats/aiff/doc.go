// SPDX-License-Identifier: EPL-2.0

// Package aiff reads and writes AIFF files with github.com/go-audio/aiff.
//
// 8, 16, 24 and 32-bit signed PCM are supported in both directions. AIFF-C
// compressed payloads are not.
//
//	f, _ := os.Open("drums.aiff")
//	in, err := aiff.Decoder{}.Decode(f)
package aiff
