// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes straight to float, so chunks report audio.SampleFormatF32.
//
//	f, _ := os.Open("take.ogg")
//	in, err := vorbis.Decoder{FrameSize: 2048}.Decode(f)
//	if err != nil {
//	    // errors.Is(err, audio.ErrUnsupportedFormat)
//	}
//	defer in.Close()
package vorbis
