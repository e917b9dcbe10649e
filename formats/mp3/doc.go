// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams with github.com/hajimehoshi/go-mp3.
//
// The decoder always produces stereo 16-bit audio, mono files included.
// Chunks carry planar float32 samples in [-1, 1].
//
//	f, _ := os.Open("song.mp3")
//	in, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    // errors.Is(err, audio.ErrUnsupportedFormat)
//	}
//	defer in.Close()
//
// Encoding is not supported.
package mp3
