// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ik5/stemflow/audio"
	"github.com/ik5/stemflow/formats/mp3"
)

// ExampleDecoder_Decode_errorHandling shows how a non-MP3 stream is reported.
func ExampleDecoder_Decode_errorHandling() {
	_, err := mp3.Decoder{}.Decode(bytes.NewReader([]byte("not an mp3 file")))

	fmt.Println("not mp3:", errors.Is(err, mp3.ErrNotMP3File))
	fmt.Println("unsupported format:", errors.Is(err, audio.ErrUnsupportedFormat))
	// Output:
	// not mp3: true
	// unsupported format: true
}
