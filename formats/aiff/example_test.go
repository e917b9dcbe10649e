// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ik5/stemflow/audio"
	"github.com/ik5/stemflow/formats/aiff"
)

// ExampleDecoder_Decode_errorHandling shows how a non-AIFF stream is reported.
func ExampleDecoder_Decode_errorHandling() {
	_, err := aiff.Decoder{}.Decode(strings.NewReader("FORM but not AIFF"))

	fmt.Println("not aiff:", errors.Is(err, aiff.ErrNotAiffFile))
	fmt.Println("unsupported format:", errors.Is(err, audio.ErrUnsupportedFormat))
	// Output:
	// not aiff: true
	// unsupported format: true
}
