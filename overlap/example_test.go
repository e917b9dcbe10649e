// SPDX-License-Identifier: EPL-2.0

package overlap_test

import (
	"fmt"

	"github.com/ik5/stemflow/audio"
	"github.com/ik5/stemflow/internal/audiotest"
	"github.com/ik5/stemflow/overlap"
)

type passthrough struct{}

func (passthrough) Forward(window [][]float32) ([][][]float32, error) {
	return [][][]float32{window}, nil
}

// Example demonstrates driving a window of 4 frames with a hop of 2 from a
// constant source.
func Example() {
	source := audiotest.NewConstantSource(44100, 1, 10, 1.0)

	t, err := overlap.NewWithHop(passthrough{}, source.Format(), 4, 2, overlap.DefaultOptions())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	sink := &audiotest.RecordingSink{}
	if err := audio.Run(audio.Chain(source.Input(t.Hop()), t), sink); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(sink.Channel(0))
	// Output:
	// [0 0 1 1 1 1 1 1 1 1]
}

// ExampleEnvelope shows the blending weights of a small window.
func ExampleEnvelope() {
	fmt.Println(overlap.Envelope(4, 1))
	fmt.Println(overlap.Envelope(6, 1))
	// Output:
	// [0.5 1 1 0.5]
	// [0.33333334 0.6666667 1 1 0.6666667 0.33333334]
}
