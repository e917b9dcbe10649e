// SPDX-License-Identifier: EPL-2.0

package audio

import "github.com/rs/zerolog/log"

// Run drains src into dst until the stream ends.
//
// A pull that yields nothing and does not end the stream is retried right
// away: every stage is synchronous and either makes progress or terminates.
// Every other pull is handed to dst, so dst sees exactly one write carrying
// Ended, whether the final data arrives with the end signal or before it.
// The first error stops the run and is returned as is.
func Run(src Source, dst Sink) error {
	var chunks, frames int

	for {
		chunk, sig, err := src.Read()
		if err != nil {
			return err
		}

		if sig.Pending() {
			continue
		}

		if sig.Produced {
			chunks++
			frames += chunk.Frames()
		}

		if err := dst.Write(chunk, sig); err != nil {
			return err
		}

		if sig.Ended {
			log.Debug().Int("chunks", chunks).Int("frames", frames).Msg("pipeline drained")
			return nil
		}
	}
}
