// SPDX-License-Identifier: EPL-2.0

package model

import (
	"fmt"
	"math/bits"

	"github.com/argusdusty/gofft"

	"github.com/ik5/stemflow/audio"
)

// bandSplit separates a window into the content below and above a
// crossover frequency. The high band is the input minus the low band, so
// the two sources always sum back to the input.
type bandSplit struct {
	params Params
	// FFT length, the segment rounded up to a power of two
	size int
	// Highest bin kept in the low band
	cut  int
	spec []complex128
}

func newBandSplit(cfg Config) (Model, error) {
	if cfg.Crossover >= float64(cfg.SampleRate)/2 {
		return nil, fmt.Errorf("%w: crossover %vHz at or above Nyquist for %dHz",
			ErrInvalidParams, cfg.Crossover, cfg.SampleRate)
	}

	size := nextPow2(cfg.Segment)
	if err := gofft.Prepare(size); err != nil {
		return nil, fmt.Errorf("%w: fft size %d: %w", ErrInvalidParams, size, err)
	}

	return &bandSplit{
		params: Params{
			SampleRate: cfg.SampleRate,
			Channels:   cfg.Channels,
			Segment:    cfg.Segment,
			Sources:    []string{"low", "high"},
		},
		size: size,
		cut:  int(cfg.Crossover * float64(size) / float64(cfg.SampleRate)),
		spec: make([]complex128, size),
	}, nil
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func (m *bandSplit) Params() Params { return m.params }

func (m *bandSplit) Close() error {
	m.spec = nil
	return nil
}

func (m *bandSplit) Forward(window [][]float32) ([][][]float32, error) {
	if err := checkWindow(m.params, window); err != nil {
		return nil, err
	}
	if m.spec == nil {
		return nil, fmt.Errorf("%w: model closed", audio.ErrIOFailure)
	}

	low := audio.NewChunk(m.params.Format(), m.params.Segment).Data
	high := audio.NewChunk(m.params.Format(), m.params.Segment).Data

	for ch, samples := range window {
		for i := range m.spec {
			if i < len(samples) {
				m.spec[i] = complex(float64(samples[i]), 0)
			} else {
				m.spec[i] = 0
			}
		}

		if err := gofft.FFT(m.spec); err != nil {
			return nil, fmt.Errorf("%w: %w", audio.ErrIOFailure, err)
		}

		// Keep the bins up to the crossover and their mirror images, and
		// conjugate them for the inverse transform.
		for k, v := range m.spec {
			if min(k, m.size-k) > m.cut {
				m.spec[k] = 0
				continue
			}
			m.spec[k] = complex(real(v), -imag(v))
		}

		if err := gofft.FFT(m.spec); err != nil {
			return nil, fmt.Errorf("%w: %w", audio.ErrIOFailure, err)
		}

		scale := 1 / float64(m.size)
		for i, x := range samples {
			l := float32(real(m.spec[i]) * scale)
			low[ch][i] = l
			high[ch][i] = x - l
		}
	}

	return [][][]float32{low, high}, nil
}

func checkWindow(p Params, window [][]float32) error {
	if len(window) != p.Channels {
		return fmt.Errorf("%w: model expects %d channels, got %d", audio.ErrChannelMismatch, p.Channels, len(window))
	}
	for _, samples := range window {
		if len(samples) != p.Segment {
			return fmt.Errorf("%w: model expects %d frames, got %d", audio.ErrFormatMismatch, p.Segment, len(samples))
		}
	}
	return nil
}
