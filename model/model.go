// SPDX-License-Identifier: EPL-2.0

package model

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ik5/stemflow/audio"
)

// Params describe the stream a model expects and produces.
type Params struct {
	SampleRate int
	Channels   int
	// Segment is the window length in frames.
	Segment int
	// Sources names the outputs of Forward, in order.
	Sources []string
}

// Format returns the stream format the model consumes.
func (p Params) Format() audio.Format {
	return audio.Format{SampleRate: p.SampleRate, Channels: p.Channels, SampleFormat: audio.SampleFormatF32}
}

// Model is a fixed-window inference function with the parameters it needs.
type Model interface {
	// Forward takes a window shaped [Channels][Segment] and returns one
	// buffer of the same shape per source.
	Forward(window [][]float32) ([][][]float32, error)
	Params() Params
	Close() error
}

// Built-in model names.
const (
	Identity  = "identity"
	BandSplit = "bandsplit"
)

// Names lists the built-in models.
func Names() []string {
	return []string{Identity, BandSplit}
}

// Open loads the model named by name on device.
//
// Paths ending in .pt or .onnx select an external inference backend, which
// this build does not include. Otherwise name must be a built-in model,
// and built-in models run on the CPU only.
func Open(name string, device Device, opts ...Option) (Model, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pt":
		return nil, fmt.Errorf("%w: torch model %s", ErrBackendUnavailable, name)
	case ".onnx":
		return nil, fmt.Errorf("%w: onnx model %s", ErrBackendUnavailable, name)
	}

	var open func(Config) (Model, error)
	switch strings.ToLower(name) {
	case Identity:
		open = newIdentity
	case BandSplit:
		open = newBandSplit
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}

	if device != DeviceCPU {
		return nil, fmt.Errorf("%w: %s runs on cpu only, got %s", ErrUnsupportedDevice, name, device)
	}

	cfg := ApplyOptions(opts...)
	m, err := open(cfg)
	if err != nil {
		return nil, err
	}

	p := m.Params()
	log.Debug().
		Str("model", name).
		Stringer("device", device).
		Int("sample_rate", p.SampleRate).
		Int("channels", p.Channels).
		Int("segment", p.Segment).
		Strs("sources", p.Sources).
		Msg("model opened")

	return m, nil
}
