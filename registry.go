// SPDX-License-Identifier: EPL-2.0

package stemflow

import (
	"github.com/ik5/stemflow/audio"
	"github.com/ik5/stemflow/formats/aiff"
	"github.com/ik5/stemflow/formats/flac"
	"github.com/ik5/stemflow/formats/mp3"
	"github.com/ik5/stemflow/formats/vorbis"
	"github.com/ik5/stemflow/formats/wav"
)

var defaultRegistry = NewRegistry()

// NewRegistry returns a registry with every bundled codec: wav, mp3, ogg,
// oga, aif, aiff and flac decoders, and wav, aif and aiff encoders.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("flac", flac.Decoder{})

	reg.RegisterEncoder("wav", wav.Encoder{})
	reg.RegisterEncoder("aif", aiff.Encoder{})
	reg.RegisterEncoder("aiff", aiff.Encoder{})

	return reg
}

// DefaultRegistry returns the registry used by OpenSource and OpenSink.
// Registering on it affects every later call.
func DefaultRegistry() *audio.Registry { return defaultRegistry }
