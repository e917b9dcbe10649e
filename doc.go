// SPDX-License-Identifier: EPL-2.0

// Package stemflow separates audio files into stems by streaming them
// through a fixed-window model.
//
// A separation is a pull-driven pipeline:
//
//	decode -> resample to model format -> overlap-add model -> resample -> encode
//
// The stages live in sub-packages: audio holds the stream contracts, the
// chain combinators, Run and the resampler; overlap adapts a fixed-window
// model to a stream; model provides the built-in models; formats/* wrap the
// codec libraries.
//
// # Quick Start
//
//	m, _ := model.Open(model.BandSplit, model.DeviceCPU)
//	defer m.Close()
//
//	in, _ := stemflow.OpenSource("song.flac")
//	defer in.Close()
//
//	res, err := stemflow.Separate(m, in, "stems", stemflow.DefaultOptions())
//	// stems/low.wav and stems/high.wav
//
// OpenSource and OpenSink pick a codec by file extension from
// DefaultRegistry. Decoding covers WAV, MP3, Ogg Vorbis, AIFF and FLAC;
// encoding covers WAV and AIFF.
//
// # Building Pipelines by Hand
//
//	in, _ := stemflow.OpenSource("speech.mp3")
//	down, _ := audio.NewResampler(in.Format(), audio.Format{SampleRate: 16000, Channels: 1}, 1600)
//	out, _ := stemflow.OpenSink("speech.wav", audio.SinkOptions{
//	    SampleRate:   16000,
//	    Channels:     1,
//	    SampleFormat: audio.SampleFormatS16,
//	})
//	err := audio.Run(audio.Chain(in, down), out)
package stemflow
