// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes integer PCM WAV files on top of
// github.com/go-audio/wav.
//
// Decoder turns a WAV stream into an audio.Input producing planar float32
// chunks in [-1, 1]. 8, 16, 24 and 32-bit PCM are supported; 8-bit data is
// unsigned on disk and re-centred on decode. Readers that cannot seek are
// buffered in memory first.
//
//	f, _ := os.Open("mix.wav")
//	in, err := wav.Decoder{FrameSize: 4096}.Decode(f)
//	if err != nil {
//	    // errors.Is(err, audio.ErrUnsupportedFormat) for anything not PCM
//	}
//	defer in.Close()
//
// Encoder returns an audio.Output. The RIFF header is patched with the final
// sizes when a write carries Ended, or on Close.
//
//	f, _ := os.Create("vocals.wav")
//	out, _ := wav.Encoder{}.Encode(f, audio.SinkOptions{
//	    SampleRate:   44100,
//	    Channels:     2,
//	    SampleFormat: audio.SampleFormatS16,
//	})
//	err := audio.Run(in, out)
//
// IEEE float WAV files are rejected with ErrOnlyPCMSupported.
package wav
