// SPDX-License-Identifier: EPL-2.0

package stemflow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/ik5/stemflow/audio"
	"github.com/ik5/stemflow/model"
	"github.com/ik5/stemflow/overlap"
)

// Options control a separation run.
type Options struct {
	// Overlap shapes how consecutive model windows are blended.
	Overlap overlap.Options
	// SampleRate of the written stems, 0 keeps the input rate.
	SampleRate   int
	SampleFormat audio.SampleFormat
	// BitRate is passed to the encoder as is.
	BitRate int64
	// Container is the extension of the written stems.
	Container string
}

// DefaultOptions writes 44.1kHz 16-bit WAV stems with the default overlap.
func DefaultOptions() Options {
	return Options{
		Overlap:      overlap.DefaultOptions(),
		SampleRate:   44100,
		SampleFormat: audio.SampleFormatS16,
		Container:    "wav",
	}
}

// Stem is one written output file.
type Stem struct {
	Name string
	Path string
}

// Result describes a finished separation.
type Result struct {
	Stems []Stem
	// Frames is the number of frames written to every stem.
	Frames int
}

// Separate streams in through m and writes one file per model source into
// outDir, named after the source. The input is resampled to the model
// format, run through an overlap-add window of the model segment with its
// latency removed, and resampled again to the stem rate.
//
// in is not closed, but an input with SetFrameSize is re-chunked to the
// window hop. Stems written before a failure are left in place.
func Separate(m model.Model, in audio.Input, outDir string, opts Options) (*Result, error) {
	params := m.Params()
	if len(params.Sources) == 0 {
		return nil, fmt.Errorf("%w: model has no sources", model.ErrInvalidParams)
	}
	if opts.Container == "" {
		opts.Container = "wav"
	}

	window, err := overlap.New(m, params.Format(), params.Segment, opts.Overlap)
	if err != nil {
		return nil, err
	}
	aligned := newAlignedWindow(window)
	defer aligned.Close()

	pre, err := audio.NewResampler(in.Format(), params.Format(), window.Hop())
	if err != nil {
		return nil, err
	}
	defer pre.Close()
	pre.FitInput(in)

	stemRate := opts.SampleRate
	if stemRate <= 0 {
		stemRate = in.Format().SampleRate
	}

	mixed := params.Format()
	mixed.Channels = len(params.Sources) * params.Channels
	// One window hop must fit in a single output chunk.
	postFrames := (window.Hop()*stemRate+params.SampleRate-1)/params.SampleRate + 1
	post, err := audio.NewResampler(mixed, audio.Format{SampleRate: stemRate}, postFrames)
	if err != nil {
		return nil, err
	}
	defer post.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIOFailure, err)
	}

	res := &Result{}
	outputs := make([]audio.Output, 0, len(params.Sources))
	closeAll := func() error {
		var errs []error
		for _, out := range outputs {
			errs = append(errs, out.Close())
		}
		return errors.Join(errs...)
	}

	sinkOpts := audio.SinkOptions{
		SampleRate:   stemRate,
		Channels:     params.Channels,
		SampleFormat: opts.SampleFormat,
		BitRate:      opts.BitRate,
	}
	for _, name := range params.Sources {
		path := filepath.Join(outDir, name+"."+opts.Container)
		out, err := OpenSink(path, sinkOpts)
		if err != nil {
			return nil, errors.Join(err, closeAll())
		}
		outputs = append(outputs, out)
		res.Stems = append(res.Stems, Stem{Name: name, Path: path})
	}

	sinks := make([]audio.Sink, len(outputs))
	for i, out := range outputs {
		sinks[i] = out
	}
	split, err := audio.NewSplitSink(params.Channels, sinks...)
	if err != nil {
		return nil, errors.Join(err, closeAll())
	}

	counter := &frameCounter{next: split}

	log.Debug().
		Stringer("input", in.Format()).
		Stringer("model", params.Format()).
		Int("segment", window.Size()).
		Int("hop", window.Hop()).
		Int("stem_rate", stemRate).
		Msg("separation started")

	if err := audio.Run(audio.Pipe(in, pre, aligned, post), counter); err != nil {
		return nil, errors.Join(err, closeAll())
	}
	if err := closeAll(); err != nil {
		return nil, err
	}

	res.Frames = counter.frames
	return res, nil
}

// frameCounter counts the frames passing through to next.
type frameCounter struct {
	next   audio.Sink
	frames int
}

func (f *frameCounter) Write(c *audio.Chunk, sig audio.Signal) error {
	f.frames += c.Frames()
	return f.next.Write(c, sig)
}
