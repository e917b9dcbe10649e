// SPDX-License-Identifier: EPL-2.0

package stemflow

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/stemflow/audio"
	"github.com/ik5/stemflow/internal/audiotest"
	"github.com/ik5/stemflow/model"
)

func writeInput(t *testing.T, path string, src *audiotest.MockSource) {
	t.Helper()

	format := src.Format()
	out, err := OpenSink(path, audio.SinkOptions{
		SampleRate:   format.SampleRate,
		Channels:     format.Channels,
		SampleFormat: audio.SampleFormatS16,
	})
	if err != nil {
		t.Fatalf("OpenSink() error = %v", err)
	}
	if err := audio.Run(src.Input(1000), out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func decodeFile(t *testing.T, path string) (audio.Format, [][]float32) {
	t.Helper()

	in, err := OpenSource(path)
	if err != nil {
		t.Fatalf("OpenSource(%s) error = %v", path, err)
	}
	defer in.Close()

	sink := &audiotest.RecordingSink{}
	if err := audio.Run(in, sink); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data := make([][]float32, in.Format().Channels)
	for ch := range data {
		data[ch] = sink.Channel(ch)
	}
	return in.Format(), data
}

func separateFile(t *testing.T, name, input, outDir string, opts Options, modelOpts ...model.Option) *Result {
	t.Helper()

	m, err := model.Open(name, model.DeviceCPU, modelOpts...)
	if err != nil {
		t.Fatalf("model.Open() error = %v", err)
	}
	defer m.Close()

	in, err := OpenSource(input)
	if err != nil {
		t.Fatalf("OpenSource() error = %v", err)
	}
	defer in.Close()

	res, err := Separate(m, in, outDir, opts)
	if err != nil {
		t.Fatalf("Separate() error = %v", err)
	}
	return res
}

func TestSeparate_IdentityPreservesInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "mix.wav")
	writeInput(t, input, audiotest.NewConstantSource(44100, 2, 10000, 0.5))

	res := separateFile(t, model.Identity, input, filepath.Join(dir, "stems"), DefaultOptions(),
		model.WithSegment(1024))

	if len(res.Stems) != 1 || res.Stems[0].Name != "mix" {
		t.Fatalf("Stems = %+v, want a single mix stem", res.Stems)
	}
	if res.Frames != 10000 {
		t.Errorf("Frames = %d, want 10000", res.Frames)
	}

	format, data := decodeFile(t, res.Stems[0].Path)
	if format.SampleRate != 44100 || format.Channels != 2 {
		t.Errorf("stem format = %s, want 44100Hz stereo", format)
	}
	if len(data[0]) != 10000 {
		t.Fatalf("stem has %d frames, want 10000", len(data[0]))
	}
	for ch := range data {
		for i, v := range data[ch] {
			if math.Abs(float64(v)-0.5) > 1e-3 {
				t.Fatalf("channel %d frame %d = %v, want 0.5", ch, i, v)
			}
		}
	}
}

func TestSeparate_StemsKeepTiming(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "ramp.wav")
	writeInput(t, input, audiotest.NewMockSource(44100, 1, 4000, func(frame, _ int) float32 {
		return float32(frame%400)/400 - 0.5
	}))
	_, mix := decodeFile(t, input)

	res := separateFile(t, model.Identity, input, filepath.Join(dir, "stems"), DefaultOptions(),
		model.WithSegment(1024), model.WithChannels(1))

	_, stem := decodeFile(t, res.Stems[0].Path)
	if len(stem[0]) != len(mix[0]) {
		t.Fatalf("stem has %d frames, want %d", len(stem[0]), len(mix[0]))
	}
	for i := range mix[0] {
		if diff := math.Abs(float64(stem[0][i] - mix[0][i])); diff > 1e-3 {
			t.Fatalf("frame %d = %v, want %v", i, stem[0][i], mix[0][i])
		}
	}
}

func TestSeparate_BandSplitSumsToInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "mix.wav")
	src := audiotest.NewMockSource(44100, 2, 12000, func(frame, _ int) float32 {
		x := float64(frame) / 44100
		return float32(0.3*math.Sin(2*math.Pi*60*x) + 0.3*math.Sin(2*math.Pi*3000*x))
	})
	writeInput(t, input, src)
	_, mix := decodeFile(t, input)

	res := separateFile(t, model.BandSplit, input, filepath.Join(dir, "stems"), DefaultOptions(),
		model.WithSegment(2048))

	if len(res.Stems) != 2 {
		t.Fatalf("Stems = %+v, want low and high", res.Stems)
	}
	for _, stem := range res.Stems {
		if want := filepath.Join(dir, "stems", stem.Name+".wav"); stem.Path != want {
			t.Errorf("stem path = %s, want %s", stem.Path, want)
		}
	}

	_, low := decodeFile(t, res.Stems[0].Path)
	_, high := decodeFile(t, res.Stems[1].Path)
	for ch := range mix {
		if len(low[ch]) != len(mix[ch]) || len(high[ch]) != len(mix[ch]) {
			t.Fatalf("stem lengths %d and %d, want %d", len(low[ch]), len(high[ch]), len(mix[ch]))
		}
		for i := range mix[ch] {
			if diff := math.Abs(float64(low[ch][i] + high[ch][i] - mix[ch][i])); diff > 1e-3 {
				t.Fatalf("channel %d frame %d: low+high = %v, mix = %v",
					ch, i, low[ch][i]+high[ch][i], mix[ch][i])
			}
		}
	}
}

func TestSeparate_StemRate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "mix.wav")
	writeInput(t, input, audiotest.NewSilentSource(44100, 1, 10000))

	opts := DefaultOptions()
	opts.SampleRate = 22050
	opts.Container = "aiff"
	res := separateFile(t, model.Identity, input, dir, opts, model.WithSegment(512), model.WithChannels(1))

	if res.Frames != 5000 {
		t.Errorf("Frames = %d, want 5000", res.Frames)
	}

	format, data := decodeFile(t, res.Stems[0].Path)
	if format.SampleRate != 22050 || len(data[0]) != 5000 {
		t.Errorf("stem is %s with %d frames, want 22050Hz with 5000", format, len(data[0]))
	}
}

type failingModel struct {
	model.Model
	err error
}

func (f failingModel) Forward([][]float32) ([][][]float32, error) { return nil, f.err }

func TestSeparate_ModelFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "mix.wav")
	writeInput(t, input, audiotest.NewSilentSource(44100, 2, 4000))

	m, err := model.Open(model.Identity, model.DeviceCPU, model.WithSegment(1024))
	if err != nil {
		t.Fatalf("model.Open() error = %v", err)
	}
	in, err := OpenSource(input)
	if err != nil {
		t.Fatalf("OpenSource() error = %v", err)
	}
	defer in.Close()

	boom := errors.New("out of memory")
	if _, err := Separate(failingModel{Model: m, err: boom}, in, filepath.Join(dir, "stems"), DefaultOptions()); !errors.Is(err, boom) {
		t.Errorf("Separate() error = %v, want %v", err, boom)
	}
}

func TestOpenSource_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	garbage := filepath.Join(dir, "noise.wav")
	if err := os.WriteFile(garbage, []byte("not a riff file"), 0o644); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"unknown extension", filepath.Join(dir, "track.xyz"), audio.ErrUnsupportedFormat},
		{"missing file", filepath.Join(dir, "missing.wav"), audio.ErrIOFailure},
		{"undecodable", garbage, audio.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := OpenSource(tt.path); !errors.Is(err, tt.want) {
				t.Errorf("OpenSource() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestOpenSink_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := OpenSink(filepath.Join(dir, "out.mp3"), audio.SinkOptions{SampleRate: 44100, Channels: 2})
	if !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Errorf("OpenSink(mp3) error = %v, want ErrUnsupportedFormat", err)
	}

	path := filepath.Join(dir, "float.wav")
	_, err = OpenSink(path, audio.SinkOptions{SampleRate: 44100, Channels: 2, SampleFormat: audio.SampleFormatF32})
	if !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Errorf("OpenSink(f32) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("rejected sink left %s behind", path)
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	for _, ext := range []string{"wav", ".WAV", "mp3", "ogg", "oga", "aif", "aiff", "flac"} {
		if _, ok := reg.Get(ext); !ok {
			t.Errorf("no decoder for %q", ext)
		}
	}
	for _, ext := range []string{"wav", "aiff"} {
		if _, ok := reg.Encoder(ext); !ok {
			t.Errorf("no encoder for %q", ext)
		}
	}
	if _, ok := reg.Encoder("mp3"); ok {
		t.Error("unexpected mp3 encoder")
	}
}
