// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"

	"github.com/ik5/stemflow/audio"
)

// MockSource is a test helper that generates audio data for testing.
// It implements audio.SampleReader and can be wrapped into an audio.Input
// with Input.
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int // Total frames to generate
	generated   int // Frames generated so far
	waveform    func(frame int, channel int) float32
}

// NewMockSource creates a new mock audio source.
// totalFrames is the total number of samples per channel to generate.
// waveform is a function that generates sample values given frame index and channel.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return 0.0
	})
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return value
	})
}

// NewRampSource creates a mock source whose sample i of every channel is
// i+1, handy for checking ordering.
func NewRampSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, _ int) float32 {
		return float32(frame + 1)
	})
}

func (m *MockSource) Format() audio.Format {
	return audio.Format{SampleRate: m.sampleRate, Channels: m.channels, SampleFormat: audio.SampleFormatF32}
}

// Input wraps the mock into an audio.Input yielding chunks of frameSize frames.
func (m *MockSource) Input(frameSize int) *audio.ReaderSource {
	return audio.NewReaderSource(m, m.Format(), frameSize, nil)
}

// Reset resets the generated frame counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	// Calculate how many frames we can write
	framesToWrite := min(len(dst)/m.channels, m.totalFrames-m.generated)

	// Generate samples
	for frame := range framesToWrite {
		idx := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(idx, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalFrames {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// Step is one scripted pull result.
type Step struct {
	Data   [][]float32
	Signal audio.Signal
	Err    error
}

// ScriptedSource replays a fixed list of pull results. Once the script runs
// out it keeps reporting the terminal signal.
type ScriptedSource struct {
	Format audio.Format
	Steps  []Step
	// Reads counts every call to Read, including those past the script.
	Reads int
}

// NewScriptedSource builds a source for the given format and steps.
func NewScriptedSource(format audio.Format, steps ...Step) *ScriptedSource {
	return &ScriptedSource{Format: format, Steps: steps}
}

func (s *ScriptedSource) Read() (*audio.Chunk, audio.Signal, error) {
	s.Reads++
	if len(s.Steps) == 0 {
		return nil, audio.Signal{Ended: true}, nil
	}

	step := s.Steps[0]
	s.Steps = s.Steps[1:]
	if step.Err != nil {
		return nil, audio.Signal{}, step.Err
	}

	var chunk *audio.Chunk
	if step.Signal.Produced {
		chunk = &audio.Chunk{Format: s.Format, Data: step.Data}
	}
	return chunk, step.Signal, nil
}

// Write is one call recorded by a RecordingSink.
type Write struct {
	Data   [][]float32
	Signal audio.Signal
}

// RecordingSink keeps a copy of every write it receives.
type RecordingSink struct {
	Writes []Write
	// Err, when set, is returned by the write with index FailAt.
	Err    error
	FailAt int
}

func (r *RecordingSink) Write(c *audio.Chunk, sig audio.Signal) error {
	if r.Err != nil && len(r.Writes) == r.FailAt {
		return r.Err
	}

	var data [][]float32
	if !c.Empty() {
		data = make([][]float32, len(c.Data))
		for ch := range c.Data {
			data[ch] = append([]float32(nil), c.Data[ch]...)
		}
	}
	r.Writes = append(r.Writes, Write{Data: data, Signal: sig})
	return nil
}

// Channel concatenates every recorded sample of channel ch.
func (r *RecordingSink) Channel(ch int) []float32 {
	var out []float32
	for _, w := range r.Writes {
		if ch < len(w.Data) {
			out = append(out, w.Data[ch]...)
		}
	}
	return out
}

// Frames returns the total number of recorded frames.
func (r *RecordingSink) Frames() int {
	n := 0
	for _, w := range r.Writes {
		if len(w.Data) > 0 {
			n += len(w.Data[0])
		}
	}
	return n
}

// Ended reports how many recorded writes carried the end signal.
func (r *RecordingSink) Ended() int {
	n := 0
	for _, w := range r.Writes {
		if w.Signal.Ended {
			n++
		}
	}
	return n
}
