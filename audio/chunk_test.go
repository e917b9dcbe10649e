// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"reflect"
	"testing"
)

func TestChunk_Frames(t *testing.T) {
	t.Parallel()

	var nilChunk *Chunk
	if nilChunk.Frames() != 0 || !nilChunk.Empty() {
		t.Error("nil chunk should be empty")
	}

	c := NewChunk(Format{SampleRate: 8000, Channels: 3}, 5)
	if c.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", c.Frames())
	}
	if len(c.Data) != 3 {
		t.Errorf("len(Data) = %d, want 3", len(c.Data))
	}

	// Channels share one backing array but must not overlap
	c.Data[0] = append(c.Data[0], 1)
	if c.Data[1][0] != 0 {
		t.Error("appending to channel 0 overwrote channel 1")
	}
}

func TestDeinterleave(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		src      []float32
		want     [][]float32
	}{
		{"mono", 1, []float32{1, 2, 3}, [][]float32{{1, 2, 3}}},
		{"stereo", 2, []float32{1, -1, 2, -2}, [][]float32{{1, 2}, {-1, -2}}},
		{"three channels", 3, []float32{1, 2, 3, 4, 5, 6}, [][]float32{{1, 4}, {2, 5}, {3, 6}}},
		{"partial frame dropped", 2, []float32{1, 2, 3}, [][]float32{{1}, {2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := Deinterleave(Format{SampleRate: 8000, Channels: tt.channels}, tt.src)
			if !reflect.DeepEqual(c.Data, tt.want) {
				t.Errorf("Deinterleave() = %v, want %v", c.Data, tt.want)
			}

			n := c.Frames() * tt.channels
			if got := c.Interleave(nil); !reflect.DeepEqual(got, tt.src[:n]) {
				t.Errorf("Interleave() = %v, want %v", got, tt.src[:n])
			}
		})
	}
}

func TestInterleave_ReusesBuffer(t *testing.T) {
	t.Parallel()

	c := &Chunk{Data: [][]float32{{1, 2}, {3, 4}}}
	buf := make([]float32, 0, 16)

	got := c.Interleave(buf)
	if &got[0] != &buf[:1][0] {
		t.Error("Interleave() allocated although dst had capacity")
	}
	if want := []float32{1, 3, 2, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Interleave() = %v, want %v", got, want)
	}
}

func TestParseSampleFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		want  SampleFormat
		depth int
	}{
		{"f32", SampleFormatF32, 32},
		{"U8", SampleFormatU8, 8},
		{" s16 ", SampleFormatS16, 16},
		{"s24", SampleFormatS24, 24},
		{"s32", SampleFormatS32, 32},
	}

	for _, tt := range tests {
		got, err := ParseSampleFormat(tt.name)
		if err != nil {
			t.Errorf("ParseSampleFormat(%q) error = %v", tt.name, err)
			continue
		}
		if got != tt.want || got.BitDepth() != tt.depth {
			t.Errorf("ParseSampleFormat(%q) = %v (%d bits), want %v (%d bits)", tt.name, got, got.BitDepth(), tt.want, tt.depth)
		}
	}

	if _, err := ParseSampleFormat("s12"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ParseSampleFormat(s12) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSampleFormatForDepth(t *testing.T) {
	t.Parallel()

	for _, bits := range []int{8, 16, 24, 32} {
		f, err := SampleFormatForDepth(bits)
		if err != nil {
			t.Fatalf("SampleFormatForDepth(%d) error = %v", bits, err)
		}
		if f.BitDepth() != bits {
			t.Errorf("SampleFormatForDepth(%d).BitDepth() = %d", bits, f.BitDepth())
		}
	}

	if _, err := SampleFormatForDepth(20); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("SampleFormatForDepth(20) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormat_String(t *testing.T) {
	t.Parallel()

	f := Format{SampleRate: 44100, Channels: 2, SampleFormat: SampleFormatS16}
	if got, want := f.String(), "44100Hz/2ch/s16"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := SampleFormat(42).String(); got != "SampleFormat(42)" {
		t.Errorf("String() = %q", got)
	}
}
