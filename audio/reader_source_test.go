// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/stemflow/audio"
	"github.com/ik5/stemflow/internal/audiotest"
)

type stutterReader struct {
	reads []int
	err   error
}

func (s *stutterReader) ReadSamples(dst []float32) (int, error) {
	if len(s.reads) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, io.EOF
	}
	n := min(s.reads[0], len(dst))
	s.reads = s.reads[1:]
	for i := range n {
		dst[i] = 0.25
	}
	return n, nil
}

type countingCloser struct{ closed int }

func (c *countingCloser) Close() error {
	c.closed++
	return nil
}

func TestReaderSource_ChunkSizes(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 2, 10).Input(4)
	if got := src.Format(); got.Channels != 2 || got.SampleRate != 8000 {
		t.Errorf("Format() = %v", got)
	}

	var sizes []int
	var sigs []audio.Signal
	for {
		c, sig, err := src.Read()
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		sigs = append(sigs, sig)
		if sig.Produced {
			sizes = append(sizes, c.Frames())
			if c.Data[0][0] != c.Data[1][0] {
				t.Errorf("channels differ: %v", c.Data)
			}
		}
		if sig.Ended {
			break
		}
	}

	if want := []int{4, 4, 2}; len(sizes) != len(want) || sizes[0] != 4 || sizes[1] != 4 || sizes[2] != 2 {
		t.Errorf("chunk sizes = %v, want %v", sizes, want)
	}
	if last := sigs[len(sigs)-1]; last != (audio.Signal{Produced: true, Ended: true}) {
		t.Errorf("last signal = %+v, want data with end", last)
	}

	// Terminal is sticky
	if _, sig, _ := src.Read(); !sig.Terminal() {
		t.Errorf("Read() after end = %+v, want terminal", sig)
	}
}

func TestReaderSource_EmptyReadIsPending(t *testing.T) {
	t.Parallel()

	format := audio.Format{SampleRate: 8000, Channels: 1}
	src := audio.NewReaderSource(&stutterReader{reads: []int{0, 3}}, format, 8, nil)

	if _, sig, _ := src.Read(); !sig.Pending() {
		t.Errorf("first Read() = %+v, want pending", sig)
	}
	if c, sig, _ := src.Read(); !sig.Produced || c.Frames() != 3 {
		t.Errorf("second Read() = %d frames, %+v", c.Frames(), sig)
	}
	if _, sig, _ := src.Read(); !sig.Terminal() {
		t.Errorf("third Read() = %+v, want terminal", sig)
	}
}

func TestReaderSource_WrapsReadErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt frame")
	format := audio.Format{SampleRate: 8000, Channels: 1}
	src := audio.NewReaderSource(&stutterReader{err: boom}, format, 8, nil)

	_, _, err := src.Read()
	if !errors.Is(err, audio.ErrIOFailure) || !errors.Is(err, boom) {
		t.Errorf("Read() error = %v, want ErrIOFailure wrapping %v", err, boom)
	}
}

func TestReaderSource_CloseOnce(t *testing.T) {
	t.Parallel()

	closer := &countingCloser{}
	format := audio.Format{SampleRate: 8000, Channels: 1}
	src := audio.NewReaderSource(&stutterReader{reads: []int{8}}, format, 0, closer)

	if src.FrameSize() != audio.DefaultFrameSize {
		t.Errorf("FrameSize() = %d, want %d", src.FrameSize(), audio.DefaultFrameSize)
	}

	if err := src.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if closer.closed != 1 {
		t.Errorf("closer called %d times, want 1", closer.closed)
	}
	if _, sig, _ := src.Read(); !sig.Terminal() {
		t.Errorf("Read() after Close = %+v, want terminal", sig)
	}
}

func TestReaderSource_SetFrameSize(t *testing.T) {
	t.Parallel()

	format := audio.Format{SampleRate: 8000, Channels: 1}
	src := audio.NewReaderSource(&stutterReader{reads: []int{8, 8}}, format, 8, nil)

	src.SetFrameSize(3)
	if src.FrameSize() != 3 {
		t.Fatalf("FrameSize() = %d, want 3", src.FrameSize())
	}
	chunk, _, err := src.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if chunk.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", chunk.Frames())
	}

	src.SetFrameSize(0)
	chunk, _, err = src.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if chunk.Frames() != 8 {
		t.Errorf("Frames() after reset = %d, want 8", chunk.Frames())
	}
}
