// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// SplitSink fans a multi-source chunk out to one sink per source.
// Channels [i*group, (i+1)*group) of every chunk go to sinks[i].
type SplitSink struct {
	group int
	sinks []Sink
}

// NewSplitSink creates a SplitSink writing group channels to each sink.
func NewSplitSink(group int, sinks ...Sink) (*SplitSink, error) {
	if group <= 0 || len(sinks) == 0 {
		return nil, fmt.Errorf("%w: split %d channels over %d sinks", ErrChannelMismatch, group, len(sinks))
	}
	return &SplitSink{group: group, sinks: sinks}, nil
}

func (s *SplitSink) Write(c *Chunk, sig Signal) error {
	if !c.Empty() && len(c.Data) != s.group*len(s.sinks) {
		return fmt.Errorf("%w: split sink expects %d channels, got %d",
			ErrChannelMismatch, s.group*len(s.sinks), len(c.Data))
	}

	for i, sink := range s.sinks {
		var part *Chunk
		if !c.Empty() {
			format := c.Format
			format.Channels = s.group
			part = &Chunk{Format: format, Data: c.Data[i*s.group : (i+1)*s.group]}
		}
		if err := sink.Write(part, sig); err != nil {
			return fmt.Errorf("split sink %d: %w", i, err)
		}
	}

	return nil
}
