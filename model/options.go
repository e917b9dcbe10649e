// SPDX-License-Identifier: EPL-2.0

package model

// Config holds the codec parameters a built-in model runs at.
type Config struct {
	SampleRate int
	Channels   int
	// Segment is the window length in frames handed to Forward.
	Segment int
	// Crossover is the band split frequency in Hz.
	Crossover float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns 44.1kHz stereo with a segment of 8192 frames and a
// 200Hz crossover.
func DefaultConfig() Config {
	return Config{
		SampleRate: 44100,
		Channels:   2,
		Segment:    8192,
		Crossover:  200,
	}
}

// WithSampleRate sets the model sample rate.
func WithSampleRate(sampleRate int) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithChannels sets the model channel count.
func WithChannels(channels int) Option {
	return func(cfg *Config) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// WithSegment sets the window length in frames.
func WithSegment(segment int) Option {
	return func(cfg *Config) {
		if segment > 0 {
			cfg.Segment = segment
		}
	}
}

// WithCrossover sets the band split frequency.
func WithCrossover(hz float64) Option {
	return func(cfg *Config) {
		if hz > 0 {
			cfg.Crossover = hz
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
