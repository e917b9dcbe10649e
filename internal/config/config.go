// SPDX-License-Identifier: EPL-2.0

// Package config holds the command line configuration of stemflow.
package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ik5/stemflow"
	"github.com/ik5/stemflow/audio"
	"github.com/ik5/stemflow/model"
	"github.com/ik5/stemflow/overlap"
)

// Stem output defaults
const (
	SampleRate   = 44100
	SampleFormat = "s16"
	Container    = "wav"
)

// Overlap-add defaults
const (
	Overlap         = 0.25
	TransitionPower = 1.0
)

// Model defaults
const (
	Device    = "cpu"
	Segment   = 8192
	Crossover = 200.0
)

// LogLevel is the default log level
const LogLevel = "info"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full command line, parsed by kong.
type Config struct {
	Model  string `arg:"" name:"model" help:"Built-in model (identity, bandsplit) or a .pt/.onnx file." optional:""`
	Input  string `arg:"" name:"input" help:"Audio file to separate (wav, mp3, ogg, aiff, flac)." optional:""`
	Output string `arg:"" name:"output" help:"Directory the stems are written to." optional:""`

	Device string `help:"Inference device." enum:"cpu,cuda,metal" default:"cpu"`

	SampleRate   int    `help:"Stem sample rate in Hz, 0 keeps the input rate." default:"44100"`
	SampleFormat string `help:"Stem sample format." enum:"u8,s16,s24,s32" default:"s16"`
	BitRate      int64  `help:"Requested stem bit rate. Advisory for PCM containers." default:"0"`
	Container    string `help:"Stem container." enum:"wav,aiff" default:"wav"`

	Overlap         float64 `help:"Fraction of each model window shared with the next." default:"0.25"`
	TransitionPower float64 `help:"Sharpness of the crossfade between windows." default:"1.0"`
	Segment         int     `help:"Model window length in frames." default:"8192"`
	Crossover       float64 `help:"Band split crossover frequency in Hz." default:"200"`

	LogLevel string `help:"Log level." enum:"trace,debug,info,warn,error" default:"info" env:"LOG_LEVEL"`
	Version  bool   `help:"Show version information."`
}

// Default returns the configuration kong produces with no flags set.
func Default() Config {
	return Config{
		Device:          Device,
		SampleRate:      SampleRate,
		SampleFormat:    SampleFormat,
		Container:       Container,
		Overlap:         Overlap,
		TransitionPower: TransitionPower,
		Segment:         Segment,
		Crossover:       Crossover,
		LogLevel:        LogLevel,
	}
}

// Validate checks that every value is usable. Positional arguments are
// checked too, so call it after handling --version.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Model == "" || c.Input == "" || c.Output == "" {
		fail("<model>, <input> and <output> are required")
	}
	if _, err := model.ParseDevice(c.Device); err != nil {
		fail("device %q", c.Device)
	}
	if c.SampleRate < 0 {
		fail("sample rate %d", c.SampleRate)
	}
	if _, err := c.sampleFormat(); err != nil {
		fail("sample format %q", c.SampleFormat)
	}
	if c.BitRate < 0 {
		fail("bit rate %d", c.BitRate)
	}
	if c.Overlap < 0 || c.Overlap >= 1 {
		fail("overlap %v outside [0, 1)", c.Overlap)
	}
	if c.TransitionPower <= 0 {
		fail("transition power %v", c.TransitionPower)
	}
	if c.Segment <= 0 {
		fail("segment %d", c.Segment)
	}
	if c.Crossover <= 0 {
		fail("crossover %v", c.Crossover)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		fail("log level %q", c.LogLevel)
	}

	return errors.Join(errs...)
}

func (c *Config) sampleFormat() (audio.SampleFormat, error) {
	f, err := audio.ParseSampleFormat(c.SampleFormat)
	if err != nil {
		return 0, err
	}
	if f == audio.SampleFormatF32 {
		return 0, fmt.Errorf("%w: float stems", audio.ErrUnsupportedFormat)
	}
	return f, nil
}

// Level returns the zerolog level, info when unparsable.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// DeviceValue returns the parsed device.
func (c *Config) DeviceValue() (model.Device, error) {
	return model.ParseDevice(c.Device)
}

// ModelOptions returns the model parameters set on the command line.
func (c *Config) ModelOptions() []model.Option {
	return []model.Option{
		model.WithSegment(c.Segment),
		model.WithCrossover(c.Crossover),
	}
}

// SeparateOptions returns the pipeline options for a validated config.
func (c *Config) SeparateOptions() (stemflow.Options, error) {
	f, err := c.sampleFormat()
	if err != nil {
		return stemflow.Options{}, err
	}

	return stemflow.Options{
		Overlap: overlap.Options{
			Overlap:         c.Overlap,
			TransitionPower: c.TransitionPower,
		},
		SampleRate:   c.SampleRate,
		SampleFormat: f,
		BitRate:      c.BitRate,
		Container:    c.Container,
	}, nil
}
