// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"os"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/ik5/stemflow/audio"
	"github.com/ik5/stemflow/model"
)

func validConfig() Config {
	c := Default()
	c.Model = model.BandSplit
	c.Input = "mix.wav"
	c.Output = "stems"
	return c
}

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	c := validConfig()
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

// TestValidate_Rejects checks every field range, so a default that drifts
// out of range is caught here too.
func TestValidate_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing model", func(c *Config) { c.Model = "" }},
		{"missing output", func(c *Config) { c.Output = "" }},
		{"device", func(c *Config) { c.Device = "tpu" }},
		{"negative rate", func(c *Config) { c.SampleRate = -1 }},
		{"float format", func(c *Config) { c.SampleFormat = "f32" }},
		{"unknown format", func(c *Config) { c.SampleFormat = "s12" }},
		{"negative bit rate", func(c *Config) { c.BitRate = -320 }},
		{"overlap one", func(c *Config) { c.Overlap = 1 }},
		{"negative overlap", func(c *Config) { c.Overlap = -0.1 }},
		{"zero power", func(c *Config) { c.TransitionPower = 0 }},
		{"zero segment", func(c *Config) { c.Segment = 0 }},
		{"zero crossover", func(c *Config) { c.Crossover = 0 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validConfig()
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSeparateOptions(t *testing.T) {
	t.Parallel()

	c := validConfig()
	c.SampleFormat = "s24"
	c.SampleRate = 0
	c.Overlap = 0.5

	opts, err := c.SeparateOptions()
	if err != nil {
		t.Fatalf("SeparateOptions() error = %v", err)
	}
	if opts.SampleFormat != audio.SampleFormatS24 || opts.SampleRate != 0 || opts.Container != "wav" {
		t.Errorf("SeparateOptions() = %+v", opts)
	}
	if opts.Overlap.Overlap != 0.5 || opts.Overlap.TransitionPower != TransitionPower {
		t.Errorf("Overlap = %+v", opts.Overlap)
	}
}

func TestLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		c := Config{LogLevel: tt.in}
		if got := c.Level(); got != tt.want {
			t.Errorf("Level(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestKongDefaultsMatchDefault(t *testing.T) {
	t.Parallel()

	var c Config
	parser, err := kong.New(&c, kong.Exit(func(int) { t.Fatal("kong exited") }))
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	if _, err := parser.Parse([]string{"bandsplit", "mix.wav", "stems"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := validConfig()
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		want.LogLevel = env
	}
	if c != want {
		t.Errorf("kong parsed %+v, want %+v", c, want)
	}
}

func TestKongRejectsUnknownDevice(t *testing.T) {
	t.Parallel()

	var c Config
	parser, err := kong.New(&c, kong.Exit(func(int) {}))
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	if _, err := parser.Parse([]string{"bandsplit", "mix.wav", "stems", "--device", "tpu"}); err == nil {
		t.Error("Parse() error = nil, want enum error")
	}
}
