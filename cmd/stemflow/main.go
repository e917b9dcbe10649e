// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ik5/stemflow"
	"github.com/ik5/stemflow/internal/cli"
	"github.com/ik5/stemflow/internal/config"
	"github.com/ik5/stemflow/model"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	cfg := config.Default()
	kong.Parse(&cfg,
		kong.Name("stemflow"),
		kong.Description("Split an audio file into stems with a windowed model."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if cfg.Version {
		cli.PrintVersion(os.Stdout, version)
		os.Exit(0)
	}

	if err := cfg.Validate(); err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).Level(cfg.Level())

	summary, err := run(&cfg)
	if err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}

	cli.PrintSummary(os.Stdout, summary)
}

func run(cfg *config.Config) (summary cli.Summary, err error) {
	start := time.Now()

	device, err := cfg.DeviceValue()
	if err != nil {
		return summary, err
	}

	m, err := model.Open(cfg.Model, device, cfg.ModelOptions()...)
	if err != nil {
		return summary, fmt.Errorf("open model: %w", err)
	}
	defer func() { err = errors.Join(err, m.Close()) }()

	in, err := stemflow.OpenSource(cfg.Input)
	if err != nil {
		return summary, fmt.Errorf("open input: %w", err)
	}
	defer func() { err = errors.Join(err, in.Close()) }()

	opts, err := cfg.SeparateOptions()
	if err != nil {
		return summary, err
	}

	log.Info().
		Str("model", cfg.Model).
		Str("input", cfg.Input).
		Str("output", cfg.Output).
		Msg("separating")

	res, err := stemflow.Separate(m, in, cfg.Output, opts)
	if err != nil {
		return summary, err
	}

	rate := opts.SampleRate
	if rate <= 0 {
		rate = in.Format().SampleRate
	}

	summary = cli.Summary{
		Model:   cfg.Model,
		Device:  device.String(),
		Input:   cfg.Input,
		Frames:  res.Frames,
		Rate:    rate,
		Elapsed: time.Since(start),
	}
	for _, s := range res.Stems {
		summary.Stems = append(summary.Stems, cli.Stem{Name: s.Name, Path: s.Path})
	}

	log.Info().Int("frames", res.Frames).Int("stems", len(res.Stems)).Msg("separation finished")

	return summary, nil
}
