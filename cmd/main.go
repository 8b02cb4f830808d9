package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/siren/internal/shared"
	"github.com/urfave/cli/v3"
)

const version = "0.1.0"

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := runner.app().Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrNotImplemented):
			logger.Warn("not implemented")
			os.Exit(0)
		case errors.Is(err, shared.ErrInvalidConfig), errors.Is(err, shared.ErrMissingConfig):
			logger.Fatalf("configuration error: %v", err)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}

func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "siren",
		Usage:   "Typed proxy & CLI for the Monster Siren music API",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (.toml or .yaml)",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "remote",
				Usage: "Upstream API base URL",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Per-request upstream timeout",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Before:   r.setup,
		Commands: r.register(),
	}
}
