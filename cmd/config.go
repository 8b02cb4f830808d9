package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/siren/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the example configuration to --path
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	return r.writePlain("%s\n", r.palette.OK("Created %s", path))
}

// ConfigShow prints the resolved configuration as JSON
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	if r.config == nil {
		return fmt.Errorf("%w: configuration was not resolved", shared.ErrMissingConfig)
	}
	return r.writeJSON(r.config, true)
}
