package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/siren/internal/services"
	"github.com/desertthunder/siren/internal/shared"
	"github.com/urfave/cli/v3"
)

// parseQuery turns name=value pairs into params, preserving their order.
func parseQuery(pairs []string) ([]services.Param, error) {
	params := make([]services.Param, 0, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: query must be name=value, got %q", shared.ErrInvalidFlag, pair)
		}
		params = append(params, services.Param{Name: name, Value: value})
	}
	return params, nil
}

// APIGet makes a direct GET request to the upstream API and prints the JSON body
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path, err := requireArg(cmd, "path")
	if err != nil {
		return err
	}

	query, err := parseQuery(cmd.StringSlice("query"))
	if err != nil {
		return err
	}

	r.logger.Info("GET request", "path", path)

	body, err := r.raw.Raw(ctx, path, query...)
	if err != nil {
		return err
	}

	return r.writeJSON(body, cmd.Bool("pretty"))
}
