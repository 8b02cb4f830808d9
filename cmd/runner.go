package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/siren/internal/models"
	"github.com/desertthunder/siren/internal/services"
	"github.com/desertthunder/siren/internal/shared"
	"github.com/desertthunder/siren/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	catalog services.Catalog
	raw     services.RawFetcher
	logger  *log.Logger
	output  io.Writer
	palette *ui.Palette
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Config is resolved from file and environment before the first command runs; a nil Catalog is built
// from the resolved configuration.
type RunnerOpts struct {
	Config  *shared.Config
	Catalog services.Catalog
	Raw     services.RawFetcher
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:  opts.Config,
		catalog: opts.Catalog,
		raw:     opts.Raw,
		logger:  opts.Logger,
		output:  opts.Output,
		palette: ui.Default,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, songsCommand, albumsCommand, newsCommand, searchCommand, fontsetCommand, exportCommand,
		configCommand, apiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// setup resolves configuration, applies global flag overrides and builds the upstream client.
//
// Any configuration error aborts before a command runs.
func (r *Runner) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.config == nil {
		config, err := shared.ResolveConfig(cmd.String("config"), cmd.IsSet("config"))
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	if cmd.IsSet("remote") {
		r.config.Remote.BaseURL = cmd.String("remote")
	}
	if cmd.IsSet("timeout") {
		r.config.Remote.Timeout = cmd.Duration("timeout")
	}
	if cmd.IsSet("log-level") {
		r.config.Log.Level = cmd.String("log-level")
	}
	if err := r.config.Validate(); err != nil {
		return ctx, err
	}

	level, err := shared.ParseLogLevel(r.config.Log.Level)
	if err != nil {
		return ctx, err
	}
	shared.SetLogLevel(r.logger, level)

	if r.catalog == nil {
		srv, err := services.NewSirenService(r.config.Remote.BaseURL, services.SirenOpts{
			Timeout:   r.config.Remote.Timeout,
			UserAgent: r.config.Remote.UserAgent,
			Logger:    shared.WithLogger(r.logger, "component", "upstream"),
		})
		if err != nil {
			return ctx, err
		}
		r.catalog = srv
		if r.raw == nil {
			r.raw = srv
		}
	}

	return ctx, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", r.palette.Title(title))
	r.writePlain("═══════════════════════════════════════\n")
}

// show prints an envelope: raw JSON with --json or --pretty, otherwise a header and the rendered payload.
func show[T any](r *Runner, cmd *cli.Command, title string, env *models.Envelope[T], err error, render func(T) []byte) error {
	if err != nil {
		return err
	}

	if cmd.Bool("json") || cmd.Bool("pretty") {
		return r.writeJSON(env, cmd.Bool("pretty"))
	}

	if !env.OK() {
		r.writePlain("%s\n", r.palette.Err("upstream returned code %d: %s", env.Code, env.Message))
		return fmt.Errorf("%w: code %d: %s", shared.ErrUpstreamRejected, env.Code, env.Message)
	}

	r.writePlainHeader(title)
	if _, err := r.output.Write(render(env.Data)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
