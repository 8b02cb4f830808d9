package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/siren/internal/server"
	"github.com/desertthunder/siren/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve starts the HTTP proxy and blocks until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("docs") {
		cfg.Docs = cmd.Bool("docs")
	}
	if cmd.IsSet("metrics") {
		cfg.Metrics = cmd.Bool("metrics")
	}

	check := *r.config
	check.Server = cfg
	if err := check.Validate(); err != nil {
		return err
	}

	opts := server.ServerOpts{Logger: shared.WithLogger(r.logger, "component", "server")}
	if cfg.Docs {
		opts.Docs = server.OpenAPIDocs{Title: "siren", Version: version}
	}
	if cfg.Metrics {
		opts.Metrics = server.NewMetrics()
	}

	srv := server.New(cfg, r.catalog, opts)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("starting proxy", "addr", srv.Addr(), "remote", r.config.Remote.BaseURL, "docs", cfg.Docs, "metrics", cfg.Metrics)
	return srv.ListenAndServe(ctx)
}
