package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/siren/internal/formatter"
	"github.com/desertthunder/siren/internal/shared"
	"github.com/desertthunder/siren/internal/tasks"
	"github.com/urfave/cli/v3"
)

func (r *Runner) exporter(cmd *cli.Command) *tasks.Exporter {
	return tasks.NewExporter(r.catalog, tasks.ExportOpts{
		RateLimit:  cmd.Float("rate"),
		NumWorkers: int(cmd.Int("workers")),
		MaxPages:   int(cmd.Int("max-pages")),
		Logger:     shared.WithLogger(r.logger, "component", "export"),
	})
}

// trackProgress prints updates until the returned stop func is called.
//
// Progress is only shown when the export goes to a file so it never mixes with data on stdout.
func (r *Runner) trackProgress(cmd *cli.Command) (chan<- tasks.ProgressUpdate, func()) {
	if cmd.String("output") == "" {
		return nil, func() {}
	}

	progress := make(chan tasks.ProgressUpdate, 32)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			switch update.Phase {
			case tasks.FetchDetails:
				if _, failed := update.Data.(error); failed {
					r.writePlain("%s\n", r.palette.Warn("%s", update.Message))
					continue
				}
				r.writePlain("%s\n", r.palette.Step(update.Step, update.Total, update.Message))
			case tasks.ExportDone:
				r.writePlain("%s\n", r.palette.OK("%s", update.Message))
			default:
				r.writePlain("%s\n", r.palette.Help("%s", update.Message))
			}
		}
	}()

	return progress, func() {
		close(progress)
		<-done
	}
}

// emit writes rendered data to --output, or to stdout when unset.
func (r *Runner) emit(cmd *cli.Command, data []byte, count int) error {
	path := cmd.String("output")
	if path == "" {
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := formatter.WriteFile(path, data); err != nil {
		return err
	}
	return r.writePlainln("%s", r.palette.OK("Exported %d items to %s", count, path))
}

// ExportNews walks the news listing, or news search hits for --keyword, and renders the result.
func (r *Runner) ExportNews(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	keyword := cmd.String("keyword")
	progress, stop := r.trackProgress(cmd)
	result, err := r.exporter(cmd).ExportNews(ctx, keyword, cmd.Bool("details"), progress)
	stop()
	if err != nil {
		return fmt.Errorf("news export failed: %w", err)
	}

	for _, f := range result.Failed {
		r.logger.Warn("news detail skipped", "cid", f.ID, "error", f.Error)
	}

	title := "News"
	if keyword != "" {
		title = fmt.Sprintf("News matching %q", keyword)
	}

	data, err := formatter.RenderNews(format, title, result.Items, result.Details)
	if err != nil {
		return err
	}
	return r.emit(cmd, data, len(result.Items))
}

// ExportAlbums exports the album catalog, or album search hits for --keyword, and renders the result.
func (r *Runner) ExportAlbums(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	keyword := cmd.String("keyword")
	progress, stop := r.trackProgress(cmd)
	result, err := r.exporter(cmd).ExportAlbums(ctx, keyword, cmd.Bool("details"), progress)
	stop()
	if err != nil {
		return fmt.Errorf("album export failed: %w", err)
	}

	for _, f := range result.Failed {
		r.logger.Warn("album detail skipped", "cid", f.ID, "error", f.Error)
	}

	title := "Albums"
	if keyword != "" {
		title = fmt.Sprintf("Albums matching %q", keyword)
	}

	data, err := formatter.RenderAlbums(format, title, result.Items, result.Details)
	if err != nil {
		return err
	}
	return r.emit(cmd, data, len(result.Items))
}
