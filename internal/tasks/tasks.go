// package tasks implements long-running catalog operations for the CLI.
//
// The core abstraction is Exporter, which walks the paginated news and album-search listings and fetches
// details in bulk. Operations emit progress updates via channels for non-blocking status reporting.
package tasks

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/siren/internal/models"
	"github.com/desertthunder/siren/internal/services"
	"github.com/desertthunder/siren/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultRateLimit = 2.0
	defaultWorkers   = 4
	maxWorkers       = 10
)

// ExportOpts contains configuration for an [Exporter].
type ExportOpts struct {
	RateLimit  float64 // Upstream requests per second (default: 2)
	NumWorkers int     // Concurrent detail fetchers (default: 4, max: 10)
	MaxPages   int     // Stop after this many pages; zero means no limit
	Logger     *log.Logger
}

// Exporter walks catalog listings while pacing every upstream call through one limiter.
//
// All calls share the limiter, so concurrent detail fetches never exceed the configured rate.
type Exporter struct {
	catalog  services.Catalog
	limiter  *rate.Limiter
	workers  int
	maxPages int
	logger   *log.Logger
}

// NewExporter creates an [Exporter] over catalog.
func NewExporter(catalog services.Catalog, opts ExportOpts) *Exporter {
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Exporter{
		catalog:  catalog,
		limiter:  rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		workers:  opts.NumWorkers,
		maxPages: opts.MaxPages,
		logger:   opts.Logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Exporter) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// WalkNews calls fn with every page of news, following the lastCid cursor.
//
// A blank keyword walks the news feed; otherwise the news search results are walked.
func (e *Exporter) WalkNews(ctx context.Context, keyword string, progress chan<- ProgressUpdate, fn func([]models.NewsItem) error) error {
	fetch := func(ctx context.Context, cursor string) (*models.NewsListResponse, error) {
		if keyword == "" {
			return e.catalog.ListNews(ctx, cursor)
		}
		return e.catalog.SearchNews(ctx, keyword, cursor)
	}

	return walk(ctx, e, progress, "news", fn,
		func(ctx context.Context, cursor string) ([]models.NewsItem, bool, error) {
			env, err := fetch(ctx, cursor)
			if err != nil {
				return nil, false, err
			}
			if err := checkEnvelope(env.Code, env.Message); err != nil {
				return nil, false, err
			}
			return env.Data.List, env.Data.End, nil
		},
		func(item models.NewsItem) string { return item.ID },
	)
}

// WalkAlbumSearch calls fn with every page of album hits for keyword, following the lastCid cursor.
func (e *Exporter) WalkAlbumSearch(ctx context.Context, keyword string, progress chan<- ProgressUpdate, fn func([]models.SearchAlbumItem) error) error {
	if keyword == "" {
		return fmt.Errorf("%w: album search needs a keyword", shared.ErrMissingArgument)
	}

	return walk(ctx, e, progress, "albums", fn,
		func(ctx context.Context, cursor string) ([]models.SearchAlbumItem, bool, error) {
			env, err := e.catalog.SearchAlbums(ctx, keyword, cursor)
			if err != nil {
				return nil, false, err
			}
			if err := checkEnvelope(env.Code, env.Message); err != nil {
				return nil, false, err
			}
			return env.Data.List, env.Data.End, nil
		},
		func(item models.SearchAlbumItem) string { return item.ID },
	)
}

// walk drives a cursor listing until the page reports end, comes back empty, repeats the cursor or the page
// limit is hit.
func walk[T any](
	ctx context.Context,
	e *Exporter,
	progress chan<- ProgressUpdate,
	label string,
	fn func([]T) error,
	fetch func(ctx context.Context, cursor string) ([]T, bool, error),
	cid func(T) string,
) error {
	cursor := ""
	for page := 1; ; page++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return err
		}

		e.sendProgress(progress, fetchPageUpdate(label, page, cursor))
		items, end, err := fetch(ctx, cursor)
		if err != nil {
			return fmt.Errorf("failed to fetch %s page %d: %w", label, page, err)
		}
		e.logger.Debug("fetched page", "listing", label, "page", page, "cursor", cursor, "items", len(items), "end", end)

		if len(items) == 0 {
			return nil
		}
		if err := fn(items); err != nil {
			return err
		}

		next := cid(items[len(items)-1])
		switch {
		case end:
			return nil
		case next == "" || next == cursor:
			e.logger.Warn("cursor did not advance, stopping", "listing", label, "cursor", cursor)
			return nil
		case e.maxPages > 0 && page >= e.maxPages:
			return nil
		}
		cursor = next
	}
}

func checkEnvelope(code int, msg string) error {
	if code != 0 {
		return fmt.Errorf("%w: code %d: %s", shared.ErrUpstreamRejected, code, msg)
	}
	return nil
}
