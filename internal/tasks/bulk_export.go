package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/siren/internal/formatter"
	"github.com/desertthunder/siren/internal/models"
)

// DetailFailure records a detail fetch that did not succeed.
type DetailFailure struct {
	ID    string
	Error error
}

// NewsExport is the result of [Exporter.ExportNews].
type NewsExport struct {
	Keyword string
	Items   []models.NewsItem
	Details []models.NewsDetail // In Items order, only when details were requested
	Failed  []DetailFailure
}

// AlbumExport is the result of [Exporter.ExportAlbums].
type AlbumExport struct {
	Keyword string
	Items   []models.SearchAlbumItem
	Details []models.AlbumDetail // In Items order, only when details were requested
	Failed  []DetailFailure
}

// ExportNews collects every news item (or every news hit for keyword) and optionally each article.
func (e *Exporter) ExportNews(ctx context.Context, keyword string, withDetails bool, progress chan<- ProgressUpdate) (*NewsExport, error) {
	result := &NewsExport{Keyword: keyword}

	err := e.WalkNews(ctx, keyword, progress, func(items []models.NewsItem) error {
		result.Items = append(result.Items, items...)
		return nil
	})
	if err != nil {
		return result, err
	}

	if withDetails {
		ids := make([]string, len(result.Items))
		for i, item := range result.Items {
			ids[i] = item.ID
		}
		result.Details, result.Failed = fetchDetails(ctx, e, progress, ids, func(ctx context.Context, id string) (models.NewsDetail, error) {
			env, err := e.catalog.GetNewsDetail(ctx, id)
			if err != nil {
				return models.NewsDetail{}, err
			}
			return env.Data, checkEnvelope(env.Code, env.Message)
		})
	}

	e.sendProgress(progress, exportCompletedUpdate(len(result.Items), len(result.Failed)))
	return result, ctx.Err()
}

// ExportAlbums collects album hits for keyword, or the whole album catalog when keyword is blank, and
// optionally each album's track listing.
func (e *Exporter) ExportAlbums(ctx context.Context, keyword string, withDetails bool, progress chan<- ProgressUpdate) (*AlbumExport, error) {
	result := &AlbumExport{Keyword: keyword}

	if keyword == "" {
		if err := e.limiter.Wait(ctx); err != nil {
			return result, err
		}
		e.sendProgress(progress, fetchPageUpdate("albums", 1, ""))
		env, err := e.catalog.ListAlbums(ctx)
		if err != nil {
			return result, fmt.Errorf("failed to fetch albums: %w", err)
		}
		if err := checkEnvelope(env.Code, env.Message); err != nil {
			return result, err
		}
		result.Items = formatter.AlbumListToItems(env.Data)
	} else {
		err := e.WalkAlbumSearch(ctx, keyword, progress, func(items []models.SearchAlbumItem) error {
			result.Items = append(result.Items, items...)
			return nil
		})
		if err != nil {
			return result, err
		}
	}

	if withDetails {
		ids := make([]string, len(result.Items))
		for i, item := range result.Items {
			ids[i] = item.ID
		}
		result.Details, result.Failed = fetchDetails(ctx, e, progress, ids, func(ctx context.Context, id string) (models.AlbumDetail, error) {
			env, err := e.catalog.GetAlbumDetail(ctx, id)
			if err != nil {
				return models.AlbumDetail{}, err
			}
			return env.Data, checkEnvelope(env.Code, env.Message)
		})
	}

	e.sendProgress(progress, exportCompletedUpdate(len(result.Items), len(result.Failed)))
	return result, ctx.Err()
}

type detailResult[T any] struct {
	index int
	value T
	err   error
}

// fetchDetails runs get for every id on a worker pool. Successful values keep the order of ids.
func fetchDetails[T any](
	ctx context.Context,
	e *Exporter,
	progress chan<- ProgressUpdate,
	ids []string,
	get func(ctx context.Context, id string) (T, error),
) ([]T, []DetailFailure) {
	jobs := make(chan int, len(ids))
	results := make(chan detailResult[T], len(ids))

	var wg sync.WaitGroup
	for range min(e.workers, max(len(ids), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := e.limiter.Wait(ctx); err != nil {
					results <- detailResult[T]{index: i, err: err}
					continue
				}
				v, err := get(ctx, ids[i])
				results <- detailResult[T]{index: i, value: v, err: err}
			}
		}()
	}

	for i := range ids {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	values := make([]T, len(ids))
	ok := make([]bool, len(ids))
	var failed []DetailFailure
	completed := 0
	for res := range results {
		completed++
		if res.err != nil {
			failed = append(failed, DetailFailure{ID: ids[res.index], Error: res.err})
			e.sendProgress(progress, detailFailedUpdate(completed, len(ids), ids[res.index], res.err))
			continue
		}
		values[res.index] = res.value
		ok[res.index] = true
		e.sendProgress(progress, detailFetchedUpdate(completed, len(ids), ids[res.index]))
	}

	details := make([]T, 0, len(ids)-len(failed))
	for i, v := range values {
		if ok[i] {
			details = append(details, v)
		}
	}
	return details, failed
}
