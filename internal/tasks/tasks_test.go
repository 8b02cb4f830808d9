package tasks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/desertthunder/siren/internal/models"
	"github.com/desertthunder/siren/internal/shared"
	tu "github.com/desertthunder/siren/internal/testing"
)

// newsPages serves items 1..total in pages of size, newest cursor first.
func newsPages(total, size int, cursors *[]string) func(ctx context.Context, lastCID string) (*models.NewsListResponse, error) {
	var mu sync.Mutex
	return func(ctx context.Context, lastCID string) (*models.NewsListResponse, error) {
		mu.Lock()
		*cursors = append(*cursors, lastCID)
		mu.Unlock()

		start := 1
		if lastCID != "" {
			n, _ := strconv.Atoi(lastCID)
			start = n + 1
		}

		var list []models.NewsItem
		for i := start; i < start+size && i <= total; i++ {
			list = append(list, models.NewsItem{ID: strconv.Itoa(i), Title: fmt.Sprintf("news %d", i)})
		}
		env := models.Success(models.NewsList{List: list, End: start+size > total})
		return &env, nil
	}
}

func fastExporter(catalog *tu.MockCatalog) *Exporter {
	return NewExporter(catalog, ExportOpts{RateLimit: 1000})
}

func TestWalkNews(t *testing.T) {
	t.Run("Follows Cursor Until End", func(t *testing.T) {
		var cursors []string
		catalog := &tu.MockCatalog{ListNewsFunc: newsPages(7, 3, &cursors)}

		var got []string
		err := fastExporter(catalog).WalkNews(context.Background(), "", nil, func(items []models.NewsItem) error {
			for _, item := range items {
				got = append(got, item.ID)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(got) != 7 || got[6] != "7" {
			t.Errorf("expected items 1..7, got %v", got)
		}
		want := []string{"", "3", "6"}
		if fmt.Sprint(cursors) != fmt.Sprint(want) {
			t.Errorf("expected cursors %v, got %v", want, cursors)
		}
	})

	t.Run("Uses Search With Keyword", func(t *testing.T) {
		var gotKeyword string
		catalog := &tu.MockCatalog{
			SearchNewsFunc: func(ctx context.Context, keyword, lastCID string) (*models.NewsListResponse, error) {
				gotKeyword = keyword
				env := models.Success(models.NewsList{List: []models.NewsItem{{ID: "1"}}, End: true})
				return &env, nil
			},
		}

		err := fastExporter(catalog).WalkNews(context.Background(), "ark", nil, func([]models.NewsItem) error { return nil })
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotKeyword != "ark" {
			t.Errorf("expected keyword ark, got %q", gotKeyword)
		}
		if calls := catalog.Calls(); len(calls) != 1 || calls[0] != "SearchNews" {
			t.Errorf("expected a single SearchNews call, got %v", calls)
		}
	})

	t.Run("Stops On Empty Page", func(t *testing.T) {
		catalog := &tu.MockCatalog{}
		calls := 0
		err := fastExporter(catalog).WalkNews(context.Background(), "", nil, func([]models.NewsItem) error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if calls != 0 {
			t.Errorf("expected no pages, got %d", calls)
		}
	})

	t.Run("Stops On Repeated Cursor", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			ListNewsFunc: func(ctx context.Context, lastCID string) (*models.NewsListResponse, error) {
				env := models.Success(models.NewsList{List: []models.NewsItem{{ID: "same"}}})
				return &env, nil
			},
		}

		pages := 0
		err := fastExporter(catalog).WalkNews(context.Background(), "", nil, func([]models.NewsItem) error {
			pages++
			return nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if pages != 2 {
			t.Errorf("expected 2 pages before the cursor repeated, got %d", pages)
		}
	})

	t.Run("Respects Max Pages", func(t *testing.T) {
		var cursors []string
		catalog := &tu.MockCatalog{ListNewsFunc: newsPages(100, 2, &cursors)}
		e := NewExporter(catalog, ExportOpts{RateLimit: 1000, MaxPages: 3})

		if err := e.WalkNews(context.Background(), "", nil, func([]models.NewsItem) error { return nil }); err != nil {
			t.Fatal(err)
		}
		if len(cursors) != 3 {
			t.Errorf("expected 3 pages, got %d", len(cursors))
		}
	})

	t.Run("Rejected Envelope", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			ListNewsFunc: func(ctx context.Context, lastCID string) (*models.NewsListResponse, error) {
				env := models.Failure[models.NewsList]("denied")
				return &env, nil
			},
		}

		err := fastExporter(catalog).WalkNews(context.Background(), "", nil, func([]models.NewsItem) error { return nil })
		if !errors.Is(err, shared.ErrUpstreamRejected) {
			t.Errorf("expected ErrUpstreamRejected, got %v", err)
		}
	})

	t.Run("Upstream Error", func(t *testing.T) {
		catalog := &tu.MockCatalog{Err: shared.ErrRemoteUnavailable}
		err := fastExporter(catalog).WalkNews(context.Background(), "", nil, func([]models.NewsItem) error { return nil })
		if !errors.Is(err, shared.ErrRemoteUnavailable) {
			t.Errorf("expected ErrRemoteUnavailable, got %v", err)
		}
	})

	t.Run("Callback Error Stops Walk", func(t *testing.T) {
		var cursors []string
		catalog := &tu.MockCatalog{ListNewsFunc: newsPages(10, 2, &cursors)}
		stop := errors.New("stop")

		err := fastExporter(catalog).WalkNews(context.Background(), "", nil, func([]models.NewsItem) error { return stop })
		if !errors.Is(err, stop) {
			t.Errorf("expected callback error, got %v", err)
		}
		if len(cursors) != 1 {
			t.Errorf("expected a single fetch, got %d", len(cursors))
		}
	})

	t.Run("Canceled Context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := fastExporter(&tu.MockCatalog{}).WalkNews(ctx, "", nil, func([]models.NewsItem) error { return nil })
		if err == nil {
			t.Error("expected error for canceled context")
		}
	})

	t.Run("Progress Updates", func(t *testing.T) {
		var cursors []string
		catalog := &tu.MockCatalog{ListNewsFunc: newsPages(4, 2, &cursors)}
		progress := make(chan ProgressUpdate, 10)

		if err := fastExporter(catalog).WalkNews(context.Background(), "", progress, func([]models.NewsItem) error { return nil }); err != nil {
			t.Fatal(err)
		}
		close(progress)

		var phases []string
		for u := range progress {
			phases = append(phases, u.Phase.String())
		}
		if len(phases) != 2 || phases[0] != "fetch_page" {
			t.Errorf("expected two page updates, got %v", phases)
		}
	})
}

func TestWalkAlbumSearch(t *testing.T) {
	t.Run("Requires Keyword", func(t *testing.T) {
		err := fastExporter(&tu.MockCatalog{}).WalkAlbumSearch(context.Background(), "", nil, func([]models.SearchAlbumItem) error { return nil })
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Passes Cursor", func(t *testing.T) {
		var cursors []string
		catalog := &tu.MockCatalog{
			SearchAlbumsFunc: func(ctx context.Context, keyword, lastCID string) (*models.SearchAlbumResponse, error) {
				cursors = append(cursors, lastCID)
				if lastCID == "" {
					env := models.Success(models.SearchAlbumResult{List: []models.SearchAlbumItem{{ID: "a"}, {ID: "b"}}})
					return &env, nil
				}
				env := models.Success(models.SearchAlbumResult{List: []models.SearchAlbumItem{{ID: "c"}}, End: true})
				return &env, nil
			},
		}

		var got []string
		err := fastExporter(catalog).WalkAlbumSearch(context.Background(), "x", nil, func(items []models.SearchAlbumItem) error {
			for _, item := range items {
				got = append(got, item.ID)
			}
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if fmt.Sprint(got) != "[a b c]" || fmt.Sprint(cursors) != "[ b]" {
			t.Errorf("unexpected walk: items %v cursors %q", got, cursors)
		}
	})
}

func TestExport(t *testing.T) {
	t.Run("News With Details", func(t *testing.T) {
		var cursors []string
		catalog := &tu.MockCatalog{
			ListNewsFunc: newsPages(5, 2, &cursors),
			GetNewsDetailFunc: func(ctx context.Context, cid string) (*models.NewsDetailResponse, error) {
				if cid == "3" {
					return nil, shared.ErrRemoteTimeout
				}
				env := models.Success(models.NewsDetail{ID: cid, Content: "<p>" + cid + "</p>"})
				return &env, nil
			},
		}

		result, err := fastExporter(catalog).ExportNews(context.Background(), "", true, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(result.Items) != 5 {
			t.Errorf("expected 5 items, got %d", len(result.Items))
		}
		if len(result.Details) != 4 {
			t.Fatalf("expected 4 details, got %d", len(result.Details))
		}
		for i, want := range []string{"1", "2", "4", "5"} {
			if result.Details[i].ID != want {
				t.Errorf("expected detail %d to be %s, got %s", i, want, result.Details[i].ID)
			}
		}
		if len(result.Failed) != 1 || result.Failed[0].ID != "3" || !errors.Is(result.Failed[0].Error, shared.ErrRemoteTimeout) {
			t.Errorf("unexpected failures %+v", result.Failed)
		}
	})

	t.Run("News Without Details", func(t *testing.T) {
		var cursors []string
		catalog := &tu.MockCatalog{ListNewsFunc: newsPages(3, 5, &cursors)}

		result, err := fastExporter(catalog).ExportNews(context.Background(), "", false, nil)
		if err != nil {
			t.Fatal(err)
		}
		for _, call := range catalog.Calls() {
			if call == "GetNewsDetail" {
				t.Error("expected no detail calls")
			}
		}
		if len(result.Details) != 0 {
			t.Errorf("expected no details, got %d", len(result.Details))
		}
	})

	t.Run("Album Catalog", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			ListAlbumsFunc: func(ctx context.Context) (*models.AlbumListResponse, error) {
				env := models.Success([]models.AlbumListItem{{ID: "1", Name: "One", Artists: []string{"A"}}, {ID: "2", Name: "Two"}})
				return &env, nil
			},
			GetAlbumDetailFunc: func(ctx context.Context, cid string) (*models.AlbumDetailResponse, error) {
				env := models.Success(models.AlbumDetail{ID: cid, Songs: []models.AlbumDetailSong{{ID: cid + "-1"}}})
				return &env, nil
			},
		}

		result, err := fastExporter(catalog).ExportAlbums(context.Background(), "", true, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(result.Items) != 2 || result.Items[0].Name != "One" || result.Items[0].Artists[0] != "A" {
			t.Errorf("unexpected items %+v", result.Items)
		}
		if len(result.Details) != 2 || result.Details[1].Songs[0].ID != "2-1" {
			t.Errorf("unexpected details %+v", result.Details)
		}
	})

	t.Run("Album Search", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			SearchAlbumsFunc: func(ctx context.Context, keyword, lastCID string) (*models.SearchAlbumResponse, error) {
				env := models.Success(models.SearchAlbumResult{List: []models.SearchAlbumItem{{ID: "s1", Belong: "arknights"}}, End: true})
				return &env, nil
			},
		}

		result, err := fastExporter(catalog).ExportAlbums(context.Background(), "wish", false, nil)
		if err != nil {
			t.Fatal(err)
		}
		if result.Keyword != "wish" || len(result.Items) != 1 || result.Items[0].Belong != "arknights" {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("Album Catalog Rejected", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			ListAlbumsFunc: func(ctx context.Context) (*models.AlbumListResponse, error) {
				env := models.Failure[[]models.AlbumListItem]("nope")
				return &env, nil
			},
		}

		_, err := fastExporter(catalog).ExportAlbums(context.Background(), "", false, nil)
		if !errors.Is(err, shared.ErrUpstreamRejected) {
			t.Errorf("expected ErrUpstreamRejected, got %v", err)
		}
	})
}

func TestNewExporter(t *testing.T) {
	e := NewExporter(&tu.MockCatalog{}, ExportOpts{NumWorkers: 50})
	if e.workers != maxWorkers {
		t.Errorf("expected workers capped at %d, got %d", maxWorkers, e.workers)
	}
	if float64(e.limiter.Limit()) != defaultRateLimit || e.limiter.Burst() != 1 {
		t.Errorf("unexpected limiter %v/%d", e.limiter.Limit(), e.limiter.Burst())
	}
}
