// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/desertthunder/siren/internal/models"
)

// MockCatalog is a test double for [services.Catalog].
//
// Each Func field, when set, answers the matching call. Unset fields return an empty successful envelope.
// Err, when set, is returned by every call that has no Func.
type MockCatalog struct {
	GetSongFunc        func(ctx context.Context, cid string) (*models.SongResponse, error)
	ListSongsFunc      func(ctx context.Context) (*models.SongListResponse, error)
	GetAlbumFunc       func(ctx context.Context, cid string) (*models.AlbumResponse, error)
	GetAlbumDetailFunc func(ctx context.Context, cid string) (*models.AlbumDetailResponse, error)
	ListAlbumsFunc     func(ctx context.Context) (*models.AlbumListResponse, error)
	SearchFunc         func(ctx context.Context, keyword string) (*models.SearchResponse, error)
	SearchAlbumsFunc   func(ctx context.Context, keyword, lastCID string) (*models.SearchAlbumResponse, error)
	SearchNewsFunc     func(ctx context.Context, keyword, lastCID string) (*models.NewsListResponse, error)
	ListNewsFunc       func(ctx context.Context, lastCID string) (*models.NewsListResponse, error)
	GetNewsDetailFunc  func(ctx context.Context, cid string) (*models.NewsDetailResponse, error)
	GetFontSetFunc     func(ctx context.Context) (*models.FontSetResponse, error)
	Err                error

	mu    sync.Mutex
	calls []string
}

func (m *MockCatalog) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

// Calls returns the names of the methods invoked so far, in order.
func (m *MockCatalog) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func answer[T any](m *MockCatalog) (*models.Envelope[T], error) {
	if m.Err != nil {
		return nil, m.Err
	}
	env := models.Success(*new(T))
	return &env, nil
}

func (m *MockCatalog) GetSong(ctx context.Context, cid string) (*models.SongResponse, error) {
	m.record("GetSong")
	if m.GetSongFunc != nil {
		return m.GetSongFunc(ctx, cid)
	}
	return answer[models.Song](m)
}

func (m *MockCatalog) ListSongs(ctx context.Context) (*models.SongListResponse, error) {
	m.record("ListSongs")
	if m.ListSongsFunc != nil {
		return m.ListSongsFunc(ctx)
	}
	return answer[models.SongList](m)
}

func (m *MockCatalog) GetAlbum(ctx context.Context, cid string) (*models.AlbumResponse, error) {
	m.record("GetAlbum")
	if m.GetAlbumFunc != nil {
		return m.GetAlbumFunc(ctx, cid)
	}
	return answer[models.Album](m)
}

func (m *MockCatalog) GetAlbumDetail(ctx context.Context, cid string) (*models.AlbumDetailResponse, error) {
	m.record("GetAlbumDetail")
	if m.GetAlbumDetailFunc != nil {
		return m.GetAlbumDetailFunc(ctx, cid)
	}
	return answer[models.AlbumDetail](m)
}

func (m *MockCatalog) ListAlbums(ctx context.Context) (*models.AlbumListResponse, error) {
	m.record("ListAlbums")
	if m.ListAlbumsFunc != nil {
		return m.ListAlbumsFunc(ctx)
	}
	return answer[[]models.AlbumListItem](m)
}

func (m *MockCatalog) Search(ctx context.Context, keyword string) (*models.SearchResponse, error) {
	m.record("Search")
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, keyword)
	}
	return answer[models.SearchResult](m)
}

func (m *MockCatalog) SearchAlbums(ctx context.Context, keyword, lastCID string) (*models.SearchAlbumResponse, error) {
	m.record("SearchAlbums")
	if m.SearchAlbumsFunc != nil {
		return m.SearchAlbumsFunc(ctx, keyword, lastCID)
	}
	return answer[models.SearchAlbumResult](m)
}

func (m *MockCatalog) SearchNews(ctx context.Context, keyword, lastCID string) (*models.NewsListResponse, error) {
	m.record("SearchNews")
	if m.SearchNewsFunc != nil {
		return m.SearchNewsFunc(ctx, keyword, lastCID)
	}
	return answer[models.NewsList](m)
}

func (m *MockCatalog) ListNews(ctx context.Context, lastCID string) (*models.NewsListResponse, error) {
	m.record("ListNews")
	if m.ListNewsFunc != nil {
		return m.ListNewsFunc(ctx, lastCID)
	}
	return answer[models.NewsList](m)
}

func (m *MockCatalog) GetNewsDetail(ctx context.Context, cid string) (*models.NewsDetailResponse, error) {
	m.record("GetNewsDetail")
	if m.GetNewsDetailFunc != nil {
		return m.GetNewsDetailFunc(ctx, cid)
	}
	return answer[models.NewsDetail](m)
}

func (m *MockCatalog) GetFontSet(ctx context.Context) (*models.FontSetResponse, error) {
	m.record("GetFontSet")
	if m.GetFontSetFunc != nil {
		return m.GetFontSetFunc(ctx)
	}
	return answer[models.FontFaceSet](m)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// TimeoutError is a [net.Error] that reports a timeout.
type TimeoutError struct{}

func (TimeoutError) Error() string   { return "i/o timeout" }
func (TimeoutError) Timeout() bool   { return true }
func (TimeoutError) Temporary() bool { return true }
