// Monster Siren API [Catalog] implementation
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/siren/internal/models"
	"github.com/desertthunder/siren/internal/shared"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "siren/0.1.0"
)

var _ Catalog = (*SirenService)(nil)
var _ RawFetcher = (*SirenService)(nil)

// SirenService talks to the Monster Siren API.
//
// It is read-only after construction and safe for concurrent use.
type SirenService struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *log.Logger
}

// SirenOpts contains optional settings for [NewSirenService].
type SirenOpts struct {
	Timeout    time.Duration // Per-call deadline, default 30s. Ignored when HTTPClient is set.
	HTTPClient *http.Client
	UserAgent  string
	Logger     *log.Logger
}

// NewSirenService creates a client for the API rooted at baseURL.
//
// An empty baseURL selects the official endpoint. Trailing slashes are stripped so that path joins never
// produce a doubled or missing separator.
func NewSirenService(baseURL string, opts SirenOpts) (*SirenService, error) {
	if baseURL == "" {
		baseURL = shared.DefaultRemoteBase
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid base URL: %v", shared.ErrInvalidConfig, err)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &SirenService{
		baseURL:    baseURL,
		userAgent:  opts.UserAgent,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}, nil
}

// BaseURL returns the normalized API root.
func (s *SirenService) BaseURL() string {
	return s.baseURL
}

// URL builds the absolute request URL for path and query.
func (s *SirenService) URL(path string, query ...Param) string {
	u := s.baseURL + "/" + strings.TrimLeft(path, "/")
	if q := encodeQuery(query); q != "" {
		u += "?" + q
	}
	return u
}

// get sends a GET, requires a 2xx status and decodes the JSON body into out.
func (s *SirenService) get(ctx context.Context, path string, query []Param, out any) error {
	fullURL := s.URL(path, query...)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Debug("upstream request failed", "url", fullURL, "duration", time.Since(start), "error", err)
		return newTransportError(fullURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Debug("upstream body read failed", "url", fullURL, "duration", time.Since(start), "error", err)
		return newTransportError(fullURL, err)
	}

	s.logger.Debug("upstream request", "url", fullURL, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RemoteError{URL: fullURL, Status: resp.StatusCode}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{URL: fullURL, Err: err}
	}

	return nil
}

func fetch[T any](ctx context.Context, s *SirenService, path string, query ...Param) (*models.Envelope[T], error) {
	var out models.Envelope[T]
	if err := s.get(ctx, path, query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSong retrieves a song with its media URLs.
//
// Calls GET /song/{cid}.
func (s *SirenService) GetSong(ctx context.Context, cid string) (*models.SongResponse, error) {
	return fetch[models.Song](ctx, s, "song/"+url.PathEscape(cid))
}

// ListSongs retrieves the song catalog.
//
// Calls GET /songs.
func (s *SirenService) ListSongs(ctx context.Context) (*models.SongListResponse, error) {
	return fetch[models.SongList](ctx, s, "songs")
}

// GetAlbum retrieves album metadata.
//
// Calls GET /album/{cid}/data.
func (s *SirenService) GetAlbum(ctx context.Context, cid string) (*models.AlbumResponse, error) {
	return fetch[models.Album](ctx, s, "album/"+url.PathEscape(cid)+"/data")
}

// GetAlbumDetail retrieves an album with its track listing.
//
// Calls GET /album/{cid}/detail.
func (s *SirenService) GetAlbumDetail(ctx context.Context, cid string) (*models.AlbumDetailResponse, error) {
	return fetch[models.AlbumDetail](ctx, s, "album/"+url.PathEscape(cid)+"/detail")
}

// ListAlbums retrieves the album catalog. The payload is a bare list.
//
// Calls GET /albums.
func (s *SirenService) ListAlbums(ctx context.Context) (*models.AlbumListResponse, error) {
	return fetch[[]models.AlbumListItem](ctx, s, "albums")
}

// Search runs the combined album and news search.
//
// Calls GET /search?keyword=.
func (s *SirenService) Search(ctx context.Context, keyword string) (*models.SearchResponse, error) {
	if err := requireKeyword(keyword); err != nil {
		return nil, err
	}
	return fetch[models.SearchResult](ctx, s, "search", Param{"keyword", keyword})
}

// SearchAlbums retrieves one page of album hits after lastCID.
//
// Calls GET /search/album?keyword=&lastCid=.
func (s *SirenService) SearchAlbums(ctx context.Context, keyword, lastCID string) (*models.SearchAlbumResponse, error) {
	if err := requireKeyword(keyword); err != nil {
		return nil, err
	}
	return fetch[models.SearchAlbumResult](ctx, s, "search/album", Param{"keyword", keyword}, Param{"lastCid", lastCID})
}

// SearchNews retrieves one page of news hits after lastCID.
//
// Calls GET /search/news?keyword=&lastCid=.
func (s *SirenService) SearchNews(ctx context.Context, keyword, lastCID string) (*models.NewsListResponse, error) {
	if err := requireKeyword(keyword); err != nil {
		return nil, err
	}
	return fetch[models.NewsList](ctx, s, "search/news", Param{"keyword", keyword}, Param{"lastCid", lastCID})
}

// ListNews retrieves one page of news after lastCID.
//
// Calls GET /news?lastCid=.
func (s *SirenService) ListNews(ctx context.Context, lastCID string) (*models.NewsListResponse, error) {
	return fetch[models.NewsList](ctx, s, "news", Param{"lastCid", lastCID})
}

// GetNewsDetail retrieves a full news article.
//
// Calls GET /news/{cid}.
func (s *SirenService) GetNewsDetail(ctx context.Context, cid string) (*models.NewsDetailResponse, error) {
	return fetch[models.NewsDetail](ctx, s, "news/"+url.PathEscape(cid))
}

// GetFontSet retrieves the site font configuration.
//
// Calls GET /fontset.
func (s *SirenService) GetFontSet(ctx context.Context) (*models.FontSetResponse, error) {
	return fetch[models.FontFaceSet](ctx, s, "fontset")
}

// Raw retrieves any path below the API root and returns the body as validated JSON.
func (s *SirenService) Raw(ctx context.Context, path string, query ...Param) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.get(ctx, path, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func requireKeyword(keyword string) error {
	if strings.TrimSpace(keyword) == "" {
		return shared.BadRequestf("missing required query parameter: keyword")
	}
	return nil
}

// encodeQuery escapes params in their declared order, skipping empty values.
func encodeQuery(params []Param) string {
	var b strings.Builder
	for _, p := range params {
		if p.Value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
