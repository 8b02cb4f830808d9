// package services defines interface Catalog for reading the Monster Siren API
package services

import (
	"context"
	"encoding/json"

	"github.com/desertthunder/siren/internal/models"
)

// Catalog defines the read operations offered by the Monster Siren API.
//
// Every method issues exactly one upstream request and returns the decoded envelope verbatim.
// Optional lastCID cursors are omitted from the request when empty.
type Catalog interface {
	GetSong(ctx context.Context, cid string) (*models.SongResponse, error)
	ListSongs(ctx context.Context) (*models.SongListResponse, error)
	GetAlbum(ctx context.Context, cid string) (*models.AlbumResponse, error)
	GetAlbumDetail(ctx context.Context, cid string) (*models.AlbumDetailResponse, error)
	ListAlbums(ctx context.Context) (*models.AlbumListResponse, error)
	Search(ctx context.Context, keyword string) (*models.SearchResponse, error)
	SearchAlbums(ctx context.Context, keyword, lastCID string) (*models.SearchAlbumResponse, error)
	SearchNews(ctx context.Context, keyword, lastCID string) (*models.NewsListResponse, error)
	ListNews(ctx context.Context, lastCID string) (*models.NewsListResponse, error)
	GetNewsDetail(ctx context.Context, cid string) (*models.NewsDetailResponse, error)
	GetFontSet(ctx context.Context) (*models.FontSetResponse, error)
}

// RawFetcher fetches an arbitrary upstream path without decoding it into a payload type.
type RawFetcher interface {
	Raw(ctx context.Context, path string, query ...Param) (json.RawMessage, error)
}

// Param is a single query parameter. Params with an empty Value are not sent.
type Param struct {
	Name  string
	Value string
}
