// package models defines the envelope and payload types of the Monster Siren API
package models

// Envelope is the uniform wrapper around every upstream response.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
	Data    T      `json:"data"`
}

// Success wraps data in an envelope with code 0.
func Success[T any](data T) Envelope[T] {
	return Envelope[T]{Code: 0, Data: data}
}

// Failure builds a locally synthesized error envelope with code -1 and a zero payload.
func Failure[T any](msg string) Envelope[T] {
	var zero T
	return Envelope[T]{Code: -1, Message: msg, Data: zero}
}

// OK reports whether the envelope carries a successful payload.
func (e Envelope[T]) OK() bool {
	return e.Code == 0
}

type (
	SongResponse        = Envelope[Song]
	SongListResponse    = Envelope[SongList]
	AlbumResponse       = Envelope[Album]
	AlbumDetailResponse = Envelope[AlbumDetail]
	AlbumListResponse   = Envelope[[]AlbumListItem] // data is a bare array upstream
	SearchResponse      = Envelope[SearchResult]
	SearchAlbumResponse = Envelope[SearchAlbumResult]
	NewsListResponse    = Envelope[NewsList]
	NewsDetailResponse  = Envelope[NewsDetail]
	FontSetResponse     = Envelope[FontFaceSet]
)
