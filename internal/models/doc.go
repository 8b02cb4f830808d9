// Package models defines the wire types exchanged with the Monster Siren API.
//
// Every upstream response is wrapped in an [Envelope] carrying a status code, a message and a typed payload:
//
//	{"code": 0, "msg": "", "data": {...}}
//
// A code of 0 means success. Any other value is a failure, and -1 is used for envelopes synthesized locally
// (see [Failure]). The payload is only meaningful when [Envelope.OK] reports true.
//
// # Wire names
//
// Field names follow the upstream exactly, including its inconsistencies. Songs list their performers under
// "artists" while albums use "artistes". Both map to a single Go field named Artists, and the struct tags keep
// the upstream spelling so that a decode followed by an encode reproduces the original document.
//
// Optional song URLs are pointers so that a null or missing value survives a round trip as null.
//
// # Payloads
//
//   - Songs: [Song], [SongList] of [SongListItem]
//   - Albums: [Album], [AlbumDetail] of [AlbumDetailSong], and the bare list of [AlbumListItem]
//   - News: [NewsList] of [NewsItem], [NewsDetail]
//   - Search: [SearchResult] combining [SearchAlbumResult] and [NewsList]
//   - Fonts: [FontFaceSet] of two [FontFace] families
//
// The album list is the one endpoint whose data is a JSON array rather than an object. [AlbumListResponse]
// keeps that shape instead of wrapping it.
package models
