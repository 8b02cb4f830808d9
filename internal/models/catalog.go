package models

// Song is a single track with its media URLs.
type Song struct {
	ID         string   `json:"cid"`
	Name       string   `json:"name"`
	AlbumID    string   `json:"albumCid"`
	SourceURL  *string  `json:"sourceUrl"`
	LyricURL   *string  `json:"lyricUrl"`
	MVURL      *string  `json:"mvUrl"`
	MVCoverURL *string  `json:"mvCoverUrl"`
	Artists    []string `json:"artists"`
}

// SongListItem is the reduced song returned by the song listing.
type SongListItem struct {
	ID      string   `json:"cid"`
	Name    string   `json:"name"`
	AlbumID string   `json:"albumCid"`
	Artists []string `json:"artists"`
}

// SongList is the full song catalog. Autoplay names the default song.
type SongList struct {
	List     []SongListItem `json:"list"`
	Autoplay string         `json:"autoplay"`
}

// Album describes an album without its track listing.
type Album struct {
	ID         string   `json:"cid"`
	Name       string   `json:"name"`
	Intro      string   `json:"intro"`
	Belong     string   `json:"belong"`
	CoverURL   string   `json:"coverUrl"`
	CoverDeURL string   `json:"coverDeUrl"`
	Artists    []string `json:"artistes"`
}

// AlbumDetailSong is a track entry inside [AlbumDetail].
type AlbumDetailSong struct {
	ID      string   `json:"cid"`
	Name    string   `json:"name"`
	Artists []string `json:"artistes"`
}

// AlbumDetail is an album with its ordered track listing inline.
type AlbumDetail struct {
	ID         string            `json:"cid"`
	Name       string            `json:"name"`
	Intro      string            `json:"intro"`
	Belong     string            `json:"belong"`
	CoverURL   string            `json:"coverUrl"`
	CoverDeURL string            `json:"coverDeUrl"`
	Songs      []AlbumDetailSong `json:"songs"`
}

// AlbumListItem is an entry of the album catalog.
type AlbumListItem struct {
	ID       string   `json:"cid"`
	Name     string   `json:"name"`
	CoverURL string   `json:"coverUrl"`
	Artists  []string `json:"artistes"`
}

// SearchAlbumItem is an album hit from a search.
type SearchAlbumItem struct {
	ID       string   `json:"cid"`
	Name     string   `json:"name"`
	Belong   string   `json:"belong"`
	CoverURL string   `json:"coverUrl"`
	Artists  []string `json:"artistes"`
}

// SearchAlbumResult is one page of album hits. End is true on the last page.
type SearchAlbumResult struct {
	List []SearchAlbumItem `json:"list"`
	End  bool              `json:"end"`
}

// NewsItem is a news headline. Date is kept as the upstream string.
type NewsItem struct {
	ID       string `json:"cid"`
	Title    string `json:"title"`
	Category int    `json:"cate"`
	Date     string `json:"date"`
}

// NewsList is one page of news. End is true on the last page.
type NewsList struct {
	List []NewsItem `json:"list"`
	End  bool       `json:"end"`
}

// NewsDetail is a full news article.
type NewsDetail struct {
	ID       string `json:"cid"`
	Title    string `json:"title"`
	Category int    `json:"cate"`
	Author   string `json:"author"`
	Content  string `json:"content"`
	Date     string `json:"date"`
}

// SearchResult combines album and news hits from the combined search.
type SearchResult struct {
	Albums SearchAlbumResult `json:"albums"`
	News   NewsList          `json:"news"`
}

// FontFace holds the per-format URLs of one font family.
type FontFace struct {
	TrueType string `json:"tt"`
	EOT      string `json:"eot"`
	SVG      string `json:"svg"`
	WOFF     string `json:"woff"`
}

// FontFaceSet is the site font configuration.
type FontFaceSet struct {
	Regular FontFace `json:"Sans-Regular"`
	Bold    FontFace `json:"Sans-Bold"`
}
