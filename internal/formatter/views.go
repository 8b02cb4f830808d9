package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/desertthunder/siren/internal/models"
)

func optional(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

// SongToText renders a song with its media URLs.
func SongToText(s models.Song) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Song: %s\n", s.Name)
	fmt.Fprintf(&buf, "CID: %s\n", s.ID)
	fmt.Fprintf(&buf, "Album: %s\n", s.AlbumID)
	fmt.Fprintf(&buf, "Artists: %s\n", joinOr(s.Artists, "-"))
	fmt.Fprintf(&buf, "Source: %s\n", optional(s.SourceURL))
	fmt.Fprintf(&buf, "Lyrics: %s\n", optional(s.LyricURL))
	fmt.Fprintf(&buf, "MV: %s\n", optional(s.MVURL))
	fmt.Fprintf(&buf, "MV Cover: %s\n", optional(s.MVCoverURL))
	return buf.Bytes()
}

// SongListToText renders the song catalog.
func SongListToText(l models.SongList) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Songs: %d\n", len(l.List))
	if l.Autoplay != "" {
		fmt.Fprintf(&buf, "Autoplay: %s\n", l.Autoplay)
	}
	buf.WriteString("\n")
	for i, s := range l.List {
		fmt.Fprintf(&buf, "%d. [%s] %s - %s (album %s)\n", i+1, s.ID, joinOr(s.Artists, "Unknown"), s.Name, s.AlbumID)
	}
	return buf.Bytes()
}

// AlbumToText renders album metadata.
func AlbumToText(a models.Album) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Album: %s\n", a.Name)
	fmt.Fprintf(&buf, "CID: %s\n", a.ID)
	fmt.Fprintf(&buf, "Artists: %s\n", joinOr(a.Artists, "-"))
	fmt.Fprintf(&buf, "Belong: %s\n", a.Belong)
	fmt.Fprintf(&buf, "Cover: %s\n", a.CoverURL)
	if a.Intro != "" {
		fmt.Fprintf(&buf, "\n%s\n", a.Intro)
	}
	return buf.Bytes()
}

// AlbumDetailToText renders an album with its track listing.
func AlbumDetailToText(a models.AlbumDetail) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Album: %s\n", a.Name)
	fmt.Fprintf(&buf, "CID: %s\n", a.ID)
	fmt.Fprintf(&buf, "Belong: %s\n", a.Belong)
	fmt.Fprintf(&buf, "Cover: %s\n", a.CoverURL)
	if a.Intro != "" {
		fmt.Fprintf(&buf, "\n%s\n", a.Intro)
	}
	fmt.Fprintf(&buf, "\nTracks: %d\n", len(a.Songs))
	for i, s := range a.Songs {
		fmt.Fprintf(&buf, "%d. [%s] %s - %s\n", i+1, s.ID, joinOr(s.Artists, "Unknown"), s.Name)
	}
	return buf.Bytes()
}

// NewsDetailToText renders a news article. Content is printed as received.
func NewsDetailToText(n models.NewsDetail) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Title: %s\n", n.Title)
	fmt.Fprintf(&buf, "CID: %s\n", n.ID)
	fmt.Fprintf(&buf, "Date: %s\n", n.Date)
	fmt.Fprintf(&buf, "Category: %d\n", n.Category)
	if n.Author != "" {
		fmt.Fprintf(&buf, "Author: %s\n", n.Author)
	}
	fmt.Fprintf(&buf, "\n%s\n", n.Content)
	return buf.Bytes()
}

// NewsListToText renders one page of news, noting whether more pages follow.
func NewsListToText(l models.NewsList) []byte {
	var buf bytes.Buffer
	buf.Write(NewsToText(l.List))
	if !l.End && len(l.List) > 0 {
		fmt.Fprintf(&buf, "\nMore available: --last-cid %s\n", l.List[len(l.List)-1].ID)
	}
	return buf.Bytes()
}

// SearchAlbumResultToText renders one page of album hits, noting whether more pages follow.
func SearchAlbumResultToText(r models.SearchAlbumResult) []byte {
	var buf bytes.Buffer
	buf.Write(AlbumsToText(r.List))
	if !r.End && len(r.List) > 0 {
		fmt.Fprintf(&buf, "\nMore available: --last-cid %s\n", r.List[len(r.List)-1].ID)
	}
	return buf.Bytes()
}

// SearchResultToText renders the combined search.
func SearchResultToText(r models.SearchResult) []byte {
	var buf bytes.Buffer
	buf.Write(SearchAlbumResultToText(r.Albums))
	buf.WriteString("\n")
	buf.Write(NewsListToText(r.News))
	return buf.Bytes()
}

// FontSetToText renders the font URLs of both faces.
func FontSetToText(f models.FontFaceSet) []byte {
	var buf bytes.Buffer
	for _, face := range []struct {
		name string
		f    models.FontFace
	}{{"Sans-Regular", f.Regular}, {"Sans-Bold", f.Bold}} {
		fmt.Fprintf(&buf, "%s\n", face.name)
		fmt.Fprintf(&buf, "  tt:   %s\n", face.f.TrueType)
		fmt.Fprintf(&buf, "  eot:  %s\n", face.f.EOT)
		fmt.Fprintf(&buf, "  svg:  %s\n", face.f.SVG)
		fmt.Fprintf(&buf, "  woff: %s\n", face.f.WOFF)
	}
	return buf.Bytes()
}
