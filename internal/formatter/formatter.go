// package formatter renders catalog data as CSV, Markdown, plain text or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/siren/internal/models"
	"github.com/desertthunder/siren/internal/shared"
)

// Format names an export format.
type Format string

const (
	JSON     Format = "json"
	CSV      Format = "csv"
	Markdown Format = "markdown"
	Text     Format = "txt"
)

// ParseFormat validates a format name. Empty selects JSON and "md" is accepted for Markdown.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return JSON, nil
	case "md":
		return Markdown, nil
	case JSON, CSV, Markdown, Text:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want json, csv, markdown or txt)", shared.ErrInvalidFlag, name)
	}
}

// Ext returns the file extension used for f.
func (f Format) Ext() string {
	switch f {
	case Markdown:
		return ".md"
	case Text:
		return ".txt"
	case CSV:
		return ".csv"
	default:
		return ".json"
	}
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, record := range rows {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// AlbumsToCSV converts albums to CSV with columns: CID, Name, Belong, Artists, Cover
func AlbumsToCSV(albums []models.SearchAlbumItem) ([]byte, error) {
	rows := make([][]string, 0, len(albums))
	for _, a := range albums {
		rows = append(rows, []string{a.ID, a.Name, a.Belong, strings.Join(a.Artists, "; "), a.CoverURL})
	}
	return writeCSV([]string{"CID", "Name", "Belong", "Artists", "Cover"}, rows)
}

// NewsToCSV converts news items to CSV with columns: CID, Title, Category, Date
func NewsToCSV(items []models.NewsItem) ([]byte, error) {
	rows := make([][]string, 0, len(items))
	for _, n := range items {
		rows = append(rows, []string{n.ID, n.Title, strconv.Itoa(n.Category), n.Date})
	}
	return writeCSV([]string{"CID", "Title", "Category", "Date"}, rows)
}

// AlbumsToMarkdown renders albums as a Markdown document. Details, when given, add a track list per album.
func AlbumsToMarkdown(title string, albums []models.SearchAlbumItem, details []models.AlbumDetail) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Albums**: %d\n\n", len(albums))

	byID := make(map[string]models.AlbumDetail, len(details))
	for _, d := range details {
		byID[d.ID] = d
	}

	for _, a := range albums {
		fmt.Fprintf(&buf, "## %s\n\n", a.Name)
		if a.CoverURL != "" {
			fmt.Fprintf(&buf, "![Cover](%s)\n\n", a.CoverURL)
		}
		fmt.Fprintf(&buf, "- **CID**: %s\n", a.ID)
		if len(a.Artists) > 0 {
			fmt.Fprintf(&buf, "- **Artists**: %s\n", strings.Join(a.Artists, ", "))
		}
		if a.Belong != "" {
			fmt.Fprintf(&buf, "- **Belong**: %s\n", a.Belong)
		}

		if d, ok := byID[a.ID]; ok {
			if d.Intro != "" {
				fmt.Fprintf(&buf, "\n%s\n", d.Intro)
			}
			if len(d.Songs) > 0 {
				buf.WriteString("\n### Tracks\n\n")
				for i, s := range d.Songs {
					fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, strings.Join(s.Artists, ", "), s.Name)
				}
			}
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// NewsToMarkdown renders news as a Markdown document. Details, when given, add the article body.
func NewsToMarkdown(title string, items []models.NewsItem, details []models.NewsDetail) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Articles**: %d\n\n", len(items))

	byID := make(map[string]models.NewsDetail, len(details))
	for _, d := range details {
		byID[d.ID] = d
	}

	for _, n := range items {
		fmt.Fprintf(&buf, "## %s\n\n", n.Title)
		fmt.Fprintf(&buf, "- **CID**: %s\n- **Date**: %s\n- **Category**: %d\n", n.ID, n.Date, n.Category)
		if d, ok := byID[n.ID]; ok {
			if d.Author != "" {
				fmt.Fprintf(&buf, "- **Author**: %s\n", d.Author)
			}
			fmt.Fprintf(&buf, "\n%s\n", d.Content)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// AlbumsToText renders albums as a numbered list.
func AlbumsToText(albums []models.SearchAlbumItem) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Albums: %d\n\n", len(albums))
	for i, a := range albums {
		fmt.Fprintf(&buf, "%d. [%s] %s", i+1, a.ID, a.Name)
		if len(a.Artists) > 0 {
			fmt.Fprintf(&buf, " - %s", strings.Join(a.Artists, ", "))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// NewsToText renders news as a numbered list.
func NewsToText(items []models.NewsItem) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "News: %d\n\n", len(items))
	for i, n := range items {
		fmt.Fprintf(&buf, "%d. [%s] %s (%s)\n", i+1, n.ID, n.Title, n.Date)
	}

	return buf.Bytes()
}

// AlbumListToItems widens catalog entries to the search item shape used by the album renderers.
func AlbumListToItems(albums []models.AlbumListItem) []models.SearchAlbumItem {
	items := make([]models.SearchAlbumItem, len(albums))
	for i, a := range albums {
		items[i] = models.SearchAlbumItem{ID: a.ID, Name: a.Name, CoverURL: a.CoverURL, Artists: a.Artists}
	}
	return items
}

// RenderAlbums renders albums in format f. JSON output is the albums and details as given.
func RenderAlbums(f Format, title string, albums []models.SearchAlbumItem, details []models.AlbumDetail) ([]byte, error) {
	switch f {
	case CSV:
		return AlbumsToCSV(albums)
	case Markdown:
		return AlbumsToMarkdown(title, albums, details), nil
	case Text:
		return AlbumsToText(albums), nil
	default:
		return shared.MarshalJSON(struct {
			Albums  []models.SearchAlbumItem `json:"albums"`
			Details []models.AlbumDetail     `json:"details,omitempty"`
		}{albums, details}, true)
	}
}

// RenderNews renders news items in format f. JSON output is the items and details as given.
func RenderNews(f Format, title string, items []models.NewsItem, details []models.NewsDetail) ([]byte, error) {
	switch f {
	case CSV:
		return NewsToCSV(items)
	case Markdown:
		return NewsToMarkdown(title, items, details), nil
	case Text:
		return NewsToText(items), nil
	default:
		return shared.MarshalJSON(struct {
			News    []models.NewsItem   `json:"news"`
			Details []models.NewsDetail `json:"details,omitempty"`
		}{items, details}, true)
	}
}

// WriteFile writes data to path, creating or truncating it.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
