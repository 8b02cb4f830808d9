package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/siren/internal/formatter"
	"github.com/desertthunder/siren/internal/models"
	"github.com/desertthunder/siren/internal/shared"
	"github.com/urfave/cli/v3"
)

// requireArg returns the named positional argument or [shared.ErrMissingArgument].
func requireArg(cmd *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(cmd.StringArg(name))
	if v == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return v, nil
}

// SongsList lists every song
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	env, err := r.catalog.ListSongs(ctx)
	return show(r, cmd, "Songs", env, err, formatter.SongListToText)
}

// SongsGet shows a single song
func (r *Runner) SongsGet(ctx context.Context, cmd *cli.Command) error {
	cid, err := requireArg(cmd, "cid")
	if err != nil {
		return err
	}

	r.logger.Debug("fetching song", "cid", cid)
	env, err := r.catalog.GetSong(ctx, cid)
	return show(r, cmd, "Song "+cid, env, err, formatter.SongToText)
}

// AlbumsList lists every album
func (r *Runner) AlbumsList(ctx context.Context, cmd *cli.Command) error {
	env, err := r.catalog.ListAlbums(ctx)
	return show(r, cmd, "Albums", env, err, func(albums []models.AlbumListItem) []byte {
		return formatter.AlbumsToText(formatter.AlbumListToItems(albums))
	})
}

// AlbumsGet shows album metadata
func (r *Runner) AlbumsGet(ctx context.Context, cmd *cli.Command) error {
	cid, err := requireArg(cmd, "cid")
	if err != nil {
		return err
	}

	env, err := r.catalog.GetAlbum(ctx, cid)
	return show(r, cmd, "Album "+cid, env, err, formatter.AlbumToText)
}

// AlbumsDetail shows an album with its tracks
func (r *Runner) AlbumsDetail(ctx context.Context, cmd *cli.Command) error {
	cid, err := requireArg(cmd, "cid")
	if err != nil {
		return err
	}

	env, err := r.catalog.GetAlbumDetail(ctx, cid)
	return show(r, cmd, "Album "+cid, env, err, formatter.AlbumDetailToText)
}

// NewsList shows one page of news
func (r *Runner) NewsList(ctx context.Context, cmd *cli.Command) error {
	env, err := r.catalog.ListNews(ctx, cmd.String("last-cid"))
	return show(r, cmd, "News", env, err, formatter.NewsListToText)
}

// NewsGet shows a single article
func (r *Runner) NewsGet(ctx context.Context, cmd *cli.Command) error {
	cid, err := requireArg(cmd, "cid")
	if err != nil {
		return err
	}

	env, err := r.catalog.GetNewsDetail(ctx, cid)
	return show(r, cmd, "News "+cid, env, err, formatter.NewsDetailToText)
}

// SearchAll runs the combined search
func (r *Runner) SearchAll(ctx context.Context, cmd *cli.Command) error {
	keyword, err := requireArg(cmd, "keyword")
	if err != nil {
		return err
	}

	env, err := r.catalog.Search(ctx, keyword)
	return show(r, cmd, fmt.Sprintf("Search: %q", keyword), env, err, formatter.SearchResultToText)
}

// SearchAlbums shows one page of album hits
func (r *Runner) SearchAlbums(ctx context.Context, cmd *cli.Command) error {
	keyword, err := requireArg(cmd, "keyword")
	if err != nil {
		return err
	}

	env, err := r.catalog.SearchAlbums(ctx, keyword, cmd.String("last-cid"))
	return show(r, cmd, fmt.Sprintf("Albums matching %q", keyword), env, err, formatter.SearchAlbumResultToText)
}

// SearchNews shows one page of news hits
func (r *Runner) SearchNews(ctx context.Context, cmd *cli.Command) error {
	keyword, err := requireArg(cmd, "keyword")
	if err != nil {
		return err
	}

	env, err := r.catalog.SearchNews(ctx, keyword, cmd.String("last-cid"))
	return show(r, cmd, fmt.Sprintf("News matching %q", keyword), env, err, formatter.NewsListToText)
}

// FontSet shows the site font URLs
func (r *Runner) FontSet(ctx context.Context, cmd *cli.Command) error {
	env, err := r.catalog.GetFontSet(ctx)
	return show(r, cmd, "Fonts", env, err, formatter.FontSetToText)
}
