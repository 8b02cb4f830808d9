// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output the raw envelope as JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

func pageFlags() []cli.Flag {
	return append(outputFlags(), &cli.StringFlag{
		Name:  "last-cid",
		Usage: "Cursor: cid of the last item of the previous page",
	})
}

// serveCommand starts the HTTP proxy
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP proxy",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to listen on",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on",
			},
			&cli.BoolFlag{
				Name:  "docs",
				Usage: "Serve the OpenAPI document & Swagger UI",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Serve Prometheus metrics at /metrics",
			},
		},
		Action: r.Serve,
	}
}

// songsCommand handles song lookups
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "songs",
		Usage: "Song lookups",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every song",
				Flags:  outputFlags(),
				Action: r.SongsList,
			},
			{
				Name:      "get",
				Usage:     "Show a song with its media URLs",
				Arguments: []cli.Argument{&cli.StringArg{Name: "cid"}},
				Flags:     outputFlags(),
				Action:    r.SongsGet,
			},
		},
	}
}

// albumsCommand handles album lookups
func albumsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "albums",
		Usage: "Album lookups",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every album",
				Flags:  outputFlags(),
				Action: r.AlbumsList,
			},
			{
				Name:      "get",
				Usage:     "Show album metadata",
				Arguments: []cli.Argument{&cli.StringArg{Name: "cid"}},
				Flags:     outputFlags(),
				Action:    r.AlbumsGet,
			},
			{
				Name:      "detail",
				Usage:     "Show an album with its track listing",
				Arguments: []cli.Argument{&cli.StringArg{Name: "cid"}},
				Flags:     outputFlags(),
				Action:    r.AlbumsDetail,
			},
		},
	}
}

// newsCommand handles news lookups
func newsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "news",
		Usage: "News lookups",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List one page of news",
				Flags:  pageFlags(),
				Action: r.NewsList,
			},
			{
				Name:      "get",
				Usage:     "Show a news article",
				Arguments: []cli.Argument{&cli.StringArg{Name: "cid"}},
				Flags:     outputFlags(),
				Action:    r.NewsGet,
			},
		},
	}
}

// searchCommand handles keyword searches
func searchCommand(r *Runner) *cli.Command {
	keyword := []cli.Argument{&cli.StringArg{Name: "keyword"}}

	return &cli.Command{
		Name:  "search",
		Usage: "Search albums and news",
		Commands: []*cli.Command{
			{
				Name:      "all",
				Usage:     "Search albums and news at once",
				Arguments: keyword,
				Flags:     outputFlags(),
				Action:    r.SearchAll,
			},
			{
				Name:      "albums",
				Usage:     "Search albums, one page at a time",
				Arguments: keyword,
				Flags:     pageFlags(),
				Action:    r.SearchAlbums,
			},
			{
				Name:      "news",
				Usage:     "Search news, one page at a time",
				Arguments: keyword,
				Flags:     pageFlags(),
				Action:    r.SearchNews,
			},
		},
	}
}

// fontsetCommand shows the site fonts
func fontsetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "fontset",
		Usage:  "Show the site font URLs",
		Flags:  outputFlags(),
		Action: r.FontSet,
	}
}

// exportCommand walks paginated listings into a file
func exportCommand(r *Runner) *cli.Command {
	flags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:    "keyword",
				Aliases: []string{"k"},
				Usage:   "Export search hits instead of the full listing",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown, txt",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Upstream requests per second",
				Value: 2,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent detail fetchers",
				Value: 4,
			},
			&cli.IntFlag{
				Name:  "max-pages",
				Usage: "Stop after this many pages (0: no limit)",
			},
			&cli.BoolFlag{
				Name:  "details",
				Usage: "Also fetch each article or track listing",
			},
		}
	}

	return &cli.Command{
		Name:  "export",
		Usage: "Export paginated listings",
		Commands: []*cli.Command{
			{
				Name:   "news",
				Usage:  "Export every news item",
				Flags:  flags(),
				Action: r.ExportNews,
			},
			{
				Name:   "albums",
				Usage:  "Export every album",
				Flags:  flags(),
				Action: r.ExportAlbums,
			},
		},
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file helpers",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the example configuration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Where to write the file",
						Value: "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the resolved configuration",
				Action: r.ConfigShow,
			},
		},
	}
}

// apiCommand handles direct upstream calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct upstream API calls",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "GET any path below the API root, prints raw JSON",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Query parameter as name=value, repeatable",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}
