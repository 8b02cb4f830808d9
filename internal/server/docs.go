package server

import (
	"fmt"
	"net/http"

	"github.com/desertthunder/siren/internal/models"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const (
	OpenAPIPath   = "/api-docs/openapi.json"
	SwaggerUIPath = "/swagger-ui/"
)

// DocsProvider registers API documentation routes, if any.
type DocsProvider interface {
	Register(r Router)
}

// NoDocs registers nothing.
type NoDocs struct{}

func (NoDocs) Register(Router) {}

// OpenAPIDocs serves an OpenAPI 3.0 document and a Swagger UI that renders it.
type OpenAPIDocs struct {
	Title   string
	Version string
}

// Register mounts the document and the UI.
func (d OpenAPIDocs) Register(r Router) {
	doc, err := d.Document()
	r.Handle(http.MethodGet, OpenAPIPath, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}))
	r.Handle(http.MethodGet, SwaggerUIPath, httpSwagger.Handler(httpSwagger.URL(OpenAPIPath)))
}

type docRoute struct {
	id, path, summary, tag string
	params                 func() openapi3.Parameters
	payload                string // component schema of data
	list                   bool   // data is an array of payload
}

func cidParams() openapi3.Parameters {
	return openapi3.Parameters{
		{Value: openapi3.NewPathParameter("cid").WithDescription("resource cid").WithSchema(openapi3.NewStringSchema())},
	}
}

func lastCIDParam() *openapi3.ParameterRef {
	return &openapi3.ParameterRef{Value: openapi3.NewQueryParameter("lastCid").
		WithDescription("cid of the last item of the previous page").
		WithSchema(openapi3.NewStringSchema())}
}

func keywordParam() *openapi3.ParameterRef {
	return &openapi3.ParameterRef{Value: openapi3.NewQueryParameter("keyword").
		WithDescription("search keyword").
		WithRequired(true).
		WithSchema(openapi3.NewStringSchema())}
}

func noParams() openapi3.Parameters { return nil }

var docRoutes = []docRoute{
	{"getSong", "/song/{cid}", "Song with media URLs", "songs", cidParams, "Song", false},
	{"listSongs", "/songs", "All songs", "songs", noParams, "SongList", false},
	{"getAlbum", "/album/{cid}/data", "Album metadata", "albums", cidParams, "Album", false},
	{"getAlbumDetail", "/album/{cid}/detail", "Album with track listing", "albums", cidParams, "AlbumDetail", false},
	{"listAlbums", "/albums", "All albums", "albums", noParams, "AlbumListItem", true},
	{"listNews", "/news", "One page of news", "news", func() openapi3.Parameters {
		return openapi3.Parameters{lastCIDParam()}
	}, "NewsList", false},
	{"getNewsDetail", "/news/{cid}", "News article", "news", cidParams, "NewsDetail", false},
	{"search", "/search", "Search albums and news", "search", func() openapi3.Parameters {
		return openapi3.Parameters{keywordParam()}
	}, "SearchResult", false},
	{"searchAlbums", "/search/album", "One page of album hits", "search", func() openapi3.Parameters {
		return openapi3.Parameters{keywordParam(), lastCIDParam()}
	}, "SearchAlbumResult", false},
	{"searchNews", "/search/news", "One page of news hits", "search", func() openapi3.Parameters {
		return openapi3.Parameters{keywordParam(), lastCIDParam()}
	}, "NewsList", false},
	{"getFontSet", "/fontset", "Site font configuration", "others", noParams, "FontFaceSet", false},
}

// docSchemas are the payload types published under components/schemas.
var docSchemas = []struct {
	name  string
	value any
}{
	{"Song", models.Song{}},
	{"SongListItem", models.SongListItem{}},
	{"SongList", models.SongList{}},
	{"Album", models.Album{}},
	{"AlbumDetailSong", models.AlbumDetailSong{}},
	{"AlbumDetail", models.AlbumDetail{}},
	{"AlbumListItem", models.AlbumListItem{}},
	{"SearchAlbumItem", models.SearchAlbumItem{}},
	{"SearchAlbumResult", models.SearchAlbumResult{}},
	{"NewsItem", models.NewsItem{}},
	{"NewsList", models.NewsList{}},
	{"NewsDetail", models.NewsDetail{}},
	{"SearchResult", models.SearchResult{}},
	{"FontFace", models.FontFace{}},
	{"FontFaceSet", models.FontFaceSet{}},
}

func componentRef(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, nil)
}

// Document builds the OpenAPI description of every catalog route. Payload schemas are generated from the
// model types and their JSON tags.
func (d OpenAPIDocs) Document() (*openapi3.T, error) {
	title, version := d.Title, d.Version
	if title == "" {
		title = "siren"
	}
	if version == "" {
		version = "0.1.0"
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: title, Version: version},
		Tags: openapi3.Tags{
			{Name: "search", Description: "Search"},
			{Name: "songs", Description: "Songs"},
			{Name: "albums", Description: "Albums"},
			{Name: "news", Description: "News"},
			{Name: "others", Description: "Other resources"},
		},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: openapi3.Schemas{}},
	}

	for _, def := range docSchemas {
		ref, err := openapi3gen.NewSchemaRefForValue(def.value, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to generate schema %s: %w", def.name, err)
		}
		doc.Components.Schemas[def.name] = ref
	}

	errSchema := openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("code", openapi3.NewIntegerSchema())
	errSchema.Required = []string{"error", "code"}
	doc.Components.Schemas["Error"] = openapi3.NewSchemaRef("", errSchema)

	errorResponse := func(desc string) *openapi3.ResponseRef {
		return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(desc).WithJSONSchemaRef(componentRef("Error"))}
	}

	for _, rt := range docRoutes {
		data := componentRef(rt.payload)
		if rt.list {
			arr := openapi3.NewArraySchema()
			arr.Items = data
			data = openapi3.NewSchemaRef("", arr)
		}

		envelope := openapi3.NewObjectSchema().
			WithProperty("code", openapi3.NewIntegerSchema()).
			WithProperty("msg", openapi3.NewStringSchema()).
			WithPropertyRef("data", data)
		envelope.Required = []string{"code", "msg", "data"}

		statuses := []openapi3.NewResponsesOption{
			openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Upstream envelope").WithJSONSchema(envelope),
			}),
			openapi3.WithStatus(http.StatusRequestTimeout, errorResponse("Upstream timed out")),
			openapi3.WithStatus(http.StatusBadGateway, errorResponse("Upstream unavailable")),
		}
		params := rt.params()
		for _, p := range params {
			if p.Value.Name == "keyword" {
				statuses = append(statuses, openapi3.WithStatus(http.StatusBadRequest, errorResponse("Missing keyword")))
			}
		}

		op := openapi3.NewOperation()
		op.OperationID = rt.id
		op.Summary = rt.summary
		op.Tags = []string{rt.tag}
		op.Parameters = params
		op.Responses = openapi3.NewResponses(statuses...)
		doc.AddOperation(rt.path, http.MethodGet, op)
	}

	return doc, nil
}
