package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	tu "github.com/desertthunder/siren/internal/testing"
	"github.com/getkin/kin-openapi/openapi3"
)

func TestDocs(t *testing.T) {
	t.Run("OpenAPI Document", func(t *testing.T) {
		s := newTestServer(&tu.MockCatalog{}, ServerOpts{Docs: OpenAPIDocs{Title: "siren", Version: "test"}})
		rec := do(s, http.MethodGet, OpenAPIPath)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var doc struct {
			OpenAPI string                                `json:"openapi"`
			Info    map[string]string                     `json:"info"`
			Paths   map[string]map[string]json.RawMessage `json:"paths"`
			Comps   struct {
				Schemas map[string]json.RawMessage `json:"schemas"`
			} `json:"components"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
			t.Fatalf("invalid document: %v", err)
		}

		if !strings.HasPrefix(doc.OpenAPI, "3.0") || doc.Info["version"] != "test" {
			t.Errorf("unexpected header %s %v", doc.OpenAPI, doc.Info)
		}

		handler := NewSirenHandler(&tu.MockCatalog{}, nil, nil)
		for _, route := range handler.Routes() {
			path := strings.TrimPrefix(route, "GET ")
			if _, ok := doc.Paths[path]["get"]; !ok {
				t.Errorf("expected %s to be documented", path)
			}
		}

		for _, name := range []string{"Song", "FontFaceSet", "AlbumDetailSong", "NewsItem", "Error"} {
			if _, ok := doc.Comps.Schemas[name]; !ok {
				t.Errorf("expected schema %s", name)
			}
		}

		if !strings.Contains(string(doc.Comps.Schemas["FontFaceSet"]), "Sans-Regular") {
			t.Error("expected wire names in schemas")
		}
	})

	t.Run("Document Validates", func(t *testing.T) {
		s := newTestServer(&tu.MockCatalog{}, ServerOpts{Docs: OpenAPIDocs{}})
		rec := do(s, http.MethodGet, OpenAPIPath)

		doc, err := openapi3.NewLoader().LoadFromData(rec.Body.Bytes())
		if err != nil {
			t.Fatalf("failed to load document: %v", err)
		}
		if err := doc.Validate(context.Background()); err != nil {
			t.Errorf("invalid OpenAPI document: %v", err)
		}

		op := doc.Paths.Find("/search/album").Get
		if op == nil {
			t.Fatal("expected GET /search/album")
		}
		if p := op.Parameters.GetByInAndName("query", "keyword"); p == nil || !p.Required {
			t.Error("expected required keyword parameter")
		}
		if p := op.Parameters.GetByInAndName("query", "lastCid"); p == nil || p.Required {
			t.Error("expected optional lastCid parameter")
		}
		if op.Responses.Status(http.StatusBadRequest) == nil {
			t.Error("expected 400 response for keyword routes")
		}

		song := doc.Components.Schemas["Song"].Value
		if song == nil || song.Properties["albumCid"] == nil || song.Properties["sourceUrl"] == nil {
			t.Errorf("expected Song schema built from JSON tags, got %+v", song)
		}
	})

	t.Run("Swagger UI", func(t *testing.T) {
		s := newTestServer(&tu.MockCatalog{}, ServerOpts{Docs: OpenAPIDocs{}})
		rec := do(s, http.MethodGet, SwaggerUIPath+"index.html")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "openapi.json") {
			t.Error("expected UI to point at the OpenAPI document")
		}
	})

	t.Run("NoDocs", func(t *testing.T) {
		s := newTestServer(&tu.MockCatalog{}, ServerOpts{Docs: NoDocs{}})
		if rec := do(s, http.MethodGet, OpenAPIPath); rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}
