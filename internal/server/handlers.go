package server

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/siren/internal/models"
	"github.com/desertthunder/siren/internal/services"
	"github.com/desertthunder/siren/internal/shared"
)

var _ Handler = (*SirenHandler)(nil)

// SirenHandler exposes a [services.Catalog] over HTTP.
//
// Every route maps one inbound GET to exactly one catalog call and writes the envelope back unchanged.
type SirenHandler struct {
	catalog services.Catalog
	logger  *log.Logger
	metrics *Metrics
	routes  []string
	byRoute map[string]http.HandlerFunc
}

// NewSirenHandler builds the handler. metrics may be nil.
func NewSirenHandler(catalog services.Catalog, logger *log.Logger, metrics *Metrics) *SirenHandler {
	h := &SirenHandler{
		catalog: catalog,
		logger:  logger,
		metrics: metrics,
		byRoute: map[string]http.HandlerFunc{},
	}

	h.route("GET /song/{cid}", h.getSong)
	h.route("GET /songs", h.listSongs)
	h.route("GET /album/{cid}/data", h.getAlbum)
	h.route("GET /album/{cid}/detail", h.getAlbumDetail)
	h.route("GET /albums", h.listAlbums)
	h.route("GET /news", h.listNews)
	h.route("GET /news/{cid}", h.getNewsDetail)
	h.route("GET /search", h.search)
	h.route("GET /search/album", h.searchAlbums)
	h.route("GET /search/news", h.searchNews)
	h.route("GET /fontset", h.getFontSet)

	return h
}

func (h *SirenHandler) route(pattern string, fn http.HandlerFunc) {
	h.routes = append(h.routes, pattern)
	h.byRoute[pattern] = fn
}

// Routes returns the patterns served, in registration order.
func (h *SirenHandler) Routes() []string {
	return append([]string(nil), h.routes...)
}

// ServeHTTP dispatches on the pattern the router matched.
func (h *SirenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fn, ok := h.byRoute[r.Pattern]
	if !ok {
		h.fail(w, r, shared.ErrNotFound)
		return
	}
	fn(w, r)
}

func (h *SirenHandler) getSong(w http.ResponseWriter, r *http.Request) {
	env, err := h.catalog.GetSong(r.Context(), r.PathValue("cid"))
	respond(h, w, r, env, err)
}

func (h *SirenHandler) listSongs(w http.ResponseWriter, r *http.Request) {
	env, err := h.catalog.ListSongs(r.Context())
	respond(h, w, r, env, err)
}

func (h *SirenHandler) getAlbum(w http.ResponseWriter, r *http.Request) {
	env, err := h.catalog.GetAlbum(r.Context(), r.PathValue("cid"))
	respond(h, w, r, env, err)
}

func (h *SirenHandler) getAlbumDetail(w http.ResponseWriter, r *http.Request) {
	env, err := h.catalog.GetAlbumDetail(r.Context(), r.PathValue("cid"))
	respond(h, w, r, env, err)
}

func (h *SirenHandler) listAlbums(w http.ResponseWriter, r *http.Request) {
	env, err := h.catalog.ListAlbums(r.Context())
	respond(h, w, r, env, err)
}

func (h *SirenHandler) listNews(w http.ResponseWriter, r *http.Request) {
	env, err := h.catalog.ListNews(r.Context(), lastCID(r))
	respond(h, w, r, env, err)
}

func (h *SirenHandler) getNewsDetail(w http.ResponseWriter, r *http.Request) {
	env, err := h.catalog.GetNewsDetail(r.Context(), r.PathValue("cid"))
	respond(h, w, r, env, err)
}

func (h *SirenHandler) search(w http.ResponseWriter, r *http.Request) {
	keyword, err := requiredKeyword(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	env, err := h.catalog.Search(r.Context(), keyword)
	respond(h, w, r, env, err)
}

func (h *SirenHandler) searchAlbums(w http.ResponseWriter, r *http.Request) {
	keyword, err := requiredKeyword(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	env, err := h.catalog.SearchAlbums(r.Context(), keyword, lastCID(r))
	respond(h, w, r, env, err)
}

func (h *SirenHandler) searchNews(w http.ResponseWriter, r *http.Request) {
	keyword, err := requiredKeyword(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	env, err := h.catalog.SearchNews(r.Context(), keyword, lastCID(r))
	respond(h, w, r, env, err)
}

func (h *SirenHandler) getFontSet(w http.ResponseWriter, r *http.Request) {
	env, err := h.catalog.GetFontSet(r.Context())
	respond(h, w, r, env, err)
}

// fail logs err and writes its JSON error body.
func (h *SirenHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := WriteError(w, err)
	kind := ErrorKind(err)
	h.metrics.ObserveError(kind)

	kv := []any{"route", r.Pattern, "status", status, "kind", kind, "request_id", RequestIDFrom(r.Context()), "error", err}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", kv...)
	} else {
		h.logger.Warn("request failed", kv...)
	}
}

func respond[T any](h *SirenHandler, w http.ResponseWriter, r *http.Request, env *models.Envelope[T], err error) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if env == nil {
		h.fail(w, r, shared.ErrInternal)
		return
	}
	if err := writeJSON(w, http.StatusOK, env); err != nil {
		h.logger.Warn("response not delivered", "route", r.Pattern, "request_id", RequestIDFrom(r.Context()), "error", err)
	}
}

func requiredKeyword(r *http.Request) (string, error) {
	keyword := r.URL.Query().Get("keyword")
	if strings.TrimSpace(keyword) == "" {
		return "", shared.BadRequestf("missing required query parameter: keyword")
	}
	return keyword, nil
}

// lastCID returns the optional pagination cursor; an empty value means absent.
func lastCID(r *http.Request) string {
	return r.URL.Query().Get("lastCid")
}
