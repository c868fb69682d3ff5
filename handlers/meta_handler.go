package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/ternarybob/arbor"

	"heritage-map/middleware"
	"heritage-map/models"
	"heritage-map/services"
)

type MetaHandler struct {
	metaService *services.MetaService
	logger      arbor.ILogger
}

func NewMetaHandler(metaService *services.MetaService, logger arbor.ILogger) *MetaHandler {
	return &MetaHandler{metaService: metaService, logger: logger}
}

// ResolveEntity serves /resolve/{entityType}/{entityId}.
func (h *MetaHandler) ResolveEntity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	meta := h.metaService.ResolveEntity(r.Context(), models.EntityType(vars["entityType"]), vars["entityId"])
	h.respond(w, r, meta)
}

// ResolveURL serves /resolve?url=<page url>.
func (h *MetaHandler) ResolveURL(w http.ResponseWriter, r *http.Request) {
	meta := h.metaService.ResolveURL(r.Context(), r.URL.Query().Get("url"))
	h.respond(w, r, meta)
}

// respond always answers 200: JSON when the caller accepts it, otherwise
// the crawler HTML document.
func (h *MetaHandler) respond(w http.ResponseWriter, r *http.Request, meta models.ResolvedMeta) {
	// Both representations are cacheable, so shared caches must key on Accept.
	w.Header().Add("Vary", "Accept")
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusOK, services.CacheControlPOIs, meta)
		return
	}

	ua := r.Header.Get("User-Agent")
	h.logger.Debug().
		Str("canonical", meta.CanonicalURL).
		Bool("crawler", services.IsCrawler(ua)).
		Msg("Serving share metadata")

	body, err := services.RenderShareHTML(meta, meta.CanonicalURL)
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", services.CacheControlPOIs)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
