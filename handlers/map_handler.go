package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"

	"heritage-map/middleware"
	"heritage-map/models"
	"heritage-map/services"
	"heritage-map/utils/errors"
)

type MapHandler struct {
	mapService *services.MapService
	logger     arbor.ILogger
}

func NewMapHandler(mapService *services.MapService, logger arbor.ILogger) *MapHandler {
	return &MapHandler{mapService: mapService, logger: logger}
}

// GetPOIs serves the filtered POI set, or clusters of it, as GeoJSON.
func (h *MapHandler) GetPOIs(w http.ResponseWriter, r *http.Request) {
	q, err := ParseMapFilterQuery(r.URL.Query())
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}
	fc, err := h.mapService.QueryPOIs(r.Context(), q)
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, services.CacheControlPOIs, fc)
}

func (h *MapHandler) GetHighlights(w http.ResponseWriter, r *http.Request) {
	highlights, err := h.mapService.Highlights(r.Context())
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, services.CacheControlHighlights, map[string]any{
		"highlights": highlights,
		"count":      len(highlights),
	})
}

func (h *MapHandler) GetDistricts(w http.ResponseWriter, r *http.Request) {
	fc, err := h.mapService.Districts(r.Context())
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, services.CacheControlDistricts, fc)
}

func (h *MapHandler) Search(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	entityType := models.EntityType(strings.TrimSpace(values.Get("type")))
	if entityType != "" && !entityType.Valid() {
		middleware.WriteError(w, h.logger, errors.NewValidationError(fmt.Sprintf("unknown type %q", entityType)))
		return
	}
	limit := 0
	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			middleware.WriteError(w, h.logger, errors.NewValidationError(fmt.Sprintf("limit must be a non-negative integer, got %q", raw)))
			return
		}
		limit = v
	}

	results, err := h.mapService.Search(r.Context(), values.Get("q"), entityType, limit)
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, services.CacheControlPOIs, map[string]any{
		"results": results,
		"count":   len(results),
	})
}

// GetOverview serves POIs, highlights and districts in one response.
func (h *MapHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	q, err := ParseMapFilterQuery(r.URL.Query())
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}
	overview, err := h.mapService.Overview(r.Context(), q)
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, services.CacheControlPOIs, overview)
}

// RefreshCache rebuilds the POI cache. Routed behind AuthMiddleware.
func (h *MapHandler) RefreshCache(w http.ResponseWriter, r *http.Request) {
	result, err := h.mapService.RefreshCache(r.Context())
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}
	h.logger.Info().
		Str("caller", middleware.CallerFromContext(r.Context())).
		Int("cached", result.Cached).
		Msg("POI cache refresh requested")
	writeJSON(w, http.StatusOK, "no-store", map[string]any{
		"success": true,
		"result":  result,
	})
}
