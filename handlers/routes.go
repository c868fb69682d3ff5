package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ternarybob/arbor"

	"heritage-map/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string
	Authorizer     middleware.Authorizer
	Logger         arbor.ILogger
}

func NewRouter(mapHandler *MapHandler, metaHandler *MetaHandler, cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RecoveryMiddleware(cfg.Logger))
	r.Use(middleware.LoggingMiddleware(cfg.Logger))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, "no-store", map[string]string{"status": "ok"})
	}).Methods("GET")

	// Map routes
	mapRouter := r.PathPrefix("/api/map").Subrouter()
	mapRouter.HandleFunc("/pois", mapHandler.GetPOIs).Methods("GET", "OPTIONS")
	mapRouter.HandleFunc("/highlights", mapHandler.GetHighlights).Methods("GET", "OPTIONS")
	mapRouter.HandleFunc("/districts", mapHandler.GetDistricts).Methods("GET", "OPTIONS")
	mapRouter.HandleFunc("/search", mapHandler.Search).Methods("GET", "OPTIONS")
	mapRouter.HandleFunc("/overview", mapHandler.GetOverview).Methods("GET", "OPTIONS")

	refresh := middleware.AuthMiddleware(cfg.Authorizer, cfg.Logger)(http.HandlerFunc(mapHandler.RefreshCache))
	mapRouter.Handle("/refresh", refresh).Methods("POST", "OPTIONS")

	// Share metadata routes
	metaRouter := r.PathPrefix("/api/meta").Subrouter()
	metaRouter.HandleFunc("/resolve/{entityType}/{entityId}", metaHandler.ResolveEntity).Methods("GET")
	metaRouter.HandleFunc("/resolve", metaHandler.ResolveURL).Methods("GET")

	return r
}
