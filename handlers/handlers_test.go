package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/ternarybob/arbor"

	"heritage-map/models"
	"heritage-map/services"
	"heritage-map/utils/errors"
)

type memorySource struct {
	pois []models.POI
	err  error
}

func (m *memorySource) Name() string { return "memory" }

func (m *memorySource) FetchPOIs(_ context.Context, q models.MapFilterQuery) (models.POIPage, error) {
	if m.err != nil {
		return models.POIPage{}, m.err
	}
	return services.FilterPOIs(m.pois, q), nil
}

type memoryContent struct {
	highlights []models.Highlight
	districts  []models.District
}

func (m *memoryContent) ActiveHighlights(context.Context, time.Time) ([]models.Highlight, error) {
	return m.highlights, nil
}

func (m *memoryContent) PublishedDistricts(context.Context) ([]models.District, error) {
	return m.districts, nil
}

type memoryCache struct {
	pois []models.POI
}

func (m *memoryCache) ActivePOIs(context.Context) ([]models.POI, error) {
	return m.pois, nil
}

func (m *memoryCache) ReplaceAll(_ context.Context, pois []models.POI) (int, error) {
	m.pois = pois
	return len(pois), nil
}

type memoryEntities struct {
	entities map[string]*models.EntityContent
}

func (m *memoryEntities) FindEntityByID(_ context.Context, t models.EntityType, id string) (*models.EntityContent, error) {
	return m.entities[string(t)+"/"+id], nil
}

func (m *memoryEntities) FindEntityBySlug(_ context.Context, t models.EntityType, slug string) (*models.EntityContent, error) {
	for key, e := range m.entities {
		if e.Slug == slug && strings.HasPrefix(key, string(t)+"/") {
			return e, nil
		}
	}
	return nil, nil
}

func (m *memoryEntities) FindOverride(context.Context, models.EntityType, string) (*models.MetaOverride, error) {
	return nil, nil
}

func (m *memoryEntities) SiteDefaults(context.Context) (*models.SiteDefaults, error) {
	return nil, nil
}

// staticAuth accepts exactly one header value.
type staticAuth string

func (a staticAuth) Authorize(header string) (string, error) {
	if header == "" {
		return "", errors.ErrUnauthorized
	}
	if header != string(a) {
		return "", errors.NewUnauthorizedError("Invalid token")
	}
	return "operator", nil
}

type fixture struct {
	source   *memorySource
	content  *memoryContent
	cache    *memoryCache
	entities *memoryEntities
}

func newFixture() *fixture {
	return &fixture{
		source:   &memorySource{},
		content:  &memoryContent{},
		cache:    &memoryCache{},
		entities: &memoryEntities{entities: map[string]*models.EntityContent{}},
	}
}

func (f *fixture) router() *mux.Router {
	logger := arbor.NewLogger()
	mapService := services.NewMapService(f.source, f.content, f.content, f.cache, f.cache, logger)
	metaService := services.NewMetaService(f.entities, services.HardcodedSiteDefaults, logger)
	return NewRouter(NewMapHandler(mapService, logger), NewMetaHandler(metaService, logger), RouterConfig{
		AllowedOrigins: []string{"https://humpahadihaii.in"},
		Authorizer:     staticAuth("Bearer good"),
		Logger:         logger,
	})
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router().ServeHTTP(rec, req)
	return rec
}

func (f *fixture) get(target string) *httptest.ResponseRecorder {
	return f.do(httptest.NewRequest(http.MethodGet, target, nil))
}

var errUnavailable = stderrors.New("connection refused")

func poi(id string, t models.EntityType, title string, lng, lat float64) models.POI {
	return models.POI{ID: id, Type: t, Title: title, Active: true, Location: models.NewGeoPoint(lng, lat)}
}
