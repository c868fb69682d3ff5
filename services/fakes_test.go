package services

import (
	"context"
	"sync"
	"time"

	"heritage-map/models"
)

// fakeSource answers FetchPOIs from memory with the shared filter, or
// fails with err when set.
type fakeSource struct {
	name  string
	pois  []models.POI
	err   error
	mu    sync.Mutex
	calls int
	last  models.MapFilterQuery
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) FetchPOIs(_ context.Context, q models.MapFilterQuery) (models.POIPage, error) {
	f.mu.Lock()
	f.calls++
	f.last = q
	f.mu.Unlock()
	if f.err != nil {
		return models.POIPage{}, f.err
	}
	return FilterPOIs(f.pois, q), nil
}

type fakeContent struct {
	highlights    []models.Highlight
	districts     []models.District
	highlightsErr error
	districtsErr  error
	lastNow       time.Time
}

func (f *fakeContent) ActiveHighlights(_ context.Context, now time.Time) ([]models.Highlight, error) {
	f.lastNow = now
	return f.highlights, f.highlightsErr
}

func (f *fakeContent) PublishedDistricts(context.Context) ([]models.District, error) {
	return f.districts, f.districtsErr
}

type fakeSnapshot struct {
	pois []models.POI
	err  error
}

func (f *fakeSnapshot) ActivePOIs(context.Context) ([]models.POI, error) {
	return f.pois, f.err
}

type fakeCache struct {
	written []models.POI
	err     error
}

func (f *fakeCache) ReplaceAll(_ context.Context, pois []models.POI) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.written = pois
	return len(pois), nil
}

type fakeEntityStore struct {
	byID      map[string]*models.EntityContent
	bySlug    map[string]*models.EntityContent
	overrides map[string]*models.MetaOverride
	defaults  *models.SiteDefaults
	idErr     error

	idLookups   []string
	slugLookups []string
}

func (f *fakeEntityStore) FindEntityByID(_ context.Context, t models.EntityType, id string) (*models.EntityContent, error) {
	f.idLookups = append(f.idLookups, id)
	if f.idErr != nil {
		return nil, f.idErr
	}
	return f.byID[string(t)+"/"+id], nil
}

func (f *fakeEntityStore) FindEntityBySlug(_ context.Context, t models.EntityType, slug string) (*models.EntityContent, error) {
	f.slugLookups = append(f.slugLookups, slug)
	return f.bySlug[string(t)+"/"+slug], nil
}

func (f *fakeEntityStore) FindOverride(_ context.Context, t models.EntityType, entityID string) (*models.MetaOverride, error) {
	return f.overrides[string(t)+"/"+entityID], nil
}

func (f *fakeEntityStore) SiteDefaults(context.Context) (*models.SiteDefaults, error) {
	return f.defaults, nil
}
