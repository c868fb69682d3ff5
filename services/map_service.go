package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/sync/errgroup"

	"heritage-map/models"
	"heritage-map/utils/errors"
)

// POISnapshotSource lists every active POI; it feeds cache rebuilds.
type POISnapshotSource interface {
	ActivePOIs(ctx context.Context) ([]models.POI, error)
}

// POICacheWriter replaces the cached POI set.
type POICacheWriter interface {
	ReplaceAll(ctx context.Context, pois []models.POI) (int, error)
}

type MapService struct {
	source     DataSource
	highlights HighlightStore
	districts  DistrictStore
	snapshot   POISnapshotSource
	cache      POICacheWriter
	logger     arbor.ILogger
	now        func() time.Time
}

func NewMapService(
	source DataSource,
	highlights HighlightStore,
	districts DistrictStore,
	snapshot POISnapshotSource,
	cache POICacheWriter,
	logger arbor.ILogger,
) *MapService {
	return &MapService{
		source:     source,
		highlights: highlights,
		districts:  districts,
		snapshot:   snapshot,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

type MapOverview struct {
	POIs       *models.FeatureCollection `json:"pois"`
	Highlights []models.Highlight        `json:"highlights"`
	Districts  *models.FeatureCollection `json:"districts"`
}

type RefreshResult struct {
	Cached      int    `json:"cached"`
	DurationMs  int64  `json:"duration_ms"`
	RefreshedAt string `json:"refreshed_at"`
}

func asDataSourceError(source string, err error) error {
	var dsErr *errors.DataSourceError
	if stderrors.As(err, &dsErr) {
		return err
	}
	return errors.NewDataSourceError(source, err)
}

// QueryPOIs filters, pages and, when asked at low zoom, clusters POIs into
// a FeatureCollection.
func (s *MapService) QueryPOIs(ctx context.Context, q models.MapFilterQuery) (*models.FeatureCollection, error) {
	q.Normalize()

	page, err := s.source.FetchPOIs(ctx, q)
	if err != nil {
		s.logger.Error().Err(err).Str("action", "query_pois").Msg("Failed to fetch POIs")
		return nil, asDataSourceError(s.source.Name(), err)
	}

	if ShouldCluster(q) {
		clusters := ClusterPOIs(page.POIs, *q.Zoom)
		s.logger.Debug().
			Int("zoom", *q.Zoom).
			Int("pois", len(page.POIs)).
			Int("clusters", len(clusters)).
			Msg("Clustered POIs")
		return ClustersToFeatureCollection(clusters, page), nil
	}
	return POIsToFeatureCollection(page), nil
}

func (s *MapService) Highlights(ctx context.Context) ([]models.Highlight, error) {
	highlights, err := s.highlights.ActiveHighlights(ctx, s.now())
	if err != nil {
		s.logger.Error().Err(err).Str("action", "highlights").Msg("Failed to fetch highlights")
		return nil, asDataSourceError("mongo", err)
	}
	return highlights, nil
}

func (s *MapService) Districts(ctx context.Context) (*models.FeatureCollection, error) {
	districts, err := s.districts.PublishedDistricts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("action", "districts").Msg("Failed to fetch districts")
		return nil, asDataSourceError("mongo", err)
	}
	return DistrictsToFeatureCollection(districts), nil
}

// Search returns up to limit POIs whose title contains text. Text shorter
// than two characters yields an empty list without touching the store.
func (s *MapService) Search(ctx context.Context, text string, entityType models.EntityType, limit int) ([]models.SearchResult, error) {
	text = strings.TrimSpace(text)
	results := []models.SearchResult{}
	if len([]rune(text)) < models.MinSearchLength {
		return results, nil
	}

	q := models.MapFilterQuery{Search: text}
	if entityType != "" {
		q.Types = []models.EntityType{entityType}
	}
	q.Normalize()
	q.Limit = models.ClampLimit(limit, models.DefaultSearchLimit, models.MaxSearchLimit)

	page, err := s.source.FetchPOIs(ctx, q)
	if err != nil {
		s.logger.Error().Err(err).Str("action", "search").Str("q", text).Msg("Failed to search POIs")
		return nil, asDataSourceError(s.source.Name(), err)
	}
	for _, poi := range page.POIs {
		lng, lat, ok := poi.Coordinates()
		if !ok {
			continue
		}
		results = append(results, models.SearchResult{
			ID:       poi.ID,
			Type:     poi.Type,
			Title:    poi.Title,
			Slug:     poi.Slug,
			Image:    poi.Image,
			District: poi.DistrictName,
			Lat:      lat,
			Lng:      lng,
		})
	}
	return results, nil
}

// Overview loads POIs, highlights and districts concurrently. Any failure
// fails the whole overview.
func (s *MapService) Overview(ctx context.Context, q models.MapFilterQuery) (*MapOverview, error) {
	var overview MapOverview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fc, err := s.QueryPOIs(gctx, q)
		overview.POIs = fc
		return err
	})
	g.Go(func() error {
		highlights, err := s.Highlights(gctx)
		overview.Highlights = highlights
		return err
	})
	g.Go(func() error {
		fc, err := s.Districts(gctx)
		overview.Districts = fc
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &overview, nil
}

// RefreshCache rebuilds the cached POI set from the POI collection.
func (s *MapService) RefreshCache(ctx context.Context) (*RefreshResult, error) {
	start := s.now()
	pois, err := s.snapshot.ActivePOIs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("action", "refresh_cache").Msg("Failed to load POIs for cache rebuild")
		return nil, asDataSourceError("mongo", err)
	}
	cached, err := s.cache.ReplaceAll(ctx, pois)
	if err != nil {
		s.logger.Error().Err(err).Str("action", "refresh_cache").Msg("Failed to write POI cache")
		return nil, asDataSourceError("redis", err)
	}
	end := s.now()
	s.logger.Info().
		Int("loaded", len(pois)).
		Int("cached", cached).
		Msg("POI cache rebuilt")
	return &RefreshResult{
		Cached:      cached,
		DurationMs:  end.Sub(start).Milliseconds(),
		RefreshedAt: end.UTC().Format(time.RFC3339),
	}, nil
}
