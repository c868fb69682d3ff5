package services

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"math"

	"github.com/redis/go-redis/v9"
	"github.com/ternarybob/arbor"

	"heritage-map/models"
)

const (
	poiGeoKey    = "map:pois:geo"
	poiKeyPrefix = "map:poi:"
	kmPerDegree  = 111.32

	// Redis GEO indexes cannot store latitudes beyond this. POIs past it
	// are left out of the cache and only served by the Mongo fallback.
	maxGeoLat = 85.05112878
	// Boxes wider than this are cheaper to answer from the full set.
	maxBoxSpanDeg = 60.0

	replaceAttempts = 3
)

// ErrCacheNotBuilt is returned while the GEO set does not exist, so a
// failover source answers until the first rebuild.
var ErrCacheNotBuilt = stderrors.New("poi cache has not been built")

func poiKey(id string) string {
	return poiKeyPrefix + id
}

// RedisPOISource reads the cached POI set: a GEO set of ids plus one hash
// per POI holding its JSON under "data".
type RedisPOISource struct {
	client *redis.Client
	logger arbor.ILogger
}

func NewRedisPOISource(client *redis.Client, logger arbor.ILogger) *RedisPOISource {
	return &RedisPOISource{client: client, logger: logger}
}

func (s *RedisPOISource) Name() string {
	return "redis"
}

func (s *RedisPOISource) FetchPOIs(ctx context.Context, q models.MapFilterQuery) (models.POIPage, error) {
	ids, err := s.candidateIDs(ctx, q.BBox)
	if err != nil {
		return models.POIPage{}, err
	}
	if len(ids) == 0 {
		n, err := s.client.Exists(ctx, poiGeoKey).Result()
		if err != nil {
			return models.POIPage{}, fmt.Errorf("check poi geo set: %w", err)
		}
		if n == 0 {
			return models.POIPage{}, ErrCacheNotBuilt
		}
	}
	pois, err := s.load(ctx, ids)
	if err != nil {
		return models.POIPage{}, err
	}
	page := FilterPOIs(pois, q)
	s.logger.Debug().
		Int("candidates", len(ids)).
		Int("total", page.Total).
		Msg("Redis POI query completed")
	return page, nil
}

// candidateIDs narrows by bbox with GEOSEARCH over a box that covers the
// requested envelope. The box is a superset; FilterPOIs applies the exact
// bounds afterwards.
func (s *RedisPOISource) candidateIDs(ctx context.Context, bbox *models.BBox) ([]string, error) {
	if bbox == nil || bbox.MaxLng-bbox.MinLng > maxBoxSpanDeg || bbox.MaxLat-bbox.MinLat > maxBoxSpanDeg {
		ids, err := s.client.ZRange(ctx, poiGeoKey, 0, -1).Result()
		if err != nil {
			return nil, fmt.Errorf("read poi geo set: %w", err)
		}
		return ids, nil
	}

	centerLng := (bbox.MinLng + bbox.MaxLng) / 2
	centerLat := (bbox.MinLat + bbox.MaxLat) / 2
	widthKm, heightKm := coveringBoxKm(*bbox)

	ids, err := s.client.GeoSearch(ctx, poiGeoKey, &redis.GeoSearchQuery{
		Longitude: centerLng,
		Latitude:  centerLat,
		BoxWidth:  widthKm,
		BoxHeight: heightKm,
		BoxUnit:   "km",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("geosearch pois: %w", err)
	}
	return ids, nil
}

// coveringBoxKm sizes a GEOSEARCH box that contains bbox. Width uses the
// latitude closest to the equator, where a degree of longitude is widest,
// and both sides get headroom for Redis' spherical distance checks.
func coveringBoxKm(bbox models.BBox) (widthKm, heightKm float64) {
	widestLat := 0.0
	if bbox.MinLat > 0 {
		widestLat = bbox.MinLat
	} else if bbox.MaxLat < 0 {
		widestLat = bbox.MaxLat
	}
	widthKm = (bbox.MaxLng - bbox.MinLng) * kmPerDegree * math.Cos(widestLat*math.Pi/180)
	heightKm = (bbox.MaxLat - bbox.MinLat) * kmPerDegree
	return widthKm*1.5 + 1, heightKm*1.5 + 1
}

func (s *RedisPOISource) load(ctx context.Context, ids []string) ([]models.POI, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cmds := make([]*redis.StringCmd, len(ids))
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGet(ctx, poiKey(id), "data")
		}
		return nil
	})
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("load cached pois: %w", err)
	}

	pois := make([]models.POI, 0, len(ids))
	for i, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil {
			s.logger.Warn().Err(err).Str("poi_id", ids[i]).Msg("Cached POI missing data")
			continue
		}
		var poi models.POI
		if err := json.Unmarshal([]byte(data), &poi); err != nil {
			s.logger.Warn().Err(err).Str("poi_id", ids[i]).Msg("Failed to unmarshal cached POI")
			continue
		}
		pois = append(pois, poi)
	}
	return pois, nil
}

// ReplaceAll swaps the cached POI set for pois in one transaction and
// returns how many were written. The previous member list is read under
// WATCH, so a concurrent rebuild makes this one retry instead of leaving
// orphaned hashes behind.
func (s *RedisPOISource) ReplaceAll(ctx context.Context, pois []models.POI) (int, error) {
	var err error
	for attempt := 1; attempt <= replaceAttempts; attempt++ {
		var written int
		err = s.client.Watch(ctx, func(tx *redis.Tx) error {
			var txErr error
			written, txErr = s.replaceIn(ctx, tx, pois)
			return txErr
		}, poiGeoKey)
		if err == nil {
			return written, nil
		}
		if !stderrors.Is(err, redis.TxFailedErr) {
			break
		}
		s.logger.Warn().Int("attempt", attempt).Msg("POI cache changed during rebuild, retrying")
	}
	return 0, fmt.Errorf("replace cached pois: %w", err)
}

func (s *RedisPOISource) replaceIn(ctx context.Context, tx *redis.Tx, pois []models.POI) (int, error) {
	previous, err := tx.ZRange(ctx, poiGeoKey, 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("read poi geo set: %w", err)
	}

	written, polar := 0, 0
	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range previous {
			pipe.Del(ctx, poiKey(id))
		}
		pipe.Del(ctx, poiGeoKey)

		for _, poi := range pois {
			lng, lat, ok := poi.Coordinates()
			if !ok || !poi.Active {
				continue
			}
			if math.Abs(lat) > maxGeoLat {
				polar++
				continue
			}
			data, err := json.Marshal(poi)
			if err != nil {
				s.logger.Warn().Err(err).Str("poi_id", poi.ID).Msg("Failed to marshal POI")
				continue
			}
			pipe.HSet(ctx, poiKey(poi.ID), "data", data)
			pipe.GeoAdd(ctx, poiGeoKey, &redis.GeoLocation{
				Name:      poi.ID,
				Longitude: lng,
				Latitude:  lat,
			})
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if polar > 0 {
		s.logger.Warn().Int("skipped", polar).Msg("POIs beyond the Redis GEO latitude limit were not cached")
	}
	return written, nil
}
