package services

import (
	"context"
	"fmt"
	"regexp"

	"github.com/ternarybob/arbor"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"heritage-map/models"
)

const MapPOICollection = "map_pois"

// MongoPOISource queries the map_pois collection directly. It pushes the
// same filter semantics as MatchesFilter down into Mongo.
type MongoPOISource struct {
	collection *mongo.Collection
	logger     arbor.ILogger
}

func NewMongoPOISource(db *mongo.Database, logger arbor.ILogger) *MongoPOISource {
	return &MongoPOISource{collection: db.Collection(MapPOICollection), logger: logger}
}

func (s *MongoPOISource) Name() string {
	return "mongo"
}

// BuildPOIFilter translates q into a bson filter. Coordinates are read
// positionally from the GeoJSON location array: index 0 is lng, 1 is lat.
func BuildPOIFilter(q models.MapFilterQuery) bson.D {
	filter := bson.D{
		{Key: "active", Value: true},
		{Key: "location.coordinates", Value: bson.M{"$size": 2}},
	}
	if q.BBox != nil {
		filter = append(filter,
			bson.E{Key: "location.coordinates.0", Value: bson.M{"$gte": q.BBox.MinLng, "$lte": q.BBox.MaxLng}},
			bson.E{Key: "location.coordinates.1", Value: bson.M{"$gte": q.BBox.MinLat, "$lte": q.BBox.MaxLat}},
		)
	} else {
		filter = append(filter,
			bson.E{Key: "location.coordinates.0", Value: bson.M{"$gte": -180, "$lte": 180}},
			bson.E{Key: "location.coordinates.1", Value: bson.M{"$gte": -90, "$lte": 90}},
		)
	}
	if len(q.Types) > 0 {
		filter = append(filter, bson.E{Key: "entity_type", Value: bson.M{"$in": q.Types}})
	}
	if len(q.Categories) > 0 {
		filter = append(filter, bson.E{Key: "category", Value: bson.M{"$in": q.Categories}})
	}
	if q.District != "" {
		filter = append(filter, bson.E{Key: "district_id", Value: q.District})
	}
	if q.Featured {
		filter = append(filter, bson.E{Key: "featured", Value: true})
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter = append(filter, bson.E{Key: "price", Value: price})
	}
	if q.MinRating != nil {
		filter = append(filter, bson.E{Key: "rating", Value: bson.M{"$gte": *q.MinRating}})
	}
	if q.Search != "" {
		filter = append(filter, bson.E{Key: "title", Value: bson.M{
			"$regex":   regexp.QuoteMeta(q.Search),
			"$options": "i",
		}})
	}
	return filter
}

var poiSort = bson.D{
	{Key: "featured", Value: -1},
	{Key: "title", Value: 1},
	{Key: "_id", Value: 1},
}

func (s *MongoPOISource) FetchPOIs(ctx context.Context, q models.MapFilterQuery) (models.POIPage, error) {
	filter := BuildPOIFilter(q)

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return models.POIPage{}, fmt.Errorf("count pois: %w", err)
	}

	opts := options.Find().
		SetSort(poiSort).
		SetSkip(int64(q.Offset)).
		SetLimit(int64(q.Limit))
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return models.POIPage{}, fmt.Errorf("find pois: %w", err)
	}
	defer cursor.Close(ctx)

	pois := []models.POI{}
	if err := cursor.All(ctx, &pois); err != nil {
		return models.POIPage{}, fmt.Errorf("decode pois: %w", err)
	}

	s.logger.Debug().
		Int64("total", total).
		Int("returned", len(pois)).
		Msg("Mongo POI query completed")

	return models.POIPage{POIs: pois, Total: int(total), Offset: q.Offset, Limit: q.Limit}, nil
}

// ActivePOIs returns every active POI with a location, the input for a
// cache rebuild.
func (s *MongoPOISource) ActivePOIs(ctx context.Context) ([]models.POI, error) {
	filter := bson.D{
		{Key: "active", Value: true},
		{Key: "location.coordinates", Value: bson.M{"$size": 2}},
	}
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find active pois: %w", err)
	}
	defer cursor.Close(ctx)

	var pois []models.POI
	if err := cursor.All(ctx, &pois); err != nil {
		return nil, fmt.Errorf("decode active pois: %w", err)
	}
	return pois, nil
}
