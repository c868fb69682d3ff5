package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"heritage-map/models"
)

type HighlightStore interface {
	ActiveHighlights(ctx context.Context, now time.Time) ([]models.Highlight, error)
}

type DistrictStore interface {
	PublishedDistricts(ctx context.Context) ([]models.District, error)
}

// MongoContentStore serves highlights and districts from Mongo.
type MongoContentStore struct {
	highlights *mongo.Collection
	districts  *mongo.Collection
}

func NewMongoContentStore(db *mongo.Database) *MongoContentStore {
	return &MongoContentStore{
		highlights: db.Collection("map_highlights"),
		districts:  db.Collection("districts"),
	}
}

// HighlightFilter matches active, published highlights whose optional
// schedule window includes now. A nil bound matches both null and missing.
func HighlightFilter(now time.Time) bson.D {
	return bson.D{
		{Key: "is_active", Value: true},
		{Key: "status", Value: models.StatusPublished},
		{Key: "$and", Value: bson.A{
			bson.M{"$or": bson.A{
				bson.M{"starts_at": nil},
				bson.M{"starts_at": bson.M{"$lte": now}},
			}},
			bson.M{"$or": bson.A{
				bson.M{"ends_at": nil},
				bson.M{"ends_at": bson.M{"$gte": now}},
			}},
		}},
	}
}

func (s *MongoContentStore) ActiveHighlights(ctx context.Context, now time.Time) ([]models.Highlight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := s.highlights.Find(ctx, HighlightFilter(now), opts)
	if err != nil {
		return nil, fmt.Errorf("find highlights: %w", err)
	}
	defer cursor.Close(ctx)

	highlights := []models.Highlight{}
	if err := cursor.All(ctx, &highlights); err != nil {
		return nil, fmt.Errorf("decode highlights: %w", err)
	}
	return highlights, nil
}

func (s *MongoContentStore) PublishedDistricts(ctx context.Context) ([]models.District, error) {
	filter := bson.D{
		{Key: "status", Value: models.StatusPublished},
		{Key: "location.coordinates", Value: bson.M{"$size": 2}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.districts.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find districts: %w", err)
	}
	defer cursor.Close(ctx)

	districts := []models.District{}
	if err := cursor.All(ctx, &districts); err != nil {
		return nil, fmt.Errorf("decode districts: %w", err)
	}
	return districts, nil
}
