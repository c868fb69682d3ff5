package services

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"heritage-map/models"
)

// EntityStore looks up share metadata inputs. Misses return (nil, nil).
type EntityStore interface {
	FindEntityByID(ctx context.Context, t models.EntityType, id string) (*models.EntityContent, error)
	FindEntityBySlug(ctx context.Context, t models.EntityType, slug string) (*models.EntityContent, error)
	FindOverride(ctx context.Context, t models.EntityType, entityID string) (*models.MetaOverride, error)
	SiteDefaults(ctx context.Context) (*models.SiteDefaults, error)
}

type MongoEntityStore struct {
	db        *mongo.Database
	overrides *mongo.Collection
	settings  *mongo.Collection
}

func NewMongoEntityStore(db *mongo.Database) *MongoEntityStore {
	return &MongoEntityStore{
		db:        db,
		overrides: db.Collection("share_meta_overrides"),
		settings:  db.Collection("site_share_settings"),
	}
}

func (s *MongoEntityStore) findEntity(ctx context.Context, t models.EntityType, filter bson.M) (*models.EntityContent, error) {
	route, ok := RouteFor(t)
	if !ok {
		return nil, nil
	}
	var entity models.EntityContent
	err := s.db.Collection(route.Collection).FindOne(ctx, filter).Decode(&entity)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", t, err)
	}
	return &entity, nil
}

func (s *MongoEntityStore) FindEntityByID(ctx context.Context, t models.EntityType, id string) (*models.EntityContent, error) {
	return s.findEntity(ctx, t, bson.M{"_id": id})
}

func (s *MongoEntityStore) FindEntityBySlug(ctx context.Context, t models.EntityType, slug string) (*models.EntityContent, error) {
	return s.findEntity(ctx, t, bson.M{"slug": slug})
}

func (s *MongoEntityStore) FindOverride(ctx context.Context, t models.EntityType, entityID string) (*models.MetaOverride, error) {
	var override models.MetaOverride
	err := s.overrides.FindOne(ctx, bson.M{"entity_type": t, "entity_id": entityID}).Decode(&override)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find share override: %w", err)
	}
	return &override, nil
}

// SiteDefaults reads the singleton share settings document.
func (s *MongoEntityStore) SiteDefaults(ctx context.Context) (*models.SiteDefaults, error) {
	var defaults models.SiteDefaults
	err := s.settings.FindOne(ctx, bson.M{}).Decode(&defaults)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find site share settings: %w", err)
	}
	return &defaults, nil
}
