package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"heritage-map/models"
)

func filterMap(d bson.D) map[string]any {
	out := make(map[string]any, len(d))
	for _, e := range d {
		out[e.Key] = e.Value
	}
	return out
}

func TestBuildPOIFilter_Minimal(t *testing.T) {
	f := filterMap(BuildPOIFilter(models.MapFilterQuery{}))

	assert.Equal(t, true, f["active"])
	assert.Equal(t, bson.M{"$size": 2}, f["location.coordinates"])
	assert.Equal(t, bson.M{"$gte": -180, "$lte": 180}, f["location.coordinates.0"])
	assert.NotContains(t, f, "entity_type")
	assert.NotContains(t, f, "price")
	assert.NotContains(t, f, "title")
}

func TestBuildPOIFilter_AllDimensions(t *testing.T) {
	q := models.MapFilterQuery{
		BBox:       &models.BBox{MinLng: 79.0, MinLat: 30.0, MaxLng: 79.5, MaxLat: 30.5},
		Types:      []models.EntityType{models.EntityVillage},
		Categories: []string{"homestay"},
		District:   "pithoragarh",
		Featured:   true,
		MinPrice:   float(500),
		MaxPrice:   float(2500),
		MinRating:  float(4),
		Search:     "temple (old)",
	}

	f := filterMap(BuildPOIFilter(q))

	assert.Equal(t, bson.M{"$gte": 79.0, "$lte": 79.5}, f["location.coordinates.0"])
	assert.Equal(t, bson.M{"$gte": 30.0, "$lte": 30.5}, f["location.coordinates.1"])
	assert.Equal(t, bson.M{"$in": q.Types}, f["entity_type"])
	assert.Equal(t, bson.M{"$in": q.Categories}, f["category"])
	assert.Equal(t, "pithoragarh", f["district_id"])
	assert.Equal(t, true, f["featured"])
	assert.Equal(t, bson.M{"$gte": 500.0, "$lte": 2500.0}, f["price"])
	assert.Equal(t, bson.M{"$gte": 4.0}, f["rating"])
	assert.Equal(t, bson.M{"$regex": `temple \(old\)`, "$options": "i"}, f["title"])
}

func TestBuildPOIFilter_MarshalsToBSON(t *testing.T) {
	_, err := bson.Marshal(BuildPOIFilter(models.MapFilterQuery{MinPrice: float(1)}))

	require.NoError(t, err)
}

func TestHighlightFilter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	f := filterMap(HighlightFilter(now))

	assert.Equal(t, true, f["is_active"])
	assert.Equal(t, models.StatusPublished, f["status"])
	window, ok := f["$and"].(bson.A)
	require.True(t, ok)
	require.Len(t, window, 2)
	assert.Equal(t, bson.M{"$or": bson.A{
		bson.M{"starts_at": nil},
		bson.M{"starts_at": bson.M{"$lte": now}},
	}}, window[0])
}
