package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-map/models"
)

func parse(t *testing.T, raw string) models.MapFilterQuery {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	q, err := ParseMapFilterQuery(values)
	require.NoError(t, err)
	return q
}

func TestParseMapFilterQuery_Defaults(t *testing.T) {
	q := parse(t, "")

	assert.Nil(t, q.BBox)
	assert.Equal(t, models.DefaultMapTypes, q.Types)
	assert.Equal(t, models.DefaultPOILimit, q.Limit)
	assert.Equal(t, 0, q.Offset)
	assert.Nil(t, q.Zoom)
	assert.False(t, q.Cluster)
}

func TestParseMapFilterQuery_AllParameters(t *testing.T) {
	q := parse(t, "bbox=79.0,30.0,79.5,30.5&types=village,+listing&categories=homestay,camp"+
		"&district=pithoragarh&featured=true&minPrice=500&maxPrice=2500&minRating=4.5"+
		"&search=+temple+&limit=25&offset=50&cluster=true&zoom=6")

	require.NotNil(t, q.BBox)
	assert.Equal(t, models.BBox{MinLng: 79.0, MinLat: 30.0, MaxLng: 79.5, MaxLat: 30.5}, *q.BBox)
	assert.Equal(t, []models.EntityType{models.EntityVillage, models.EntityListing}, q.Types)
	assert.Equal(t, []string{"homestay", "camp"}, q.Categories)
	assert.Equal(t, "pithoragarh", q.District)
	assert.True(t, q.Featured)
	assert.Equal(t, 500.0, *q.MinPrice)
	assert.Equal(t, 2500.0, *q.MaxPrice)
	assert.Equal(t, 4.5, *q.MinRating)
	assert.Equal(t, "temple", q.Search)
	assert.Equal(t, 25, q.Limit)
	assert.Equal(t, 50, q.Offset)
	assert.True(t, q.Cluster)
	assert.Equal(t, 6, *q.Zoom)
}

func TestParseMapFilterQuery_LimitClamp(t *testing.T) {
	for _, raw := range []string{"501", "1000", "999999"} {
		assert.Equal(t, models.MaxPOILimit, parse(t, "limit="+raw).Limit, raw)
	}
	assert.Equal(t, models.MaxPOILimit, parse(t, "limit=500").Limit)
	assert.Equal(t, models.DefaultPOILimit, parse(t, "limit=0").Limit)
}

func TestParseMapFilterQuery_Rejects(t *testing.T) {
	tests := map[string]string{
		"short bbox":        "bbox=1,2,3",
		"non-numeric bbox":  "bbox=a,b,c,d",
		"inverted lat":      "bbox=79,31,79.5,30",
		"lat out of range":  "bbox=79,-95,79.5,30",
		"infinite price":    "minPrice=Inf",
		"negative price":    "maxPrice=-5",
		"price range":       "minPrice=10&maxPrice=5",
		"unknown type":      "types=village,fort",
		"zoom out of range": "zoom=30",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			values, err := url.ParseQuery(raw)
			require.NoError(t, err)

			_, err = ParseMapFilterQuery(values)

			assert.Error(t, err)
		})
	}
}

func TestFieldName(t *testing.T) {
	assert.Equal(t, "bbox.minLat", fieldName("MapFilterQuery.BBox.MinLat"))
	assert.Equal(t, "types[0]", fieldName("MapFilterQuery.Types[0]"))
}
