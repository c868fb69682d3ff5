package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-map/models"
)

func newPOI(id string, t models.EntityType, title string, lng, lat float64) models.POI {
	return models.POI{
		ID:       id,
		Type:     t,
		Title:    title,
		Active:   true,
		Location: models.NewGeoPoint(lng, lat),
	}
}

func float(v float64) *float64 { return &v }

func normalized(q models.MapFilterQuery) models.MapFilterQuery {
	q.Normalize()
	return q
}

func TestFilterPOIs_BBoxAndTypeScenario(t *testing.T) {
	featured := newPOI("v2", models.EntityVillage, "Sarmoli", 79.2, 30.2)
	featured.Featured = true
	pois := []models.POI{
		newPOI("v1", models.EntityVillage, "Munsiyari", 79.1, 30.1),
		featured,
		newPOI("v3", models.EntityVillage, "Darkot", 79.5, 30.5),
		newPOI("v4", models.EntityVillage, "Almora", 79.6, 29.6),
		newPOI("v5", models.EntityVillage, "Nainital", 78.9, 30.3),
		newPOI("p1", models.EntityPlace, "Birthi Falls", 79.3, 30.3),
	}
	q := normalized(models.MapFilterQuery{
		BBox:  &models.BBox{MinLng: 79.0, MinLat: 30.0, MaxLng: 79.5, MaxLat: 30.5},
		Types: []models.EntityType{models.EntityVillage},
		Limit: 10,
	})

	page := FilterPOIs(pois, q)

	require.Len(t, page.POIs, 3)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, []string{"v2", "v3", "v1"}, ids(page.POIs))
	for _, poi := range page.POIs {
		lng, lat, _ := poi.Coordinates()
		assert.True(t, q.BBox.Contains(lat, lng), "poi %s outside bbox", poi.ID)
	}
}

func TestFilterPOIs_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	pois := []models.POI{
		newPOI("a", models.EntityListing, "Temple View Homestay", 79, 30),
		newPOI("b", models.EntityPlace, "Mountain Temple", 79, 30),
		newPOI("c", models.EntityListing, "Riverside Resort", 79, 30),
	}

	page := FilterPOIs(pois, normalized(models.MapFilterQuery{Search: "temple"}))

	assert.ElementsMatch(t, []string{"a", "b"}, ids(page.POIs))
}

func TestFilterPOIs_SkipsInactiveAndUnlocated(t *testing.T) {
	inactive := newPOI("inactive", models.EntityPlace, "Closed", 79, 30)
	inactive.Active = false
	unlocated := newPOI("unlocated", models.EntityPlace, "Nowhere", 0, 0)
	unlocated.Location = models.GeoPoint{}
	outOfRange := newPOI("range", models.EntityPlace, "Broken", 200, 30)

	page := FilterPOIs([]models.POI{
		inactive, unlocated, outOfRange,
		newPOI("ok", models.EntityPlace, "Jageshwar", 79.8, 29.6),
	}, normalized(models.MapFilterQuery{}))

	assert.Equal(t, []string{"ok"}, ids(page.POIs))
}

func TestFilterPOIs_DefaultTypesExcludeDistricts(t *testing.T) {
	pois := []models.POI{
		newPOI("d", models.EntityDistrict, "Pithoragarh", 80.2, 29.6),
		newPOI("e", models.EntityEvent, "Nanda Devi Mela", 79.6, 29.6),
	}

	page := FilterPOIs(pois, normalized(models.MapFilterQuery{}))

	assert.Equal(t, []string{"e"}, ids(page.POIs))
}

func TestMatchesFilter_PriceAndRating(t *testing.T) {
	poi := newPOI("l1", models.EntityListing, "Homestay", 79, 30)
	poi.Price = float(1500)
	poi.Rating = float(4.2)
	unpriced := newPOI("l2", models.EntityListing, "Unpriced", 79, 30)

	tests := []struct {
		name string
		poi  models.POI
		q    models.MapFilterQuery
		want bool
	}{
		{"within price range", poi, models.MapFilterQuery{MinPrice: float(1000), MaxPrice: float(2000)}, true},
		{"below min price", poi, models.MapFilterQuery{MinPrice: float(2000)}, false},
		{"above max price", poi, models.MapFilterQuery{MaxPrice: float(1000)}, false},
		{"inclusive bounds", poi, models.MapFilterQuery{MinPrice: float(1500), MaxPrice: float(1500)}, true},
		{"null price fails price filter", unpriced, models.MapFilterQuery{MinPrice: float(0)}, false},
		{"rating passes", poi, models.MapFilterQuery{MinRating: float(4)}, true},
		{"rating fails", poi, models.MapFilterQuery{MinRating: float(4.5)}, false},
		{"null rating fails rating filter", unpriced, models.MapFilterQuery{MinRating: float(1)}, false},
		{"no filters", unpriced, models.MapFilterQuery{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesFilter(tt.poi, tt.q))
		})
	}
}

func TestMatchesFilter_CategoryDistrictFeatured(t *testing.T) {
	poi := newPOI("l1", models.EntityListing, "Homestay", 79, 30)
	poi.Category = "homestay"
	poi.DistrictID = "pithoragarh"

	assert.True(t, MatchesFilter(poi, models.MapFilterQuery{Categories: []string{"camp", "homestay"}}))
	assert.False(t, MatchesFilter(poi, models.MapFilterQuery{Categories: []string{"camp"}}))
	assert.True(t, MatchesFilter(poi, models.MapFilterQuery{District: "pithoragarh"}))
	assert.False(t, MatchesFilter(poi, models.MapFilterQuery{District: "almora"}))
	assert.False(t, MatchesFilter(poi, models.MapFilterQuery{Featured: true}))
}

func TestFilterPOIs_Pagination(t *testing.T) {
	var pois []models.POI
	for i := 0; i < 25; i++ {
		pois = append(pois, newPOI(fmt.Sprintf("p%02d", i), models.EntityPlace, fmt.Sprintf("Place %02d", i), 79, 30))
	}

	page := FilterPOIs(pois, normalized(models.MapFilterQuery{Limit: 10, Offset: 20}))
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, []string{"p20", "p21", "p22", "p23", "p24"}, ids(page.POIs))

	page = FilterPOIs(pois, normalized(models.MapFilterQuery{Limit: 10, Offset: 40}))
	assert.Equal(t, 25, page.Total)
	assert.Empty(t, page.POIs)
}

func TestSortPOIs_FeaturedThenTitleThenID(t *testing.T) {
	a := newPOI("b", models.EntityPlace, "Same", 79, 30)
	b := newPOI("a", models.EntityPlace, "Same", 79, 30)
	c := newPOI("c", models.EntityPlace, "Zebra", 79, 30)
	c.Featured = true
	d := newPOI("d", models.EntityPlace, "Apple", 79, 30)
	pois := []models.POI{a, b, c, d}

	SortPOIs(pois)

	assert.Equal(t, []string{"c", "d", "a", "b"}, ids(pois))
}

func ids(pois []models.POI) []string {
	out := make([]string, len(pois))
	for i, p := range pois {
		out[i] = p.ID
	}
	return out
}
