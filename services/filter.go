package services

import (
	"sort"
	"strings"

	"heritage-map/models"
)

// MatchesFilter reports whether poi passes every filter in q. All supplied
// dimensions are ANDed. Inactive POIs and POIs without a usable location
// never match.
func MatchesFilter(poi models.POI, q models.MapFilterQuery) bool {
	if !poi.Active {
		return false
	}
	lng, lat, ok := poi.Coordinates()
	if !ok {
		return false
	}
	if q.BBox != nil && !q.BBox.Contains(lat, lng) {
		return false
	}
	if len(q.Types) > 0 && !containsType(q.Types, poi.Type) {
		return false
	}
	if len(q.Categories) > 0 && !containsString(q.Categories, poi.Category) {
		return false
	}
	if q.District != "" && poi.DistrictID != q.District {
		return false
	}
	if q.Featured && !poi.Featured {
		return false
	}
	if q.MinPrice != nil && (poi.Price == nil || *poi.Price < *q.MinPrice) {
		return false
	}
	if q.MaxPrice != nil && (poi.Price == nil || *poi.Price > *q.MaxPrice) {
		return false
	}
	if q.MinRating != nil && (poi.Rating == nil || *poi.Rating < *q.MinRating) {
		return false
	}
	if q.Search != "" && !strings.Contains(strings.ToLower(poi.Title), strings.ToLower(q.Search)) {
		return false
	}
	return true
}

// FilterPOIs applies q to pois, sorts the matches featured-first then by
// title, and returns the requested page. q is expected to be normalized.
func FilterPOIs(pois []models.POI, q models.MapFilterQuery) models.POIPage {
	matched := make([]models.POI, 0, len(pois))
	for _, poi := range pois {
		if MatchesFilter(poi, q) {
			matched = append(matched, poi)
		}
	}
	SortPOIs(matched)

	page := models.POIPage{Total: len(matched), Offset: q.Offset, Limit: q.Limit}
	start := q.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	page.POIs = matched[start:end]
	return page
}

// SortPOIs orders featured POIs first, then by title byte-wise ascending.
// ID breaks ties so the order is total.
func SortPOIs(pois []models.POI) {
	sort.SliceStable(pois, func(i, j int) bool {
		a, b := pois[i], pois[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})
}

func containsType(types []models.EntityType, t models.EntityType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
