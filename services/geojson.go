package services

import (
	"heritage-map/models"
)

const (
	CacheControlPOIs       = "public, max-age=300"
	CacheControlHighlights = "public, max-age=600"
	CacheControlDistricts  = "public, max-age=3600"
)

func pageMetadata(page models.POIPage) *models.CollectionMetadata {
	return &models.CollectionMetadata{Total: page.Total, Offset: page.Offset, Limit: page.Limit}
}

// POIsToFeatureCollection emits one Point feature per POI with the POI
// fields flattened into properties.
func POIsToFeatureCollection(page models.POIPage) *models.FeatureCollection {
	fc := models.NewFeatureCollection()
	for _, poi := range page.POIs {
		lng, lat, ok := poi.Coordinates()
		if !ok {
			continue
		}
		fc.AddFeature(models.NewPointFeature(lng, lat, poiProperties(poi)))
	}
	fc.Metadata = pageMetadata(page)
	return fc
}

func poiProperties(poi models.POI) map[string]any {
	props := make(map[string]any, 16+len(poi.Extra))
	// Extra never shadows a well-known key.
	for k, v := range poi.Extra {
		props[k] = v
	}
	tags := poi.Tags
	if tags == nil {
		tags = []string{}
	}
	props["id"] = poi.ID
	props["type"] = poi.Type
	props["title"] = poi.Title
	props["slug"] = nullable(poi.Slug)
	props["excerpt"] = nullable(poi.Excerpt)
	props["image"] = nullable(poi.Image)
	props["category"] = nullable(poi.Category)
	props["district_id"] = nullable(poi.DistrictID)
	props["district"] = nullable(poi.DistrictName)
	props["village"] = nullable(poi.VillageName)
	props["price"] = poi.Price
	props["rating"] = poi.Rating
	props["featured"] = poi.Featured
	props["tags"] = tags
	return props
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// ClustersToFeatureCollection emits one Point feature per cluster centroid.
func ClustersToFeatureCollection(clusters []models.Cluster, page models.POIPage) *models.FeatureCollection {
	fc := models.NewFeatureCollection()
	for _, c := range clusters {
		types := make(map[string]int, len(c.Types))
		for t, n := range c.Types {
			types[string(t)] = n
		}
		fc.AddFeature(models.NewPointFeature(c.Lng, c.Lat, map[string]any{
			"cluster":     true,
			"point_count": c.Count,
			"types":       types,
			"bounds":      c.Bounds,
		}))
	}
	fc.Metadata = pageMetadata(page)
	return fc
}

// DistrictsToFeatureCollection skips districts without a location.
func DistrictsToFeatureCollection(districts []models.District) *models.FeatureCollection {
	fc := models.NewFeatureCollection()
	for _, d := range districts {
		if d.Location == nil || len(d.Location.Coordinates) != 2 {
			continue
		}
		fc.AddFeature(models.NewPointFeature(d.Location.Coordinates[0], d.Location.Coordinates[1], map[string]any{
			"id":            d.ID,
			"type":          models.EntityDistrict,
			"title":         d.Name,
			"slug":          nullable(d.Slug),
			"excerpt":       nullable(d.Overview),
			"image":         nullable(d.Image),
			"region":        nullable(d.Region),
			"village_count": d.VillageCount,
		}))
	}
	return fc
}
