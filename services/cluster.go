package services

import (
	"math"

	"heritage-map/models"
)

// ShouldCluster reports whether q asks for clustering at a zoom level low
// enough to apply it.
func ShouldCluster(q models.MapFilterQuery) bool {
	return q.Cluster && q.Zoom != nil && *q.Zoom < models.ClusterZoomCutoff
}

// GridSize returns the cell edge in degrees for a zoom level. Cells are
// degree-based squares, not projected tiles, so they shrink in ground
// distance away from the equator.
func GridSize(zoom int) float64 {
	if zoom < 0 {
		zoom = 0
	}
	if zoom > 8 {
		zoom = 8
	}
	return math.Pow(2, float64(8-zoom))
}

type cellKey struct {
	x, y int64
}

// ClusterPOIs buckets pois into grid cells for the zoom level and folds each
// cell into one Cluster. Clusters come out in the order their cells were
// first seen. POIs without a usable location are skipped.
func ClusterPOIs(pois []models.POI, zoom int) []models.Cluster {
	size := GridSize(zoom)
	index := make(map[cellKey]int)
	clusters := make([]models.Cluster, 0)

	for _, poi := range pois {
		lng, lat, ok := poi.Coordinates()
		if !ok {
			continue
		}
		key := cellKey{
			x: int64(math.Floor(lng / size)),
			y: int64(math.Floor(lat / size)),
		}

		i, seen := index[key]
		if !seen {
			index[key] = len(clusters)
			clusters = append(clusters, models.Cluster{
				Lat:    lat,
				Lng:    lng,
				Count:  1,
				Types:  map[models.EntityType]int{poi.Type: 1},
				Bounds: models.Bounds{MinLat: lat, MaxLat: lat, MinLng: lng, MaxLng: lng},
			})
			continue
		}

		c := &clusters[i]
		c.Count++
		n := float64(c.Count)
		c.Lat = (c.Lat*(n-1) + lat) / n
		c.Lng = (c.Lng*(n-1) + lng) / n
		c.Types[poi.Type]++
		c.Bounds.MinLat = math.Min(c.Bounds.MinLat, lat)
		c.Bounds.MaxLat = math.Max(c.Bounds.MaxLat, lat)
		c.Bounds.MinLng = math.Min(c.Bounds.MinLng, lng)
		c.Bounds.MaxLng = math.Max(c.Bounds.MaxLng, lng)
	}
	return clusters
}
