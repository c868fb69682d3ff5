package models

const (
	DefaultPOILimit    = 200
	MaxPOILimit        = 500
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
	MinSearchLength    = 2
	ClusterZoomCutoff  = 10
)

// BBox is a [minLng, minLat, maxLng, maxLat] envelope, inclusive on every edge.
type BBox struct {
	MinLng float64 `json:"minLng" validate:"gte=-180,lte=180,ltefield=MaxLng"`
	MinLat float64 `json:"minLat" validate:"gte=-90,lte=90,ltefield=MaxLat"`
	MaxLng float64 `json:"maxLng" validate:"gte=-180,lte=180"`
	MaxLat float64 `json:"maxLat" validate:"gte=-90,lte=90"`
}

func (b BBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

type MapFilterQuery struct {
	BBox       *BBox        `json:"bbox,omitempty" validate:"omitempty"`
	Types      []EntityType `json:"types" validate:"dive,oneof=village provider listing package place event district"`
	Categories []string     `json:"categories,omitempty"`
	District   string       `json:"district,omitempty"`
	Featured   bool         `json:"featured,omitempty"`
	MinPrice   *float64     `json:"minPrice,omitempty" validate:"omitempty,gte=0"`
	MaxPrice   *float64     `json:"maxPrice,omitempty" validate:"omitempty,gte=0"`
	MinRating  *float64     `json:"minRating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Search     string       `json:"search,omitempty"`
	Limit      int          `json:"limit" validate:"gte=0"`
	Offset     int          `json:"offset" validate:"gte=0"`
	Cluster    bool         `json:"cluster,omitempty"`
	Zoom       *int         `json:"zoom,omitempty" validate:"omitempty,gte=0,lte=20"`
}

// Normalize fills defaults and applies the hard limit cap.
func (q *MapFilterQuery) Normalize() {
	if len(q.Types) == 0 {
		q.Types = append([]EntityType(nil), DefaultMapTypes...)
	}
	q.Limit = ClampLimit(q.Limit, DefaultPOILimit, MaxPOILimit)
	if q.Offset < 0 {
		q.Offset = 0
	}
}

// ClampLimit returns def for non-positive values and max for anything above it.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
