package models

// Point is a GeoJSON position, always [lng, lat].
type Point [2]float64

func (p Point) Lng() float64 { return p[0] }

func (p Point) Lat() float64 { return p[1] }

type Geometry struct {
	Type        string `json:"type"`
	Coordinates Point  `json:"coordinates"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// CollectionMetadata is a non-standard member reporting pagination.
type CollectionMetadata struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type FeatureCollection struct {
	Type     string              `json:"type"`
	Features []Feature           `json:"features"`
	Metadata *CollectionMetadata `json:"metadata,omitempty"`
}

func NewFeatureCollection() *FeatureCollection {
	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: []Feature{},
	}
}

func (fc *FeatureCollection) AddFeature(f Feature) {
	fc.Features = append(fc.Features, f)
}

func NewPointFeature(lng, lat float64, props map[string]any) Feature {
	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: Point{lng, lat},
		},
		Properties: props,
	}
}
