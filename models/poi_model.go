package models

type EntityType string

const (
	EntityVillage  EntityType = "village"
	EntityProvider EntityType = "provider"
	EntityListing  EntityType = "listing"
	EntityPackage  EntityType = "package"
	EntityPlace    EntityType = "place"
	EntityEvent    EntityType = "event"
	EntityDistrict EntityType = "district"
)

// DefaultMapTypes are the entity types shown on the map when the caller
// does not ask for specific ones. Districts have their own endpoint.
var DefaultMapTypes = []EntityType{
	EntityVillage, EntityProvider, EntityListing, EntityPackage, EntityPlace, EntityEvent,
}

var knownEntityTypes = map[EntityType]bool{
	EntityVillage: true, EntityProvider: true, EntityListing: true, EntityPackage: true,
	EntityPlace: true, EntityEvent: true, EntityDistrict: true,
}

func (t EntityType) Valid() bool {
	return knownEntityTypes[t]
}

type POI struct {
	ID           string            `json:"id" bson:"_id"`
	Type         EntityType        `json:"type" bson:"entity_type"`
	Title        string            `json:"title" bson:"title"`
	Slug         string            `json:"slug,omitempty" bson:"slug,omitempty"`
	Excerpt      string            `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	Image        string            `json:"image,omitempty" bson:"image,omitempty"`
	Category     string            `json:"category,omitempty" bson:"category,omitempty"`
	DistrictID   string            `json:"district_id,omitempty" bson:"district_id,omitempty"`
	DistrictName string            `json:"district_name,omitempty" bson:"district_name,omitempty"`
	VillageName  string            `json:"village_name,omitempty" bson:"village_name,omitempty"`
	Price        *float64          `json:"price,omitempty" bson:"price,omitempty"`
	Rating       *float64          `json:"rating,omitempty" bson:"rating,omitempty"`
	Featured     bool              `json:"featured" bson:"featured"`
	Active       bool              `json:"active" bson:"active"`
	Tags         []string          `json:"tags,omitempty" bson:"tags,omitempty"`
	Location     GeoPoint          `json:"location" bson:"location"`
	Extra        map[string]string `json:"extra,omitempty" bson:"extra,omitempty"`
}

// Coordinates returns the POI position as (lng, lat). ok is false when the
// stored location is missing or outside WGS84 ranges.
func (p POI) Coordinates() (lng, lat float64, ok bool) {
	if len(p.Location.Coordinates) != 2 {
		return 0, 0, false
	}
	lng, lat = p.Location.Coordinates[0], p.Location.Coordinates[1]
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, false
	}
	return lng, lat, true
}

type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// POIPage is a filtered, sorted and paginated slice of POIs. Total is the
// number of matches before offset/limit were applied.
type POIPage struct {
	POIs   []POI `json:"pois"`
	Total  int   `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

type Bounds struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLng float64 `json:"minLng"`
	MaxLng float64 `json:"maxLng"`
}

func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

type Cluster struct {
	Lat    float64            `json:"lat"`
	Lng    float64            `json:"lng"`
	Count  int                `json:"count"`
	Types  map[EntityType]int `json:"types"`
	Bounds Bounds             `json:"bounds"`
}

type SearchResult struct {
	ID       string     `json:"id"`
	Type     EntityType `json:"type"`
	Title    string     `json:"title"`
	Slug     string     `json:"slug,omitempty"`
	Image    string     `json:"image,omitempty"`
	District string     `json:"district,omitempty"`
	Lat      float64    `json:"lat"`
	Lng      float64    `json:"lng"`
}
