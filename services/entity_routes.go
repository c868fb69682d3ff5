package services

import (
	"net/url"
	"strings"

	"heritage-map/models"
)

// EntityRoute ties an entity type to its collection and public page URL.
type EntityRoute struct {
	Type       models.EntityType
	Collection string
	PathPrefix string
	BySlug     bool // page URLs carry the slug rather than the id
}

var entityRoutes = []EntityRoute{
	{Type: models.EntityVillage, Collection: "villages", PathPrefix: "/villages/", BySlug: true},
	{Type: models.EntityDistrict, Collection: "districts", PathPrefix: "/districts/", BySlug: true},
	{Type: models.EntityProvider, Collection: "tourism_providers", PathPrefix: "/marketplace/provider/"},
	{Type: models.EntityListing, Collection: "tourism_listings", PathPrefix: "/marketplace/listing/"},
	{Type: models.EntityPackage, Collection: "travel_packages", PathPrefix: "/travel-packages/", BySlug: true},
	{Type: models.EntityPlace, Collection: "places", PathPrefix: "/places/", BySlug: true},
	{Type: models.EntityEvent, Collection: "events", PathPrefix: "/events/", BySlug: true},
}

func RouteFor(t models.EntityType) (EntityRoute, bool) {
	for _, r := range entityRoutes {
		if r.Type == t {
			return r, true
		}
	}
	return EntityRoute{}, false
}

// PagePath is the public path of an entity page.
func (r EntityRoute) PagePath(e *models.EntityContent, fallbackID string) string {
	key := fallbackID
	if e != nil {
		key = e.ID
		if r.BySlug && e.Slug != "" {
			key = e.Slug
		}
	}
	return r.PathPrefix + url.PathEscape(key)
}

// MatchPagePath maps a site page path such as /villages/munsiyari to the
// entity type and identifier it shows.
func MatchPagePath(path string) (models.EntityType, string, bool) {
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}
	for _, r := range entityRoutes {
		if !strings.HasPrefix(path, r.PathPrefix) {
			continue
		}
		rest := strings.TrimPrefix(path, r.PathPrefix)
		if rest == "" || strings.Contains(rest, "/") {
			continue
		}
		id, err := url.PathUnescape(rest)
		if err != nil {
			return "", "", false
		}
		return r.Type, id, true
	}
	return "", "", false
}
