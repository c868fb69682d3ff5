package models

// ResolvedMeta is what a social platform sees when a page is shared.
type ResolvedMeta struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Image        string `json:"image,omitempty"`
	CanonicalURL string `json:"canonicalUrl"`
	OGType       string `json:"ogType"`
	TwitterCard  string `json:"twitterCard"`
	TwitterSite  string `json:"twitterSite,omitempty"`
	SiteName     string `json:"siteName"`
	Locale       string `json:"locale"`
}

// SiteDefaults is the site-wide share configuration.
type SiteDefaults struct {
	SiteName           string   `json:"site_name" bson:"site_name" toml:"site_name"`
	SiteOrigin         string   `json:"site_origin" bson:"site_origin" toml:"site_origin"`
	DefaultTitle       string   `json:"default_title" bson:"default_title" toml:"default_title"`
	DefaultDescription string   `json:"default_description" bson:"default_description" toml:"default_description"`
	DefaultImage       string   `json:"default_image_url" bson:"default_image_url" toml:"default_image_url"`
	TwitterSite        string   `json:"twitter_site" bson:"twitter_site" toml:"twitter_site"`
	Locale             string   `json:"locale" bson:"locale" toml:"locale"`
	BrandKeywords      []string `json:"brand_keywords" bson:"brand_keywords" toml:"brand_keywords"`
}

// Merge returns d with every empty field filled from fallback.
func (d SiteDefaults) Merge(fallback SiteDefaults) SiteDefaults {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	out := SiteDefaults{
		SiteName:           pick(d.SiteName, fallback.SiteName),
		SiteOrigin:         pick(d.SiteOrigin, fallback.SiteOrigin),
		DefaultTitle:       pick(d.DefaultTitle, fallback.DefaultTitle),
		DefaultDescription: pick(d.DefaultDescription, fallback.DefaultDescription),
		DefaultImage:       pick(d.DefaultImage, fallback.DefaultImage),
		TwitterSite:        pick(d.TwitterSite, fallback.TwitterSite),
		Locale:             pick(d.Locale, fallback.Locale),
		BrandKeywords:      d.BrandKeywords,
	}
	if len(out.BrandKeywords) == 0 {
		out.BrandKeywords = fallback.BrandKeywords
	}
	return out
}

// MetaOverride is a manual per-entity share override.
type MetaOverride struct {
	EntityType  EntityType `json:"entity_type" bson:"entity_type"`
	EntityID    string     `json:"entity_id" bson:"entity_id"`
	Title       string     `json:"title,omitempty" bson:"title,omitempty"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty" bson:"image_url,omitempty"`
	UseDefault  bool       `json:"use_default" bson:"use_default"`
}

// EntityContent holds the content fields of an entity that can feed share
// metadata. Only the fields a given collection has are populated.
type EntityContent struct {
	ID                string `bson:"_id"`
	Slug              string `bson:"slug,omitempty"`
	Name              string `bson:"name,omitempty"`
	Title             string `bson:"title,omitempty"`
	SEOTitle          string `bson:"seo_title,omitempty"`
	SEODescription    string `bson:"seo_description,omitempty"`
	SEOImageURL       string `bson:"seo_image_url,omitempty"`
	Description       string `bson:"description,omitempty"`
	Tagline           string `bson:"tagline,omitempty"`
	Excerpt           string `bson:"excerpt,omitempty"`
	ShortDescription  string `bson:"short_description,omitempty"`
	Overview          string `bson:"overview,omitempty"`
	ImageURL          string `bson:"image_url,omitempty"`
	ThumbnailImageURL string `bson:"thumbnail_image_url,omitempty"`
	BannerImage       string `bson:"banner_image,omitempty"`
	CoverImageURL     string `bson:"cover_image_url,omitempty"`
}
