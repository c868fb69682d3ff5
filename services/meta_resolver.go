package services

import (
	"strings"
	"unicode/utf8"

	"heritage-map/models"
)

const (
	MaxTitleLength       = 70
	MaxDescriptionLength = 160
	ellipsis             = "..."
)

// HardcodedSiteDefaults backs every field a stored or configured
// SiteDefaults leaves empty.
var HardcodedSiteDefaults = models.SiteDefaults{
	SiteName:           "Hum Pahadi Haii",
	SiteOrigin:         "https://humpahadihaii.in",
	DefaultTitle:       "Hum Pahadi Haii",
	DefaultDescription: "Discover the villages, culture and heritage of Uttarakhand.",
	Locale:             "en_IN",
	BrandKeywords:      []string{"Hum Pahadi"},
}

// ResolveInput is everything known about the shared entity. Entity and
// Override are nil on a lookup miss.
type ResolveInput struct {
	EntityType    models.EntityType
	Entity        *models.EntityContent
	Override      *models.MetaOverride
	CanonicalPath string
}

// Resolve walks the fallback chain for each field: usable override, then
// the entity's SEO fields, then its content fields, then site defaults.
func Resolve(in ResolveInput, defaults models.SiteDefaults) models.ResolvedMeta {
	site := defaults.Merge(HardcodedSiteDefaults)
	origin := strings.TrimRight(site.SiteOrigin, "/")

	override := in.Override
	if override != nil && override.UseDefault {
		override = nil
	}
	entity := in.Entity
	if entity == nil {
		entity = &models.EntityContent{}
	}
	var ov models.MetaOverride
	if override != nil {
		ov = *override
	}

	title := firstNonEmpty(ov.Title, entity.SEOTitle, entity.Title, entity.Name)
	if title != "" {
		title = withSiteSuffix(title, site)
	} else {
		title = site.DefaultTitle
	}

	description := firstNonEmpty(
		ov.Description,
		entity.SEODescription,
		entity.Description,
		entity.Tagline,
		entity.Excerpt,
		entity.ShortDescription,
		entity.Overview,
		site.DefaultDescription,
	)

	image := firstNonEmpty(
		ov.ImageURL,
		entity.SEOImageURL,
		entity.ImageURL,
		entity.ThumbnailImageURL,
		entity.BannerImage,
		entity.CoverImageURL,
		site.DefaultImage,
	)
	image = AbsoluteURL(image, origin)

	twitterCard := "summary"
	if image != "" {
		twitterCard = "summary_large_image"
	}

	return models.ResolvedMeta{
		Title:        Truncate(strings.TrimSpace(title), MaxTitleLength),
		Description:  Truncate(collapseWhitespace(description), MaxDescriptionLength),
		Image:        image,
		CanonicalURL: canonicalURL(origin, in.CanonicalPath),
		OGType:       ogType(in.EntityType),
		TwitterCard:  twitterCard,
		TwitterSite:  site.TwitterSite,
		SiteName:     site.SiteName,
		Locale:       site.Locale,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// withSiteSuffix appends " | siteName" unless the title already carries
// the brand.
func withSiteSuffix(title string, site models.SiteDefaults) string {
	lower := strings.ToLower(title)
	keywords := append([]string{site.SiteName}, site.BrandKeywords...)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return title
		}
	}
	return title + " | " + site.SiteName
}

// Truncate cuts s to at most max runes, ending in "..." when shortened.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	cut := strings.TrimRight(string(runes[:max-len(ellipsis)]), " \t\n,.;:-|")
	return cut + ellipsis
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// AbsoluteURL makes root-relative and protocol-relative image paths
// absolute against origin. Empty input stays empty.
func AbsoluteURL(raw, origin string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return raw
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(raw, "/"):
		return origin + raw
	default:
		return origin + "/" + raw
	}
}

func canonicalURL(origin, path string) string {
	if path == "" {
		return origin + "/"
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return origin + path
}

func ogType(t models.EntityType) string {
	switch t {
	case models.EntityListing, models.EntityPackage:
		return "product"
	default:
		return "website"
	}
}
