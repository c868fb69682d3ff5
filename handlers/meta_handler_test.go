package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-map/models"
	"heritage-map/services"
)

func metaFixture() *fixture {
	f := newFixture()
	f.entities.entities["village/v1"] = &models.EntityContent{ID: "v1", Slug: "bageshwar", Name: "Bageshwar"}
	return f
}

func jsonRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Accept", "application/json")
	return req
}

func TestResolveEntity_JSON(t *testing.T) {
	rec := metaFixture().do(jsonRequest("/api/meta/resolve/village/bageshwar"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
	assert.Equal(t, []string{"Accept"}, rec.Header().Values("Vary"))
	meta := decode[models.ResolvedMeta](t, rec)
	assert.Equal(t, "Bageshwar | Hum Pahadi Haii", meta.Title)
	assert.Equal(t, "https://humpahadihaii.in/villages/bageshwar", meta.CanonicalURL)
}

func TestResolveEntity_MissingIsNotAnError(t *testing.T) {
	rec := metaFixture().do(jsonRequest("/api/meta/resolve/listing/3f1b2c4d-0000-4000-8000-000000000000"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Values("Vary"), "Accept")
	meta := decode[models.ResolvedMeta](t, rec)
	assert.Equal(t, services.HardcodedSiteDefaults.DefaultTitle, meta.Title)
	assert.Equal(t, services.HardcodedSiteDefaults.DefaultDescription, meta.Description)
}

func TestResolveEntity_HTMLForCrawlers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/meta/resolve/village/v1", nil)
	req.Header.Set("User-Agent", "facebookexternalhit/1.1")

	rec := metaFixture().do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Accept", rec.Header().Get("Vary"))
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	title, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
	assert.Equal(t, "Bageshwar | Hum Pahadi Haii", title)
}

func TestResolveURL(t *testing.T) {
	rec := metaFixture().do(jsonRequest("/api/meta/resolve?url=https%3A%2F%2Fhumpahadihaii.in%2Fvillages%2Fbageshwar"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bageshwar | Hum Pahadi Haii", decode[models.ResolvedMeta](t, rec).Title)

	rec = metaFixture().do(jsonRequest("/api/meta/resolve"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.HardcodedSiteDefaults.DefaultTitle, decode[models.ResolvedMeta](t, rec).Title)
}
