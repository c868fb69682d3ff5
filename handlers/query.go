package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"heritage-map/models"
	"heritage-map/utils/errors"
)

var validate = validator.New()

// ParseMapFilterQuery reads a MapFilterQuery from query parameters.
// Malformed or out-of-range values are rejected rather than ignored.
func ParseMapFilterQuery(values url.Values) (models.MapFilterQuery, error) {
	var q models.MapFilterQuery
	var err error

	if raw := values.Get("bbox"); raw != "" {
		if q.BBox, err = parseBBox(raw); err != nil {
			return q, err
		}
	}
	for _, t := range splitCSV(values.Get("types")) {
		q.Types = append(q.Types, models.EntityType(t))
	}
	q.Categories = splitCSV(values.Get("categories"))
	q.District = strings.TrimSpace(values.Get("district"))
	q.Featured = values.Get("featured") == "true"
	q.Cluster = values.Get("cluster") == "true"
	q.Search = strings.TrimSpace(values.Get("search"))

	if q.MinPrice, err = parseOptionalFloat(values, "minPrice"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = parseOptionalFloat(values, "maxPrice"); err != nil {
		return q, err
	}
	if q.MinRating, err = parseOptionalFloat(values, "minRating"); err != nil {
		return q, err
	}
	if q.Limit, err = parseInt(values, "limit"); err != nil {
		return q, err
	}
	if q.Offset, err = parseInt(values, "offset"); err != nil {
		return q, err
	}
	if raw := values.Get("zoom"); raw != "" {
		zoom, err := strconv.Atoi(raw)
		if err != nil {
			return q, errors.NewValidationError(fmt.Sprintf("zoom must be an integer, got %q", raw))
		}
		q.Zoom = &zoom
	}

	if err := validate.Struct(q); err != nil {
		return q, validationError(err)
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return q, errors.NewValidationError("minPrice must not exceed maxPrice")
	}

	q.Normalize()
	return q, nil
}

func parseBBox(raw string) (*models.BBox, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return nil, errors.NewValidationError("bbox must be minLng,minLat,maxLng,maxLat")
	}
	var vals [4]float64
	for i, p := range parts {
		v, err := parseFinite(p)
		if err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("bbox value %q is not a number", p))
		}
		vals[i] = v
	}
	return &models.BBox{MinLng: vals[0], MinLat: vals[1], MaxLng: vals[2], MaxLat: vals[3]}, nil
}

func parseOptionalFloat(values url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := parseFinite(raw)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("%s must be a number, got %q", key, raw))
	}
	return &v, nil
}

// parseFinite rejects NaN and infinities, which ParseFloat accepts.
func parseFinite(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return v, nil
}

func parseInt(values url.Values, key string) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError(fmt.Sprintf("%s must be an integer, got %q", key, raw))
	}
	return v, nil
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.NewValidationError(err.Error())
	}
	fe := verrs[0]
	return errors.NewValidationError(fmt.Sprintf("invalid %s: failed %q check", fieldName(fe.Namespace()), fe.Tag()))
}

// fieldName turns "MapFilterQuery.BBox.MinLat" into "bbox.minLat".
func fieldName(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p == "BBox" {
			parts[i] = "bbox"
			continue
		}
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

// writeJSON writes data as JSON with the given cache policy.
func writeJSON(w http.ResponseWriter, status int, cacheControl string, data any) {
	w.Header().Set("Content-Type", "application/json")
	if cacheControl != "" {
		w.Header().Set("Cache-Control", cacheControl)
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
