package services

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"heritage-map/models"
	"heritage-map/utils/errors"
)

// DataSource returns POIs matching a normalized query, already sorted and
// paginated.
type DataSource interface {
	Name() string
	FetchPOIs(ctx context.Context, q models.MapFilterQuery) (models.POIPage, error)
}

// FailoverSource reads from Primary and, on any error, answers from
// Fallback instead. There is exactly one fallback attempt.
type FailoverSource struct {
	Primary  DataSource
	Fallback DataSource
	logger   arbor.ILogger
}

func NewFailoverSource(primary, fallback DataSource, logger arbor.ILogger) *FailoverSource {
	return &FailoverSource{Primary: primary, Fallback: fallback, logger: logger}
}

func (s *FailoverSource) Name() string {
	return fmt.Sprintf("%s>%s", s.Primary.Name(), s.Fallback.Name())
}

func (s *FailoverSource) FetchPOIs(ctx context.Context, q models.MapFilterQuery) (models.POIPage, error) {
	page, err := s.Primary.FetchPOIs(ctx, q)
	if err == nil {
		return page, nil
	}
	s.logger.Warn().
		Err(err).
		Str("action", "fetch_pois").
		Str("primary", s.Primary.Name()).
		Str("fallback", s.Fallback.Name()).
		Msg("Primary POI source failed, using fallback")

	page, fallbackErr := s.Fallback.FetchPOIs(ctx, q)
	if fallbackErr != nil {
		s.logger.Error().
			Err(fallbackErr).
			Str("action", "fetch_pois").
			Str("source", s.Fallback.Name()).
			Msg("Fallback POI source failed")
		return models.POIPage{}, errors.NewDataSourceError(s.Name(),
			fmt.Errorf("primary: %v; fallback: %w", err, fallbackErr))
	}
	return page, nil
}
