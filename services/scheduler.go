package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
)

const refreshTimeout = 2 * time.Minute

// RefreshScheduler periodically rebuilds the POI cache on a cron schedule.
type RefreshScheduler struct {
	cron    *cron.Cron
	service *MapService
	logger  arbor.ILogger
}

func NewRefreshScheduler(service *MapService, logger arbor.ILogger) *RefreshScheduler {
	return &RefreshScheduler{
		cron:    cron.New(),
		service: service,
		logger:  logger,
	}
}

// Start registers schedule and starts the cron runner. Overlapping runs
// are skipped.
func (s *RefreshScheduler) Start(schedule string) error {
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(s.run))
	if _, err := s.cron.AddJob(schedule, job); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	s.logger.Info().Str("schedule", schedule).Msg("POI cache refresh scheduled")
	return nil
}

func (s *RefreshScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	if _, err := s.service.RefreshCache(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Scheduled POI cache refresh failed")
	}
}

// Stop stops the runner and waits for a running refresh to finish.
func (s *RefreshScheduler) Stop() {
	<-s.cron.Stop().Done()
}
