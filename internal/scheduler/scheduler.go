package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/hillbillynomad/powder/internal/logger"
	"github.com/hillbillynomad/powder/internal/resort"
	"github.com/hillbillynomad/powder/internal/snowfall"
	"github.com/hillbillynomad/powder/internal/store"
)

// Scheduler periodically refreshes forecast snapshots for the tracked
// resorts so the HTTP API can serve them without a live fetch.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *snowfall.Service
	store     *store.MemoryStore
	resorts   []resort.Resort
	interval  time.Duration
	days      int
}

// New creates a Scheduler refreshing the given resorts every interval
// with the given forecast horizon.
func New(resorts []resort.Resort, interval time.Duration, days int, service *snowfall.Service, st *store.MemoryStore) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		store:     st,
		resorts:   resorts,
		interval:  interval,
		days:      days,
	}
}

// Start schedules the refresh job, runs it once immediately, and
// starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.resorts) == 0 {
		logger.Infof("scheduler: no tracked resorts; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 360
	}

	_, err := s.scheduler.Every(minutes).Minutes().StartImmediately().Do(s.refreshAll)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) refreshAll() {
	logger.Infof("scheduler: refreshing forecasts for %d resorts", len(s.resorts))

	for _, rst := range s.resorts {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		days := s.service.Forecast(ctx, rst, s.days)
		cancel()

		if len(days) == 0 {
			logger.Warnf("scheduler: no forecast data for %s; keeping previous snapshot", rst.Slug())
			continue
		}

		s.store.Save(store.ForecastSnapshot{
			ResortSlug: rst.Slug(),
			FetchedAt:  time.Now().UTC(),
			Horizon:    s.days,
			Days:       days,
		})
	}

	logger.Infof("scheduler: refresh complete")
}
