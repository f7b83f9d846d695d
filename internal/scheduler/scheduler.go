package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"forecastd/internal/forecast"
)

// Scheduler periodically re-fetches forecasts for configured queries so
// their cache entries stay warm. Each run forces a refresh, which
// overwrites whatever the cache holds.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *forecast.Service
	queries   []string
	interval  time.Duration
}

// New creates a new Scheduler.
func New(queries []string, interval time.Duration, service *forecast.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		queries:   queries,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.queries) == 0 {
		log.Println("scheduler: no prefetch queries configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 25
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running forecast prefetch job")

		var wg sync.WaitGroup
		for _, query := range s.queries {
			query := query
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if result := s.service.Fetch(ctx, query, true); result.IsError() {
					log.Printf("scheduler: prefetch failed for %q: %s", query, result.ErrorMessage)
				}
			}()
		}
		wg.Wait()
		log.Println("scheduler: completed forecast prefetch job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
