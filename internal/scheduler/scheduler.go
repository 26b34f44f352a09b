package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campusHub/internal/lib/logger/sl"

	"github.com/robfig/cron/v3"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=StatusRefresher
type StatusRefresher interface {
	RefreshEventStatuses(ctx context.Context, now time.Time, window time.Duration) (closed, closingSoon int64, err error)
}

// Scheduler runs the periodic event lifecycle jobs.
type Scheduler struct {
	log       *slog.Logger
	cron      *cron.Cron
	refresher StatusRefresher
	window    time.Duration
	timeout   time.Duration
	now       func() time.Time
}

// New registers the status refresh job on spec, a six-field cron
// expression with seconds.
func New(log *slog.Logger, refresher StatusRefresher, spec string, window time.Duration) (*Scheduler, error) {
	s := &Scheduler{
		log: log.With(slog.String("component", "scheduler")),
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithSeconds(),
		),
		refresher: refresher,
		window:    window,
		timeout:   30 * time.Second,
		now:       time.Now,
	}

	if _, err := s.cron.AddFunc(spec, s.RefreshStatuses); err != nil {
		return nil, fmt.Errorf("scheduler.New: register status refresh: %w", err)
	}

	return s, nil
}

// RefreshStatuses closes events past their deadline and flags those whose
// deadline is within the window as closing soon.
func (s *Scheduler) RefreshStatuses() {
	const op = "scheduler.RefreshStatuses"

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	closed, closingSoon, err := s.refresher.RefreshEventStatuses(ctx, s.now(), s.window)
	if err != nil {
		s.log.Error("failed to refresh event statuses", slog.String("op", op), sl.Err(err))
		return
	}

	if closed > 0 || closingSoon > 0 {
		s.log.Info("event statuses refreshed",
			slog.Int64("closed", closed),
			slog.Int64("closing_soon", closingSoon),
		)
	}
}

func (s *Scheduler) Start() {
	s.log.Info("starting scheduler", slog.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}
