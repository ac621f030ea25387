package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Job is the work run once per day.
type Job func(ctx context.Context) error

// Scheduler runs a Job every day at a fixed local time.
type Scheduler struct {
	scheduler *gocron.Scheduler
	job       Job
	at        string
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a Scheduler that runs job daily at the "15:04" time at, in loc.
// Each run gets timeout to finish.
func New(job Job, at string, loc *time.Location, timeout time.Duration, logger *slog.Logger) *Scheduler {
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		job:       job,
		at:        at,
		timeout:   timeout,
		logger:    logger,
	}
}

// Start schedules the daily job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(1).Day().At(s.at).Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	if _, next := s.scheduler.NextRun(); !next.IsZero() {
		s.logger.Info("scheduler: started", "next_run", next)
	}
	return nil
}

// run is one execution of the job. Failures are logged and the schedule goes on.
func (s *Scheduler) run() {
	s.logger.Info("scheduler: running daily check")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.job(ctx); err != nil {
		s.logger.Error("scheduler: daily check failed", "err", err)
		return
	}
	s.logger.Info("scheduler: completed daily check")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
