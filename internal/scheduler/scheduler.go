// Package scheduler runs the worker's periodic jobs on cron schedules.
package scheduler

import (
	"github.com/robfig/cron/v3"

	applog "smartbudget/internal/log"
)

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs
type Scheduler struct {
	cron   *cron.Cron
	logger *applog.Logger
}

// New creates a new scheduler
func New(logger *applog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.WithComponent(applog.ComponentScheduler),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

// AddJob registers a job with a cron schedule (seconds field included,
// e.g. "0 0 9 * * *" for 9 AM daily).
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := job.Run(); err != nil {
			s.logger.Error("Job failed", "job", job.Name(), applog.FieldError, err)
			return
		}
		s.logger.Debug("Job completed", "job", job.Name())
	})
	if err != nil {
		return err
	}

	s.logger.Info("Job registered", "job", job.Name(), "schedule", schedule)
	return nil
}

// RunNow executes a job immediately, outside its schedule.
func (s *Scheduler) RunNow(job Job) error {
	s.logger.Info("Running job immediately", "job", job.Name())
	return job.Run()
}
