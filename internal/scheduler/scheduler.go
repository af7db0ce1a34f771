package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/relaykit/feishu-relay/internal/logging"
)

// jobTimeout bounds a single job run. A webhook send worst-cases at a few
// attempts plus backoff, so this is generous.
const jobTimeout = 2 * time.Minute

// Job is a unit of scheduled work.
type Job interface {
	// Execute runs the job.
	Execute(ctx context.Context) error

	// Name identifies the job in logs.
	Name() string
}

// Scheduler runs jobs on standard cron expressions.
type Scheduler struct {
	cron   *cron.Cron
	jobs   map[string]Job
	logger *logging.Logger
	mu     sync.RWMutex
}

// New creates a scheduler.
func New(logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Scheduler{
		cron:   cron.New(),
		jobs:   make(map[string]Job),
		logger: logger.WithComponent("scheduler"),
	}
}

// AddJob registers a job under a cron expression.
func (s *Scheduler) AddJob(cronExpr string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := cron.ParseStandard(cronExpr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}

	if _, err := s.cron.AddFunc(cronExpr, func() {
		s.executeJob(job)
	}); err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}
	s.jobs[job.Name()] = job

	s.logger.Info().
		Str("job", job.Name()).
		Str("schedule", cronExpr).
		Msg("scheduled job registered")
	return nil
}

// Start begins dispatching jobs.
func (s *Scheduler) Start() {
	s.mu.RLock()
	jobCount := len(s.jobs)
	s.mu.RUnlock()

	s.logger.Info().Int("jobs", jobCount).Msg("starting scheduler")
	s.cron.Start()
}

// Stop halts dispatch and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("scheduler stopped")
}

// Jobs returns the names of registered jobs.
func (s *Scheduler) Jobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	return names
}

func (s *Scheduler) executeJob(job Job) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	err := job.Execute(ctx)
	duration := time.Since(start)

	if err != nil {
		s.logger.Error().
			Err(err).
			Str("job", job.Name()).
			Dur("duration", duration).
			Msg("scheduled job failed")
		return
	}
	s.logger.Info().
		Str("job", job.Name()).
		Dur("duration", duration).
		Msg("scheduled job completed")
}
