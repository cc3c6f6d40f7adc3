package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"orderintegration/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleAttemptJob *StaleAttemptJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the stale attempt query handler and threshold to wire up the monitor.
func NewJobManager(
	staleAttemptsHandler queries.GetStaleAttemptsQueryHandler,
	staleThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleAttemptJob: NewStaleAttemptJob(staleAttemptsHandler, staleThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleAttemptJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale attempt job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleAttemptJob.Stop()
}
