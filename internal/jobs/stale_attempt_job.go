package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderintegration/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StaleAttemptJob periodically reports integration attempts that stayed open
// past the configured threshold. It only observes: resolving attempts is the
// webhook's job, so stale ones are surfaced for operators instead of retried.
type StaleAttemptJob struct {
	handler   queries.GetStaleAttemptsQueryHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleAttemptJob creates a job that checks for stale open attempts every
// minute. Attempts untouched for longer than threshold are logged.
func NewStaleAttemptJob(
	handler queries.GetStaleAttemptsQueryHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *StaleAttemptJob {
	return &StaleAttemptJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stale_attempt_job"),
	}
}

// Start begins the stale attempt job to run every minute.
func (j *StaleAttemptJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		query, err := queries.NewGetStaleAttemptsQuery(j.threshold, 0)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale attempt job failed to build query", "error", err)
			return
		}

		attempts, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale attempt job failed", "error", err)
			return
		}

		if len(attempts) == 0 {
			return
		}

		j.logger.WarnContext(ctx, "Open integration attempts exceeded staleness threshold",
			"count", len(attempts),
			"threshold", j.threshold.String())

		for _, attempt := range attempts {
			j.logger.WarnContext(ctx, "Stale integration attempt",
				"attemptId", attempt.ID.String(),
				"orderId", attempt.OrderID.String(),
				"orderNumber", attempt.OrderNumber,
				"status", attempt.Status.String(),
				"attempts", attempt.Attempts,
				"lastAttemptAt", attempt.LastAttemptAt,
				"correlationId", attempt.CorrelationID)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale attempt job started (running every minute)",
		"threshold", j.threshold.String())
	return nil
}

// Stop stops the stale attempt job.
func (j *StaleAttemptJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale attempt job stopped")
}
