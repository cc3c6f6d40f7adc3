// Package jobs provides scheduled background tasks for the order integration
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the ERP integration.
//
// # Available Jobs
//
// 1. StaleAttemptJob - Runs every minute to surface integration attempts that
// stayed open (Pending or Sent) past a configured threshold. The job only
// logs: open attempts are resolved by ERP webhooks, never retried here.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(staleAttemptsHandler, 30*time.Minute, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Query failures are logged and the job keeps its schedule; a failing run
// never stops the monitor.
package jobs
