// Package jobs provides scheduled background tasks for the ordering system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by order management.
//
// # Available Jobs
//
// 1. CancelReviewReminderJob - Periodically re-notifies admins about orders
// that have been awaiting cancellation review longer than the configured age.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(reminderJob)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reminder job runs on a configurable six-field cron expression
// (seconds included), every ten minutes in the default configuration.
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. Per-order failures
// (dedup store unavailable, notification send errors) never abort the
// remaining orders of a pass.
package jobs
