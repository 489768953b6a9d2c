// Package jobs provides scheduled background tasks for the ordering system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the ordering service.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Drains the transactional outbox, publishing pending
// events to the broker and marking them published
// 2. OrderProcessingJob - Settles new orders against the deliverable-country
// list and queues notification events for rejected payments
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(
//		relayHandler, processHandler, notifyHandler,
//		locker, relaySchedule, processingSchedule, logger,
//	)
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
// Schedules are six-field cron expressions ("* * * * * *" runs every second)
// supplied through configuration, so the relay cadence can be tuned
// independently of order settlement.
//
// # Concurrency
//
// Every tick runs under a TickLocker advisory lock, so when the service is
// scaled out only one instance executes a given tick. A tick skipped because
// another instance holds the lock is not an error.
//
// # Error Handling
//
// Tick failures are logged and the next tick retries; the outbox guarantees
// no event is lost across failed ticks.
package jobs
