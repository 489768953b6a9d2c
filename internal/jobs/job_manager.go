package jobs

import (
	"fmt"
	"log/slog"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob     *OutboxRelayJob
	orderProcessingJob *OrderProcessingJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	relayHandler commands.RelayOutboxCommandHandler,
	processHandler commands.ProcessNewOrdersCommandHandler,
	notifyHandler commands.NotifyRejectedPaymentsCommandHandler,
	locker ports.TickLocker,
	relaySchedule string,
	processingSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxRelayJob:     NewOutboxRelayJob(relayHandler, locker, relaySchedule, logger),
		orderProcessingJob: NewOrderProcessingJob(processHandler, notifyHandler, locker, processingSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.orderProcessingJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start order processing job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderProcessingJob.Stop()
	jm.outboxRelayJob.Stop()
}
