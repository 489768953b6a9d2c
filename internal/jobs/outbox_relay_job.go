package jobs

import (
	"context"
	"errors"
	"log/slog"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// outboxRelayLockKey identifies the advisory lock that serializes relay
// ticks across service instances.
const outboxRelayLockKey int64 = 1001

// OutboxRelayJob manages the scheduled draining of the outbox.
// Each tick publishes pending events to the broker and marks them published.
type OutboxRelayJob struct {
	handler  commands.RelayOutboxCommandHandler
	locker   ports.TickLocker
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxRelayJob creates a new job for relaying outbox events.
// The schedule is a six-field cron expression; "* * * * * *" runs every second.
func NewOutboxRelayJob(
	handler commands.RelayOutboxCommandHandler,
	locker ports.TickLocker,
	schedule string,
	logger *slog.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:  handler,
		locker:   locker,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "outbox_relay_job"),
	}
}

// Start begins the outbox relay job on its schedule.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		err := j.locker.WithLock(ctx, outboxRelayLockKey, func(ctx context.Context) error {
			return j.handler.Handle(ctx, commands.NewRelayOutboxCommand())
		})
		if err != nil {
			// Another instance holding the lock already covers this tick.
			if errors.Is(err, ports.ErrLockNotAcquired) {
				return
			}
			j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Stop stops the outbox relay job.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
