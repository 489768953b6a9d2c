package jobs

import (
	"context"
	"errors"
	"log/slog"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// orderProcessingLockKey identifies the advisory lock that serializes
// processing ticks across service instances.
const orderProcessingLockKey int64 = 1002

// OrderProcessingJob manages the scheduled settlement of orders.
// Each tick settles new orders against the deliverable-country list and
// queues notifications for rejected payments.
type OrderProcessingJob struct {
	processHandler commands.ProcessNewOrdersCommandHandler
	notifyHandler  commands.NotifyRejectedPaymentsCommandHandler
	locker         ports.TickLocker
	schedule       string
	cron           *cron.Cron
	logger         *slog.Logger
}

// NewOrderProcessingJob creates a new job for settling orders.
// The schedule is a six-field cron expression.
func NewOrderProcessingJob(
	processHandler commands.ProcessNewOrdersCommandHandler,
	notifyHandler commands.NotifyRejectedPaymentsCommandHandler,
	locker ports.TickLocker,
	schedule string,
	logger *slog.Logger,
) *OrderProcessingJob {
	return &OrderProcessingJob{
		processHandler: processHandler,
		notifyHandler:  notifyHandler,
		locker:         locker,
		schedule:       schedule,
		cron:           cron.New(cron.WithSeconds()),
		logger:         logger.With("component", "order_processing_job"),
	}
}

// Start begins the order processing job on its schedule.
func (j *OrderProcessingJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		err := j.locker.WithLock(ctx, orderProcessingLockKey, func(ctx context.Context) error {
			if err := j.processHandler.Handle(ctx, commands.NewProcessNewOrdersCommand()); err != nil {
				return err
			}
			return j.notifyHandler.Handle(ctx, commands.NewNotifyRejectedPaymentsCommand())
		})
		if err != nil {
			if errors.Is(err, ports.ErrLockNotAcquired) {
				return
			}
			j.logger.ErrorContext(ctx, "Order processing job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order processing job started", "schedule", j.schedule)
	return nil
}

// Stop stops the order processing job.
func (j *OrderProcessingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order processing job stopped")
}
