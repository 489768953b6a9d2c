package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	inkafka "ordering/internal/adapters/in/kafka"
	"ordering/internal/adapters/out/catalog"
	outkafka "ordering/internal/adapters/out/kafka"
	"ordering/internal/adapters/out/notify"
	"ordering/internal/adapters/out/payment"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/inboxrepo"
	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/jobs"

	"gorm.io/gorm"
)

// Dedup tables, one per consumer group so their delivery sets stay independent.
const (
	StatusProcessedEventsTable       = "processed_events"
	NotificationProcessedEventsTable = "notification_processed_events"
)

const defaultPublishTimeout = 5 * time.Second

// defaultCatalogPrices seeds the static price catalog until a real catalog
// service integration exists.
var defaultCatalogPrices = map[string]float64{
	"SKU-1001": 9.99,
	"SKU-1002": 24.50,
	"SKU-1003": 4.25,
	"SKU-2001": 149.00,
	"SKU-2002": 89.90,
}

// CompositionRoot wires adapters to use cases. Everything is constructed
// eagerly so wiring mistakes fail at startup instead of on the first request.
type CompositionRoot struct {
	gormDB    *gorm.DB
	publisher *outkafka.Publisher

	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler

	getOrderHandler        queries.GetOrderQueryHandler
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler

	statusUpdateHandler inkafka.StatusUpdateHandler
	notificationHandler inkafka.NotificationHandler

	statusConsumer       *inkafka.Consumer
	notificationConsumer *inkafka.Consumer

	jobManager *jobs.JobManager
}

// NewCompositionRoot builds the full dependency graph from configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	var orderUoWFactory commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return uowFactory.Create()
	})

	priceCatalog := catalog.NewStaticCatalog(defaultCatalogPrices)
	authorizer := payment.NewStubAuthorizer(logger)

	createOrderHandler, err := commands.NewCreateOrderCommandHandler(orderUoWFactory, priceCatalog, authorizer)
	if err != nil {
		return nil, fmt.Errorf("failed to build create order handler: %w", err)
	}

	updateOrderStatusHandler, err := commands.NewUpdateOrderStatusCommandHandler(orderUoWFactory)
	if err != nil {
		return nil, fmt.Errorf("failed to build update order status handler: %w", err)
	}

	brokers := splitList(config.KafkaHost)
	publisher := outkafka.NewPublisher(brokers, config.KafkaOrderEventsTopic)

	outboxRepo := outboxrepo.NewGormOutboxRepository(gormDB)
	relayHandler, err := commands.NewRelayOutboxCommandHandler(
		outboxRepo, publisher, publishTimeout(config.PublishTimeout), logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build relay outbox handler: %w", err)
	}

	processHandler, err := commands.NewProcessNewOrdersCommandHandler(
		orderUoWFactory, updateOrderStatusHandler, splitList(config.AllowedCountries), logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build process new orders handler: %w", err)
	}

	notifyHandler, err := commands.NewNotifyRejectedPaymentsCommandHandler(orderUoWFactory, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build notify rejected payments handler: %w", err)
	}

	statusProcessed := inboxrepo.NewGormProcessedEventRepository(gormDB, StatusProcessedEventsTable)
	statusUpdateHandler, err := inkafka.NewStatusUpdateHandler(updateOrderStatusHandler, statusProcessed, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build status update handler: %w", err)
	}

	notificationProcessed := inboxrepo.NewGormProcessedEventRepository(gormDB, NotificationProcessedEventsTable)
	notificationHandler, err := inkafka.NewNotificationHandler(notify.NewLogNotifier(logger), notificationProcessed, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build notification handler: %w", err)
	}

	locker := postgres.NewGormTickLocker(gormDB)
	jobManager := jobs.NewJobManager(
		relayHandler,
		processHandler,
		notifyHandler,
		locker,
		config.OutboxRelaySchedule,
		config.OrderProcessingSchedule,
		logger,
	)

	return &CompositionRoot{
		gormDB:                   gormDB,
		publisher:                publisher,
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		getOrderHandler:          queries.NewGetOrderQueryHandler(gormDB),
		getOrderHistoryHandler:   queries.NewGetOrderHistoryQueryHandler(gormDB),
		statusUpdateHandler:      statusUpdateHandler,
		notificationHandler:      notificationHandler,
		statusConsumer: inkafka.NewConsumer(
			brokers, config.KafkaOrderEventsTopic, config.KafkaStatusConsumerGroup, logger,
		),
		notificationConsumer: inkafka.NewConsumer(
			brokers, config.KafkaOrderEventsTopic, config.KafkaNotificationConsumerGroup, logger,
		),
		jobManager: jobManager,
	}, nil
}

// CreateOrderCommandHandler returns the handler for order creation.
func (c *CompositionRoot) CreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return c.createOrderHandler
}

// UpdateOrderStatusCommandHandler returns the handler for status transitions.
func (c *CompositionRoot) UpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return c.updateOrderStatusHandler
}

// GetOrderQueryHandler returns the single-order query handler.
func (c *CompositionRoot) GetOrderQueryHandler() queries.GetOrderQueryHandler {
	return c.getOrderHandler
}

// GetOrderHistoryQueryHandler returns the order-history query handler.
func (c *CompositionRoot) GetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return c.getOrderHistoryHandler
}

// StatusUpdateHandler returns the consumer handler that applies event-driven
// status transitions.
func (c *CompositionRoot) StatusUpdateHandler() inkafka.StatusUpdateHandler {
	return c.statusUpdateHandler
}

// NotificationHandler returns the consumer handler that sends customer
// notifications.
func (c *CompositionRoot) NotificationHandler() inkafka.NotificationHandler {
	return c.notificationHandler
}

// StatusConsumer returns the consumer-group reader for the status update
// consumer.
func (c *CompositionRoot) StatusConsumer() *inkafka.Consumer {
	return c.statusConsumer
}

// NotificationConsumer returns the consumer-group reader for the
// notification consumer.
func (c *CompositionRoot) NotificationConsumer() *inkafka.Consumer {
	return c.notificationConsumer
}

// JobManager returns the scheduled job coordinator.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

// Close releases broker connections held by the composition root.
func (c *CompositionRoot) Close() error {
	var firstErr error
	if err := c.statusConsumer.Close(); err != nil {
		firstErr = err
	}
	if err := c.notificationConsumer.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := c.publisher.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func publishTimeout(raw string) time.Duration {
	if raw == "" {
		return defaultPublishTimeout
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil || timeout <= 0 {
		return defaultPublishTimeout
	}
	return timeout
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
