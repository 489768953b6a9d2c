package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordering/cmd"
	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/postgres/inboxrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/outboxrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs(logger)

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := migrateDatabase(gormDB); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		logger.Error("Failed to build composition root", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Failed to close broker connections", "error", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.JobManager().StartAll(); err != nil {
		logger.Error("Failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer app.JobManager().StopAll()

	startConsumers(ctx, app, logger)

	e := newWebServer(app)
	go func() {
		if serveErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); serveErr != nil {
			logger.Info("Web server stopped", "reason", serveErr)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down web server", "error", err)
	}
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("No .env file found, using process environment")
	}

	return cmd.Config{
		HTTPPort:   envOrDefault("HTTP_PORT", "8080"),
		DBHost:     envOrDefault("DB_HOST", "localhost"),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBUser:     envOrDefault("DB_USER", "postgres"),
		DBPassword: envOrDefault("DB_PASSWORD", "postgres"),
		DBName:     envOrDefault("DB_NAME", "ordering"),
		DBSslMode:  envOrDefault("DB_SSLMODE", "disable"),

		KafkaHost:                      envOrDefault("KAFKA_HOST", "localhost:9092"),
		KafkaOrderEventsTopic:          envOrDefault("KAFKA_ORDER_EVENTS_TOPIC", "order.events"),
		KafkaStatusConsumerGroup:       envOrDefault("KAFKA_STATUS_CONSUMER_GROUP", "ordering.status-updates"),
		KafkaNotificationConsumerGroup: envOrDefault("KAFKA_NOTIFICATION_CONSUMER_GROUP", "ordering.notifications"),

		AllowedCountries:        envOrDefault("ALLOWED_COUNTRIES", "USA,COLOMBIA,BRAZIL,PERU,ARGENTINA"),
		OutboxRelaySchedule:     envOrDefault("OUTBOX_RELAY_SCHEDULE", "* * * * * *"),
		OrderProcessingSchedule: envOrDefault("ORDER_PROCESSING_SCHEDULE", "*/5 * * * * *"),
		PublishTimeout:          envOrDefault("PUBLISH_TIMEOUT", "5s"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
}

func migrateDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.HistoryDTO{},
		&outboxrepo.OutboxEventDTO{},
	); err != nil {
		return err
	}

	// Each consumer group keeps its own dedup set.
	for _, table := range []string{cmd.StatusProcessedEventsTable, cmd.NotificationProcessedEventsTable} {
		if err := db.Table(table).AutoMigrate(&inboxrepo.ProcessedEventDTO{}); err != nil {
			return err
		}
	}
	return nil
}

func startConsumers(ctx context.Context, app *cmd.CompositionRoot, logger *slog.Logger) {
	go func() {
		if err := app.StatusConsumer().Consume(ctx, app.StatusUpdateHandler().Handle); err != nil {
			logger.Error("Status consumer stopped", "error", err)
		}
	}()
	go func() {
		if err := app.NotificationConsumer().Consume(ctx, app.NotificationHandler().Handle); err != nil {
			logger.Error("Notification consumer stopped", "error", err)
		}
	}()
}

func newWebServer(app *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	server := httpin.NewServer(
		app.CreateOrderCommandHandler(),
		app.UpdateOrderStatusCommandHandler(),
		app.GetOrderQueryHandler(),
		app.GetOrderHistoryQueryHandler(),
	)
	server.RegisterRoutes(e)

	return e
}
