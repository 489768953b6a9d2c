package cmd

// Config carries the raw service configuration as read from the
// environment. Values that need parsing (broker lists, durations) are
// interpreted by the composition root.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost                      string
	KafkaOrderEventsTopic          string
	KafkaStatusConsumerGroup       string
	KafkaNotificationConsumerGroup string

	AllowedCountries        string
	OutboxRelaySchedule     string
	OrderProcessingSchedule string
	PublishTimeout          string
}
