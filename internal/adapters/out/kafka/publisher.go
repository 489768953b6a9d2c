// Package kafka implements the outbound event publisher on top of
// segmentio/kafka-go. Events are keyed by order number so all events of one
// order land on the same partition and keep their relative order.
package kafka

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/event"

	"github.com/segmentio/kafka-go"
)

// Publisher writes domain events to a Kafka topic.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
	}
}

// Publish serializes the event envelope and writes it to the topic. The
// context deadline bounds the whole write; a timeout surfaces as an error so
// the relay leaves the event pending.
func (p *Publisher) Publish(ctx context.Context, e event.Event) error {
	data, err := event.Marshal(e)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(e.Payload().OrderNumber),
		Value: data,
	}

	return p.writer.WriteMessages(ctx, msg)
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
