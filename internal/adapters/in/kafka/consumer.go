// Package kafka implements the inbound event consumers. Each consumer group
// reads the shared order events topic through its own reader and hands every
// message to a handler; consumers rely on handler-side deduplication instead
// of broker-side exactly-once machinery.
package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

// Handler processes one raw message payload. Returning an error marks the
// message as failed for logging purposes only: the offset is still
// committed, because at-least-once redelivery of a poison message would
// otherwise wedge the partition.
type Handler func(ctx context.Context, payload []byte) error

// Consumer runs one consumer-group reader loop.
type Consumer struct {
	reader *kafka.Reader
	logger *slog.Logger
}

// NewConsumer creates a consumer for the given brokers, topic and consumer
// group.
func NewConsumer(brokers []string, topic, groupID string, logger *slog.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		}),
		logger: logger,
	}
}

// Consume fetches messages until the context is cancelled, invoking handler
// for each one. A handler failure is logged and the offset committed anyway;
// the message will not be redelivered to this group.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if err := handler(ctx, msg.Value); err != nil {
			c.logger.Error("message handler failed, committing offset anyway",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"key", string(msg.Key),
				"error", err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

// Close closes the underlying reader and leaves the consumer group.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
