package ports

import "context"

// Notifier sends a customer-facing notification message. The notification
// consumer accepts that a rare duplicate send is a bounded cost of
// at-least-once delivery.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
