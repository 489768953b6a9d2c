package kafka_test

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	kafkain "ordering/internal/adapters/in/kafka"
	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newNotificationHandler(
	t *testing.T,
	notifier ports.Notifier,
	processed ports.ProcessedEventRepository,
) kafkain.NotificationHandler {
	t.Helper()
	h, err := kafkain.NewNotificationHandler(notifier, processed, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return h
}

func TestNotificationHandler_Handle_SendsDeliveredNotification(t *testing.T) {
	ctx := t.Context()
	e, payload := deliveredEventFor(t, "ORD-1")

	notifier := new(MockNotifier)
	notifier.On("Send", mock.Anything, "jane@example.com",
		mock.MatchedBy(func(subject string) bool {
			return strings.Contains(subject, "ORD-1") && strings.Contains(subject, "delivered")
		}),
		mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "Jane Doe")
		})).Return(nil).Once()

	processed := new(MockProcessedEventRepository)
	processed.On("Exists", mock.Anything, e.Payload().EventID).Return(false, nil).Once()
	processed.On("Add", mock.Anything, e.Payload().EventID).Return(nil).Once()

	h := newNotificationHandler(t, notifier, processed)
	require.NoError(t, h.Handle(ctx, payload))

	notifier.AssertExpectations(t)
	processed.AssertExpectations(t)
}

func TestNotificationHandler_Handle_CancelledNotificationCarriesReason(t *testing.T) {
	ctx := t.Context()
	e, payload := testEvent(t,
		func(p event.Payload) event.Event { return event.NewCancelled(p) },
		"ORD-1", "Can't deliver to the location.")

	notifier := new(MockNotifier)
	notifier.On("Send", mock.Anything, "jane@example.com", mock.Anything,
		mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "Can't deliver to the location.")
		})).Return(nil).Once()

	processed := new(MockProcessedEventRepository)
	processed.On("Exists", mock.Anything, e.Payload().EventID).Return(false, nil).Once()
	processed.On("Add", mock.Anything, e.Payload().EventID).Return(nil).Once()

	h := newNotificationHandler(t, notifier, processed)
	require.NoError(t, h.Handle(ctx, payload))

	notifier.AssertExpectations(t)
}

func TestNotificationHandler_Handle_MissingEmailSkipsSend(t *testing.T) {
	ctx := t.Context()
	e := event.NewDelivered(event.NewPayload(
		"ORD-1",
		nil,
		event.Customer{Name: "Jane Doe"},
		event.Address{Line1: "742 Evergreen Terrace", City: "Springfield", Country: "USA"},
		"",
	))
	payload, err := event.Marshal(e)
	require.NoError(t, err)

	notifier := new(MockNotifier)

	processed := new(MockProcessedEventRepository)
	processed.On("Exists", mock.Anything, e.Payload().EventID).Return(false, nil).Once()
	processed.On("Add", mock.Anything, e.Payload().EventID).Return(nil).Once()

	h := newNotificationHandler(t, notifier, processed)
	require.NoError(t, h.Handle(ctx, payload))

	// no address to deliver to, but the event still counts as handled
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	processed.AssertExpectations(t)
}

func TestNotificationHandler_Handle_DuplicateEventIsSkipped(t *testing.T) {
	ctx := t.Context()
	e, payload := deliveredEventFor(t, "ORD-1")

	notifier := new(MockNotifier)
	processed := new(MockProcessedEventRepository)
	processed.On("Exists", mock.Anything, e.Payload().EventID).Return(true, nil).Once()

	h := newNotificationHandler(t, notifier, processed)
	require.NoError(t, h.Handle(ctx, payload))

	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	processed.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestNotificationHandler_Handle_SendFailureIsNotRecorded(t *testing.T) {
	ctx := t.Context()
	e, payload := deliveredEventFor(t, "ORD-1")

	notifier := new(MockNotifier)
	notifier.On("Send", mock.Anything, "jane@example.com", mock.Anything, mock.Anything).
		Return(errors.New("smtp unavailable")).Once()

	processed := new(MockProcessedEventRepository)
	processed.On("Exists", mock.Anything, e.Payload().EventID).Return(false, nil).Once()

	h := newNotificationHandler(t, notifier, processed)
	require.Error(t, h.Handle(ctx, payload))

	processed.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestNotificationHandler_Handle_ConcurrentDuplicateRecordIsBenign(t *testing.T) {
	ctx := t.Context()
	e, payload := deliveredEventFor(t, "ORD-1")

	notifier := new(MockNotifier)
	notifier.On("Send", mock.Anything, "jane@example.com", mock.Anything, mock.Anything).
		Return(nil).Once()

	processed := new(MockProcessedEventRepository)
	processed.On("Exists", mock.Anything, e.Payload().EventID).Return(false, nil).Once()
	processed.On("Add", mock.Anything, e.Payload().EventID).
		Return(ports.ErrEventAlreadyProcessed).Once()

	h := newNotificationHandler(t, notifier, processed)
	require.NoError(t, h.Handle(ctx, payload))
}
