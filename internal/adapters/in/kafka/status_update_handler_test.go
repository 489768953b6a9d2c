package kafka_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	kafkain "ordering/internal/adapters/in/kafka"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProcessedEventRepository struct{ mock.Mock }

func (m *MockProcessedEventRepository) Add(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockProcessedEventRepository) Exists(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetHistory(ctx context.Context, number kernel.OrderNumber) ([]order.HistoryEntry, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.HistoryEntry), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, e event.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context) ([]ports.OutboxEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxEvent), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func testEvent(t *testing.T, build func(event.Payload) event.Event, orderNumber, reason string) (event.Event, []byte) {
	t.Helper()

	e := build(event.NewPayload(
		orderNumber,
		[]event.Item{{Code: "SKU-1", Name: "Widget", Price: 9.99, Quantity: 1}},
		event.Customer{Name: "Jane Doe", Email: "jane@example.com", Phone: "+1-555-0101"},
		event.Address{Line1: "742 Evergreen Terrace", City: "Springfield", State: "IL", Zip: "62704", Country: "USA"},
		reason,
	))

	payload, err := event.Marshal(e)
	require.NoError(t, err)
	return e, payload
}

func deliveredEventFor(t *testing.T, orderNumber string) (event.Event, []byte) {
	t.Helper()
	return testEvent(t, func(p event.Payload) event.Event { return event.NewDelivered(p) }, orderNumber, "")
}

func storedOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	item, err := order.NewItem("SKU-1", "Widget", 9.99, 1)
	require.NoError(t, err)
	customer, err := order.NewCustomer("Jane Doe", "jane@example.com", "+1-555-0101")
	require.NoError(t, err)
	address, err := order.NewAddress("742 Evergreen Terrace", "", "Springfield", "IL", "62704", "USA")
	require.NoError(t, err)

	o, err := order.RestoreOrder(
		kernel.NewOrderNumber(), "user-1", []order.Item{item}, customer, address,
		status, "", time.Now().UTC(), nil)
	require.NoError(t, err)
	return o
}

func newStatusUpdateHandler(
	t *testing.T,
	factory commands.OrderUoWFactory,
	processed ports.ProcessedEventRepository,
) kafkain.StatusUpdateHandler {
	t.Helper()

	statusHandler, err := commands.NewUpdateOrderStatusCommandHandler(factory)
	require.NoError(t, err)

	h, err := kafkain.NewStatusUpdateHandler(statusHandler, processed, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return h
}

func TestStatusUpdateHandler_Handle_AppliesDeliveredTransition(t *testing.T) {
	ctx := t.Context()
	o := storedOrder(t, order.New)
	e, payload := deliveredEventFor(t, o.OrderNumber().String())

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("OutboxRepository").Return(outboxRepo).Once()
	orderRepo.On("GetByNumber", mock.Anything, o.OrderNumber()).Return(o, nil).Once()
	orderRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *order.Order) bool {
		return updated.Status() == order.Delivered
	})).Return(nil).Once()
	outboxRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	processed := new(MockProcessedEventRepository)
	processed.On("Exists", mock.Anything, e.Payload().EventID).Return(false, nil).Once()
	processed.On("Add", mock.Anything, e.Payload().EventID).Return(nil).Once()

	h := newStatusUpdateHandler(t, factory, processed)
	require.NoError(t, h.Handle(ctx, payload))

	orderRepo.AssertExpectations(t)
	processed.AssertExpectations(t)
}

func TestStatusUpdateHandler_Handle_DuplicateEventIsSkipped(t *testing.T) {
	ctx := t.Context()
	e, payload := deliveredEventFor(t, "ORD-1")

	processed := new(MockProcessedEventRepository)
	processed.On("Exists", mock.Anything, e.Payload().EventID).Return(true, nil).Once()

	factory := new(MockOrderUoWFactory)

	h := newStatusUpdateHandler(t, factory, processed)
	require.NoError(t, h.Handle(ctx, payload))

	factory.AssertNotCalled(t, "Create")
	processed.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestStatusUpdateHandler_Handle_CreatedEventRecordsWithoutTransition(t *testing.T) {
	ctx := t.Context()
	e, payload := testEvent(t,
		func(p event.Payload) event.Event { return event.NewCreated(p) }, "ORD-1", "")

	processed := new(MockProcessedEventRepository)
	processed.On("Exists", mock.Anything, e.Payload().EventID).Return(false, nil).Once()
	processed.On("Add", mock.Anything, e.Payload().EventID).Return(nil).Once()

	factory := new(MockOrderUoWFactory)

	h := newStatusUpdateHandler(t, factory, processed)
	require.NoError(t, h.Handle(ctx, payload))

	factory.AssertNotCalled(t, "Create")
	processed.AssertExpectations(t)
}

func TestStatusUpdateHandler_Handle_UnknownOrderIsDiscarded(t *testing.T) {
	ctx := t.Context()
	number := kernel.NewOrderNumber()
	e, payload := deliveredEventFor(t, number.String())

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetByNumber", mock.Anything, number).
		Return(nil, errs.NewObjectNotFoundError("order", number.String())).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	processed := new(MockProcessedEventRepository)
	processed.On("Exists", mock.Anything, e.Payload().EventID).Return(false, nil).Once()
	processed.On("Add", mock.Anything, e.Payload().EventID).Return(nil).Once()

	h := newStatusUpdateHandler(t, factory, processed)
	require.NoError(t, h.Handle(ctx, payload))

	processed.AssertExpectations(t)
}

func TestStatusUpdateHandler_Handle_TerminalOrderIsDiscarded(t *testing.T) {
	ctx := t.Context()
	o := storedOrder(t, order.Cancelled)
	e, payload := deliveredEventFor(t, o.OrderNumber().String())

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetByNumber", mock.Anything, o.OrderNumber()).Return(o, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	processed := new(MockProcessedEventRepository)
	processed.On("Exists", mock.Anything, e.Payload().EventID).Return(false, nil).Once()
	processed.On("Add", mock.Anything, e.Payload().EventID).Return(nil).Once()

	h := newStatusUpdateHandler(t, factory, processed)
	require.NoError(t, h.Handle(ctx, payload))

	processed.AssertExpectations(t)
}

func TestStatusUpdateHandler_Handle_TransientFailureIsNotRecorded(t *testing.T) {
	ctx := t.Context()
	e, payload := deliveredEventFor(t, "ORD-1")

	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(errors.New("connection lost")).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	processed := new(MockProcessedEventRepository)
	processed.On("Exists", mock.Anything, e.Payload().EventID).Return(false, nil).Once()

	h := newStatusUpdateHandler(t, factory, processed)
	require.Error(t, h.Handle(ctx, payload))

	// the event id stays unrecorded so a redelivery can retry
	processed.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestStatusUpdateHandler_Handle_MalformedPayloadIsRejected(t *testing.T) {
	ctx := t.Context()

	processed := new(MockProcessedEventRepository)
	h := newStatusUpdateHandler(t, new(MockOrderUoWFactory), processed)

	require.Error(t, h.Handle(ctx, []byte("{not json")))
	processed.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}
