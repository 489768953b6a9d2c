package commands_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

type MockPriceCatalog struct{ mock.Mock }

func (m *MockPriceCatalog) PriceOf(ctx context.Context, code string) (float64, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(float64), args.Error(1)
}

type MockPaymentAuthorizer struct{ mock.Mock }

func (m *MockPaymentAuthorizer) Authorize(
	ctx context.Context,
	instrument ports.PaymentInstrument,
	amount float64,
) (bool, error) {
	args := m.Called(ctx, instrument, amount)
	return args.Bool(0), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, e event.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func testItemRequests() []commands.ItemRequest {
	return []commands.ItemRequest{
		{Code: "SKU-1", Name: "Widget", Price: 9.99, Quantity: 2},
		{Code: "SKU-2", Name: "Gadget", Price: 24.50, Quantity: 1},
	}
}

func testCustomerRequest() commands.CustomerRequest {
	return commands.CustomerRequest{Name: "Jane Doe", Email: "jane@example.com", Phone: "+1-555-0101"}
}

func testAddressRequest(country string) commands.AddressRequest {
	return commands.AddressRequest{
		Line1:   "742 Evergreen Terrace",
		City:    "Springfield",
		State:   "IL",
		Zip:     "62704",
		Country: country,
	}
}

// restoredOrder builds an order in the given status with no uncommitted
// events, the shape a repository returns after loading.
func restoredOrder(t *testing.T, status order.Status, country string) *order.Order {
	t.Helper()

	item, err := order.NewItem("SKU-1", "Widget", 9.99, 2)
	require.NoError(t, err)
	customer, err := order.NewCustomer("Jane Doe", "jane@example.com", "+1-555-0101")
	require.NoError(t, err)
	address, err := order.NewAddress("742 Evergreen Terrace", "", "Springfield", "IL", "62704", country)
	require.NoError(t, err)

	o, err := order.RestoreOrder(
		kernel.NewOrderNumber(), "user-1", []order.Item{item}, customer, address,
		status, "", time.Now().UTC(), nil)
	require.NoError(t, err)

	return o
}
