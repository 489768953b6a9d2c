package order_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem("P1", "Widget", 10.0, 2)
	require.NoError(t, err)
	return []order.Item{item}
}

func testCustomer(t *testing.T) order.Customer {
	t.Helper()
	customer, err := order.NewCustomer("Jane Roe", "jane@example.com", "555-0100")
	require.NoError(t, err)
	return customer
}

func testAddress(t *testing.T, country string) order.Address {
	t.Helper()
	address, err := order.NewAddress("1 Main St", "", "Bogota", "", "110111", country)
	require.NoError(t, err)
	return address
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewOrderNumber(), "user-1",
		testItems(t), testCustomer(t), testAddress(t, "COLOMBIA"), "")
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates_new_order_with_created_event", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.New, o.Status())
		assert.Empty(t, o.History())

		events := o.UncommittedEvents()
		require.Len(t, events, 1)
		assert.Equal(t, event.TypeCreated, events[0].Type())
		assert.Equal(t, o.OrderNumber().String(), events[0].Payload().OrderNumber)
		require.Len(t, events[0].Payload().Items, 1)
		assert.Equal(t, "P1", events[0].Payload().Items[0].Code)
	})

	t.Run("rejects_empty_item_set", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewOrderNumber(), "user-1",
			nil, testCustomer(t), testAddress(t, "USA"), "")

		require.Error(t, err)
	})

	t.Run("rejects_unconstructed_customer", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewOrderNumber(), "user-1",
			testItems(t), order.Customer{}, testAddress(t, "USA"), "")

		require.ErrorIs(t, err, order.ErrCustomerIsNotConstructed)
	})

	t.Run("rejects_missing_user", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewOrderNumber(), "",
			testItems(t), testCustomer(t), testAddress(t, "USA"), "")

		require.Error(t, err)
	})
}

func TestNewPaymentRejectedOrder(t *testing.T) {
	t.Run("creates_terminal_order_without_events", func(t *testing.T) {
		o, err := order.NewPaymentRejectedOrder(
			kernel.NewOrderNumber(), "user-1",
			testItems(t), testCustomer(t), testAddress(t, "USA"), "card declined")

		require.NoError(t, err)
		assert.Equal(t, order.PaymentRejected, o.Status())
		assert.Empty(t, o.UncommittedEvents())
		assert.True(t, o.Status().IsTerminal())
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("transition_appends_history_entry", func(t *testing.T) {
		o := newTestOrder(t)

		changed, err := o.ChangeStatus(order.InProcess, "picked up", "worker")

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.InProcess, o.Status())

		history := o.UncommittedHistory()
		require.Len(t, history, 1)
		assert.Equal(t, order.New, history[0].From)
		assert.Equal(t, order.InProcess, history[0].To)
		assert.Equal(t, "picked up", history[0].Comment)
		assert.Equal(t, "worker", history[0].Actor)
	})

	t.Run("in_process_records_no_event", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.ChangeStatus(order.InProcess, "", "worker")

		require.NoError(t, err)
		// only the Created event from construction
		require.Len(t, o.UncommittedEvents(), 1)
		assert.Equal(t, event.TypeCreated, o.UncommittedEvents()[0].Type())
	})

	t.Run("delivered_records_delivered_event", func(t *testing.T) {
		o := newTestOrder(t)

		changed, err := o.ChangeStatus(order.Delivered, "", "system")

		require.NoError(t, err)
		assert.True(t, changed)

		events := o.UncommittedEvents()
		require.Len(t, events, 2)
		assert.Equal(t, event.TypeDelivered, events[1].Type())
	})

	t.Run("cancelled_event_carries_reason", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.ChangeStatus(order.Cancelled, "Can't deliver to the location.", "system")

		require.NoError(t, err)
		events := o.UncommittedEvents()
		require.Len(t, events, 2)
		assert.Equal(t, event.TypeCancelled, events[1].Type())
		assert.Equal(t, "Can't deliver to the location.", events[1].Payload().Reason)
	})

	t.Run("repeat_of_current_status_is_noop", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.ChangeStatus(order.Delivered, "", "system")
		require.NoError(t, err)

		changed, err := o.ChangeStatus(order.Delivered, "", "system")

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Len(t, o.UncommittedHistory(), 1)
		assert.Len(t, o.UncommittedEvents(), 2)
	})

	t.Run("terminal_states_permit_no_transition", func(t *testing.T) {
		terminalStates := []order.Status{
			order.PaymentRejected, order.Delivered, order.Cancelled, order.Error,
		}

		for _, terminal := range terminalStates {
			t.Run(terminal.String(), func(t *testing.T) {
				o, err := order.RestoreOrder(
					kernel.NewOrderNumber(), "user-1",
					testItems(t), testCustomer(t), testAddress(t, "USA"),
					terminal, "", time.Now().UTC(), nil)
				require.NoError(t, err)

				changed, err := o.ChangeStatus(order.InProcess, "", "system")

				require.ErrorIs(t, err, order.ErrIllegalTransition)
				assert.False(t, changed)
				assert.Equal(t, terminal, o.Status())
				assert.Empty(t, o.UncommittedHistory())
			})
		}
	})

	t.Run("unconstructed_order_fails", func(t *testing.T) {
		var o order.Order

		_, err := o.ChangeStatus(order.Delivered, "", "system")

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restored_order_carries_no_uncommitted_state", func(t *testing.T) {
		number := kernel.NewOrderNumber()
		history := []order.HistoryEntry{{
			OrderNumber: number,
			From:        order.New,
			To:          order.InProcess,
			Actor:       "worker",
			OccurredAt:  time.Now().UTC(),
		}}

		o, err := order.RestoreOrder(
			number, "user-1",
			testItems(t), testCustomer(t), testAddress(t, "USA"),
			order.InProcess, "", time.Now().UTC(), history)

		require.NoError(t, err)
		assert.Empty(t, o.UncommittedEvents())
		assert.Empty(t, o.UncommittedHistory())
		assert.Len(t, o.History(), 1)
	})

	t.Run("rejects_unknown_status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewOrderNumber(), "user-1",
			testItems(t), testCustomer(t), testAddress(t, "USA"),
			order.Unknown, "", time.Now().UTC(), nil)

		require.Error(t, err)
	})
}

func TestOrder_NotificationEvent(t *testing.T) {
	o, err := order.NewPaymentRejectedOrder(
		kernel.NewOrderNumber(), "user-1",
		testItems(t), testCustomer(t), testAddress(t, "USA"), "card declined")
	require.NoError(t, err)

	first := o.NotificationEvent("payment rejected")
	second := o.NotificationEvent("payment rejected")

	assert.Equal(t, event.TypeError, first.Type())
	assert.Equal(t, "payment rejected", first.Payload().Reason)
	// each nudge is its own logical event
	assert.NotEqual(t, first.Payload().EventID, second.Payload().EventID)
	// state is untouched
	assert.Equal(t, order.PaymentRejected, o.Status())
	assert.Empty(t, o.UncommittedEvents())
}

func TestOrder_Total(t *testing.T) {
	itemA, err := order.NewItem("P1", "Widget", 10.0, 2)
	require.NoError(t, err)
	itemB, err := order.NewItem("P2", "Gadget", 2.5, 4)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewOrderNumber(), "user-1",
		[]order.Item{itemA, itemB}, testCustomer(t), testAddress(t, "USA"), "")
	require.NoError(t, err)

	assert.InDelta(t, 30.0, o.Total(), 0.001)
}
