package commands

import (
	"context"
	"fmt"
	"math"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// priceTolerance absorbs float rounding between the submitted price and the
// catalog price. A larger difference is treated as a stale or tampered price.
const priceTolerance = 0.005

// CreateOrderResult reports the outcome of order creation. PaymentRejected
// distinguishes the expected business outcome "card declined" from handler
// errors: a rejected payment still produces a persisted order.
type CreateOrderResult struct {
	OrderNumber     kernel.OrderNumber
	PaymentRejected bool
}

// CreateOrderCommandHandler handles the business logic for order creation.
// Verifies submitted prices against the live catalog, optionally authorizes
// payment, and persists the order together with its Created outbox event in
// one transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog, authorizer)
//	cmd, _ := NewCreateOrderCommand("user-1", items, customer, address, "", nil)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	if result.PaymentRejected {
//	    // order persisted in PAYMENT_REJECTED, no event broadcast
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.PriceCatalog
	authorizer ports.PaymentAuthorizer
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence, a PriceCatalog
// for price verification and a PaymentAuthorizer for the optional payment step.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.PriceCatalog,
	authorizer ports.PaymentAuthorizer,
) (CreateOrderCommandHandler, error) {
	if uowFactory == nil {
		return CreateOrderCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if catalog == nil {
		return CreateOrderCommandHandler{}, errs.NewValueIsRequiredError("catalog")
	}
	if authorizer == nil {
		return CreateOrderCommandHandler{}, errs.NewValueIsRequiredError("authorizer")
	}

	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		authorizer: authorizer,
	}, nil
}

// Handle processes the order creation command.
// Builds the order aggregate from catalog-verified prices, runs payment
// authorization when an instrument was supplied, and commits the order and
// its outbox event atomically. A declined payment is not an error: the order
// is persisted in PaymentRejected status and the result flags the rejection.
func (h *CreateOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateOrderCommand,
) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	items, err := h.verifiedItems(ctx, cmd.Items())
	if err != nil {
		return CreateOrderResult{}, err
	}

	customer, err := order.NewCustomer(cmd.Customer().Name, cmd.Customer().Email, cmd.Customer().Phone)
	if err != nil {
		return CreateOrderResult{}, err
	}

	addr := cmd.Address()
	address, err := order.NewAddress(addr.Line1, addr.Line2, addr.City, addr.State, addr.Zip, addr.Country)
	if err != nil {
		return CreateOrderResult{}, err
	}

	orderNumber := kernel.NewOrderNumber()

	o, rejected, err := h.buildOrder(ctx, cmd, orderNumber, items, customer, address)
	if err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	outboxRepo := uow.OutboxRepository()
	for _, e := range o.UncommittedEvents() {
		if err = outboxRepo.Add(ctx, e); err != nil {
			return CreateOrderResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{OrderNumber: orderNumber, PaymentRejected: rejected}, nil
}

// buildOrder runs the optional payment authorization and creates the
// aggregate in the matching initial status.
func (h *CreateOrderCommandHandler) buildOrder(
	ctx context.Context,
	cmd CreateOrderCommand,
	orderNumber kernel.OrderNumber,
	items []order.Item,
	customer order.Customer,
	address order.Address,
) (*order.Order, bool, error) {
	if cmd.Payment() != nil {
		var total float64
		for _, item := range items {
			total += item.Subtotal()
		}

		authorized, err := h.authorizer.Authorize(ctx, *cmd.Payment(), total)
		if err != nil {
			return nil, false, err
		}

		if !authorized {
			o, err := order.NewPaymentRejectedOrder(
				orderNumber, cmd.UserID(), items, customer, address, cmd.Comments())
			if err != nil {
				return nil, false, err
			}
			return o, true, nil
		}
	}

	o, err := order.NewOrder(orderNumber, cmd.UserID(), items, customer, address, cmd.Comments())
	if err != nil {
		return nil, false, err
	}
	return o, false, nil
}

// verifiedItems checks every submitted price against the catalog and builds
// the domain item snapshot from the catalog prices.
func (h *CreateOrderCommandHandler) verifiedItems(
	ctx context.Context,
	requests []ItemRequest,
) ([]order.Item, error) {
	items := make([]order.Item, 0, len(requests))
	for _, req := range requests {
		catalogPrice, err := h.catalog.PriceOf(ctx, req.Code)
		if err != nil {
			return nil, err
		}

		if math.Abs(catalogPrice-req.Price) > priceTolerance {
			return nil, errs.NewValueIsInvalidError(
				fmt.Sprintf("price for item %s", req.Code))
		}

		item, err := order.NewItem(req.Code, req.Name, catalogPrice, req.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
