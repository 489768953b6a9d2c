package http

import (
	"errors"
	"net/http"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles the public ordering HTTP API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		getOrderHandler:          getOrderHandler,
		getOrderHistoryHandler:   getOrderHistoryHandler,
	}
}

// RegisterRoutes attaches the API routes to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.PATCH("/orders/:number/status", s.UpdateOrderStatus)
	api.GET("/orders/:number", s.GetOrder)
	api.GET("/orders/:number/history", s.GetOrderHistory)
}

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ItemRequest is one order line in the create-order request body.
type ItemRequest struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// CustomerRequest carries the customer contact details.
type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// AddressRequest carries the delivery address.
type AddressRequest struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// PaymentRequest carries the optional payment instrument. When absent the
// order is created without an authorization step.
type PaymentRequest struct {
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	Holder     string `json:"holder"`
}

// CreateOrderRequest is the POST /api/v1/orders request body.
type CreateOrderRequest struct {
	UserID   string          `json:"user_id"`
	Items    []ItemRequest   `json:"items"`
	Customer CustomerRequest `json:"customer"`
	Address  AddressRequest  `json:"address"`
	Comments string          `json:"comments"`
	Payment  *PaymentRequest `json:"payment,omitempty"`
}

// CreateOrderResponse reports the number assigned to the new order and
// whether payment authorization was declined.
type CreateOrderResponse struct {
	OrderNumber     string `json:"order_number"`
	PaymentRejected bool   `json:"payment_rejected"`
}

// UpdateOrderStatusRequest is the PATCH status request body.
type UpdateOrderStatusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
	Actor   string `json:"actor"`
}

// UpdateOrderStatusResponse confirms the status an order was moved to.
// A request for the status the order already has is a no-op and returns
// the same body.
type UpdateOrderStatusResponse struct {
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
}

// OrderItemResponse is one order line in the order response.
type OrderItemResponse struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderResponse is the GET order response body.
type OrderResponse struct {
	Number    string              `json:"number"`
	UserID    string              `json:"user_id"`
	Status    string              `json:"status"`
	Comments  string              `json:"comments,omitempty"`
	Total     float64             `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []OrderItemResponse `json:"items"`
}

// HistoryEntryResponse is one entry in the GET history response body.
type HistoryEntryResponse struct {
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Comment    string    `json:"comment,omitempty"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - creates a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	items := make([]commands.ItemRequest, len(req.Items))
	for i, item := range req.Items {
		items[i] = commands.ItemRequest{
			Code:     item.Code,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	var payment *ports.PaymentInstrument
	if req.Payment != nil {
		payment = &ports.PaymentInstrument{
			CardNumber: req.Payment.CardNumber,
			Expiry:     req.Payment.Expiry,
			Holder:     req.Payment.Holder,
		}
	}

	cmd, err := commands.NewCreateOrderCommand(
		req.UserID,
		items,
		commands.CustomerRequest{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
		commands.AddressRequest{
			Line1:   req.Address.Line1,
			Line2:   req.Address.Line2,
			City:    req.Address.City,
			State:   req.Address.State,
			Zip:     req.Address.Zip,
			Country: req.Address.Country,
		},
		req.Comments,
		payment,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrValueIsInvalid),
			errors.Is(err, errs.ErrValueIsRequired),
			errors.Is(err, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid order data: " + err.Error(),
			})
		default:
			return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
				Code:    http.StatusInternalServerError,
				Message: "Failed to create order",
			})
		}
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		OrderNumber:     result.OrderNumber.String(),
		PaymentRejected: result.PaymentRejected,
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:number/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	number, err := kernel.OrderNumberFromString(ctx.Param("number"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order number",
		})
	}

	var req UpdateOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid status: " + req.Status,
		})
	}

	actor := req.Actor
	if actor == "" {
		actor = "api"
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(number, status, req.Comment, actor)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid status change: " + err.Error(),
		})
	}

	if handleErr := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		var illegal *order.IllegalTransitionError
		switch {
		case errors.As(handleErr, &illegal):
			return ctx.JSON(http.StatusConflict, ErrorResponse{
				Code:    http.StatusConflict,
				Message: handleErr.Error(),
			})
		case errors.Is(handleErr, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		default:
			return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
				Code:    http.StatusInternalServerError,
				Message: "Failed to update order status",
			})
		}
	}

	return ctx.JSON(http.StatusOK, UpdateOrderStatusResponse{
		OrderNumber: number.String(),
		Status:      status.String(),
	})
}

// GetOrder handles GET /api/v1/orders/:number.
func (s *Server) GetOrder(ctx echo.Context) error {
	number, err := kernel.OrderNumberFromString(ctx.Param("number"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order number",
		})
	}

	query, err := queries.NewGetOrderQuery(number)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order number",
		})
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	items := make([]OrderItemResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = OrderItemResponse{
			Code:     item.Code,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		Number:    result.Number,
		UserID:    result.UserID,
		Status:    result.Status,
		Comments:  result.Comments,
		Total:     result.Total,
		CreatedAt: result.CreatedAt,
		Items:     items,
	})
}

// GetOrderHistory handles GET /api/v1/orders/:number/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	number, err := kernel.OrderNumberFromString(ctx.Param("number"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order number",
		})
	}

	query, err := queries.NewGetOrderHistoryQuery(number)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order number",
		})
	}

	entries, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order history",
		})
	}

	response := make([]HistoryEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = HistoryEntryResponse{
			FromStatus: entry.FromStatus,
			ToStatus:   entry.ToStatus,
			Comment:    entry.Comment,
			Actor:      entry.Actor,
			OccurredAt: entry.OccurredAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
