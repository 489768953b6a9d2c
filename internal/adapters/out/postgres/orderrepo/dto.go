// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The order number is the primary key; the status column is indexed because
// the processing job sweeps by status on every tick.
type OrderDTO struct {
	Number    string      `gorm:"primaryKey"`
	UserID    string      `gorm:"index"`
	Customer  CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`
	Address   AddressDTO  `gorm:"embedded;embeddedPrefix:address_"`
	Status    string      `gorm:"index"`
	Comments  string
	CreatedAt time.Time
	Items     []ItemDTO `gorm:"foreignKey:OrderNumber;references:Number;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO represents the embedded customer contact columns.
type CustomerDTO struct {
	Name  string
	Email string
	Phone string
}

// AddressDTO represents the embedded delivery address columns.
type AddressDTO struct {
	Line1   string
	Line2   string
	City    string
	State   string
	Zip     string
	Country string
}

// ItemDTO represents one order line. Lines are an immutable snapshot taken
// at creation, so they are only ever inserted, never updated.
type ItemDTO struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	OrderNumber string `gorm:"index"`
	Code        string
	Name        string
	Price       float64
	Quantity    int
}

// TableName specifies the database table name for order lines.
func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO represents one status transition row in the append-only audit
// trail. Rows are inserted in the same transaction as the order update that
// produced them.
type HistoryDTO struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	OrderNumber string `gorm:"index"`
	FromStatus  string
	ToStatus    string
	Comment     string
	Actor       string
	OccurredAt  time.Time
}

// TableName specifies the database table name for status history entries.
func (HistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderNumber: aggregate.OrderNumber().String(),
			Code:        item.Code(),
			Name:        item.Name(),
			Price:       item.Price(),
			Quantity:    item.Quantity(),
		})
	}

	customer := aggregate.Customer()
	address := aggregate.Address()

	return OrderDTO{
		Number: aggregate.OrderNumber().String(),
		UserID: aggregate.UserID(),
		Customer: CustomerDTO{
			Name:  customer.Name(),
			Email: customer.Email(),
			Phone: customer.Phone(),
		},
		Address: AddressDTO{
			Line1:   address.Line1(),
			Line2:   address.Line2(),
			City:    address.City(),
			State:   address.State(),
			Zip:     address.Zip(),
			Country: address.Country(),
		},
		Status:    aggregate.Status().String(),
		Comments:  aggregate.Comments(),
		CreatedAt: aggregate.CreatedAt(),
		Items:     items,
	}
}

// historyFromDomain converts an uncommitted history entry to its row form.
func historyFromDomain(entry order.HistoryEntry) HistoryDTO {
	return HistoryDTO{
		OrderNumber: entry.OrderNumber.String(),
		FromStatus:  entry.From.String(),
		ToStatus:    entry.To.String(),
		Comment:     entry.Comment,
		Actor:       entry.Actor,
		OccurredAt:  entry.OccurredAt,
	}
}

// historyToDomain converts a history row back to its domain form.
func historyToDomain(dto HistoryDTO) (order.HistoryEntry, error) {
	number, err := kernel.OrderNumberFromString(dto.OrderNumber)
	if err != nil {
		return order.HistoryEntry{}, err
	}

	from, err := order.StatusFromString(dto.FromStatus)
	if err != nil {
		return order.HistoryEntry{}, err
	}

	to, err := order.StatusFromString(dto.ToStatus)
	if err != nil {
		return order.HistoryEntry{}, err
	}

	return order.HistoryEntry{
		OrderNumber: number,
		From:        from,
		To:          to,
		Comment:     dto.Comment,
		Actor:       dto.Actor,
		OccurredAt:  dto.OccurredAt,
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including its status and the committed
// history using RestoreOrder.
func toDomain(dto OrderDTO, historyDTOs []HistoryDTO) (*order.Order, error) {
	number, err := kernel.OrderNumberFromString(dto.Number)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.Code, itemDTO.Name, itemDTO.Price, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	customer, err := order.NewCustomer(dto.Customer.Name, dto.Customer.Email, dto.Customer.Phone)
	if err != nil {
		return nil, err
	}

	address, err := order.NewAddress(
		dto.Address.Line1, dto.Address.Line2, dto.Address.City,
		dto.Address.State, dto.Address.Zip, dto.Address.Country)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	history := make([]order.HistoryEntry, 0, len(historyDTOs))
	for _, historyDTO := range historyDTOs {
		entry, entryErr := historyToDomain(historyDTO)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(
		number, dto.UserID, items, customer, address,
		status, dto.Comments, dto.CreatedAt, history)
}
