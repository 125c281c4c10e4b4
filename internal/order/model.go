package order

import "time"

type Order struct {
	ID            uint
	TableID       uint
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Status        OrderStatus
	Notes         string
	Subtotal      float64
	Tax           float64
	Tip           float64
	Total         float64
	PaymentMethod string
	PaymentStatus string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   *time.Time
	Items         []OrderItem
}

type OrderItem struct {
	ID                  uint
	OrderID             uint
	MenuItemID          uint
	Quantity            int
	UnitPrice           float64
	TotalPrice          float64
	SpecialInstructions string
	Status              ItemStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type NewItemParams struct {
	MenuItemID          uint
	Quantity            int
	SpecialInstructions string
}

type CreateOrderParams struct {
	TableID       uint
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Notes         string
	Items         []NewItemParams
}

// UpdateOrderParams is the generic partial-update payload. A non-nil Status
// here is written without transition validation; terminal side effects still
// apply.
type UpdateOrderParams struct {
	TableID       *uint
	CustomerName  *string
	CustomerPhone *string
	CustomerEmail *string
	Notes         *string
	Status        *OrderStatus
	Tip           *float64
	PaymentMethod *string
	PaymentStatus *string
}

type OrderFilter struct {
	Status   *OrderStatus
	TableID  *uint
	DateFrom *time.Time
	DateTo   *time.Time
}
