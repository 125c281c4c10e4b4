package order

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderItemNotFound   = errors.New("order item not found")
	ErrTableNotFound       = errors.New("table not found")
	ErrTableUnavailable    = errors.New("table is not available")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrMenuItemUnavailable = errors.New("menu item is not available")
	ErrOrderLocked         = errors.New("cannot modify a completed or cancelled order")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvalidStatus       = errors.New("unknown order status")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
)
