package api

import (
	"time"

	"github.com/hector17rock/SeatServe/internal/order"
	"github.com/hector17rock/SeatServe/internal/staff"
)

type orderItemResponse struct {
	ID                  uint    `json:"id"`
	OrderID             uint    `json:"order_id"`
	MenuItemID          uint    `json:"menu_item_id"`
	Quantity            int     `json:"quantity"`
	UnitPrice           float64 `json:"unit_price"`
	TotalPrice          float64 `json:"total_price"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
	Status              string  `json:"status"`
}

type orderResponse struct {
	ID            uint                `json:"id"`
	TableID       uint                `json:"table_id"`
	CustomerName  string              `json:"customer_name,omitempty"`
	CustomerPhone string              `json:"customer_phone,omitempty"`
	CustomerEmail string              `json:"customer_email,omitempty"`
	Status        string              `json:"status"`
	Notes         string              `json:"notes,omitempty"`
	Subtotal      float64             `json:"subtotal"`
	Tax           float64             `json:"tax"`
	Tip           float64             `json:"tip"`
	Total         float64             `json:"total"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	PaymentStatus string              `json:"payment_status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	Items         []orderItemResponse `json:"items"`
}

func toOrderResponse(o *order.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemResponse{
			ID:                  item.ID,
			OrderID:             item.OrderID,
			MenuItemID:          item.MenuItemID,
			Quantity:            item.Quantity,
			UnitPrice:           item.UnitPrice,
			TotalPrice:          item.TotalPrice,
			SpecialInstructions: item.SpecialInstructions,
			Status:              string(item.Status),
		})
	}

	return orderResponse{
		ID:            o.ID,
		TableID:       o.TableID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		CustomerEmail: o.CustomerEmail,
		Status:        string(o.Status),
		Notes:         o.Notes,
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Tip:           o.Tip,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		CompletedAt:   o.CompletedAt,
		Items:         items,
	}
}

func toOrderResponses(orders []*order.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

type staffResponse struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	Phone     string     `json:"phone,omitempty"`
	HireDate  *time.Time `json:"hire_date,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

func toStaffResponse(s *staff.Staff) staffResponse {
	return staffResponse{
		ID:        s.ID,
		Username:  s.Username,
		Email:     s.Email,
		FullName:  s.FullName,
		Role:      s.Role,
		IsActive:  s.IsActive,
		Phone:     s.Phone,
		HireDate:  s.HireDate,
		LastLogin: s.LastLogin,
	}
}
