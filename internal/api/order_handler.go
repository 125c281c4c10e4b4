package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hector17rock/SeatServe/internal/order"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type newItemRequest struct {
	MenuItemID          uint   `json:"menu_item_id"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions"`
}

type createOrderRequest struct {
	TableID       uint             `json:"table_id"`
	CustomerName  string           `json:"customer_name"`
	CustomerPhone string           `json:"customer_phone"`
	CustomerEmail string           `json:"customer_email"`
	Notes         string           `json:"notes"`
	Items         []newItemRequest `json:"items"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params := order.CreateOrderParams{
		TableID:       req.TableID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
	}
	for _, item := range req.Items {
		params.Items = append(params.Items, order.NewItemParams{
			MenuItemID:          item.MenuItemID,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		})
	}

	o, err := h.svc.CreateOrder(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(o))
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter order.OrderFilter
	if raw := q.Get("status"); raw != "" {
		status := order.OrderStatus(raw)
		if !status.Valid() {
			writeError(w, r, order.ErrInvalidStatus)
			return
		}
		filter.Status = &status
	}
	if raw := q.Get("table_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid table_id"})
			return
		}
		tableID := uint(id)
		filter.TableID = &tableID
	}
	if raw := q.Get("date_from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid date_from"})
			return
		}
		filter.DateFrom = &t
	}
	if raw := q.Get("date_to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid date_to"})
			return
		}
		filter.DateTo = &t
	}

	limit := int32(20)
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil && n >= 1 && n <= 100 {
			limit = int32(n)
		}
	}
	offset := int32(0)
	if raw := q.Get("offset"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil && n >= 0 {
			offset = int32(n)
		}
	}

	orders, err := h.svc.GetOrders(r.Context(), &filter, limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	o, err := h.svc.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

type updateOrderRequest struct {
	TableID       *uint    `json:"table_id"`
	CustomerName  *string  `json:"customer_name"`
	CustomerPhone *string  `json:"customer_phone"`
	CustomerEmail *string  `json:"customer_email"`
	Notes         *string  `json:"notes"`
	Status        *string  `json:"status"`
	Tip           *float64 `json:"tip"`
	PaymentMethod *string  `json:"payment_method"`
	PaymentStatus *string  `json:"payment_status"`
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params := order.UpdateOrderParams{
		TableID:       req.TableID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
		Tip:           req.Tip,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
	}
	if req.Status != nil {
		status := order.OrderStatus(*req.Status)
		params.Status = &status
	}

	o, err := h.svc.UpdateOrder(r.Context(), id, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	next := order.OrderStatus(r.URL.Query().Get("status"))
	o, err := h.svc.UpdateStatus(r.Context(), id, next)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.svc.CancelOrder(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Order cancelled successfully"})
}

func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req newItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.svc.AddItem(r.Context(), id, order.NewItemParams{
		MenuItemID:          req.MenuItemID,
		Quantity:            req.Quantity,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(o))
}

func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}

	o, err := h.svc.RemoveItem(r.Context(), id, itemID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) ActiveByTable(w http.ResponseWriter, r *http.Request) {
	tableID, ok := pathID(w, r, "tableID")
	if !ok {
		return
	}

	o, err := h.svc.GetActiveOrderByTable(r.Context(), tableID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if o == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(o))
}
