package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hector17rock/SeatServe/internal/menu"
)

type MenuHandler struct {
	svc menu.Service
}

func NewMenuHandler(svc menu.Service) *MenuHandler {
	return &MenuHandler{svc: svc}
}

type categoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

func categoryOut(c *menu.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
	}
}

type menuItemResponse struct {
	ID              uint    `json:"id"`
	CategoryID      uint    `json:"category_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	IsAvailable     bool    `json:"is_available"`
	ImageURL        string  `json:"image_url,omitempty"`
	Calories        *int    `json:"calories,omitempty"`
	PreparationTime *int    `json:"preparation_time,omitempty"`
	IsVegetarian    bool    `json:"is_vegetarian"`
	IsVegan         bool    `json:"is_vegan"`
	IsGlutenFree    bool    `json:"is_gluten_free"`
	SortOrder       int     `json:"sort_order"`
}

func itemOut(m *menu.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:              m.ID,
		CategoryID:      m.CategoryID,
		Name:            m.Name,
		Description:     m.Description,
		Price:           m.Price,
		IsAvailable:     m.IsAvailable,
		ImageURL:        m.ImageURL,
		Calories:        m.Calories,
		PreparationTime: m.PreparationTime,
		IsVegetarian:    m.IsVegetarian,
		IsVegan:         m.IsVegan,
		IsGlutenFree:    m.IsGlutenFree,
		SortOrder:       m.SortOrder,
	}
}

func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("active") == "true"

	categories, err := h.svc.GetCategories(r.Context(), onlyActive)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryOut(c))
	}
	writeJSON(w, http.StatusOK, out)
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

func (h *MenuHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.svc.CreateCategory(r.Context(), menu.CreateCategoryParams{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, categoryOut(c))
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   *int    `json:"sort_order"`
}

func (h *MenuHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.svc.UpdateCategory(r.Context(), id, menu.UpdateCategoryParams{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, categoryOut(c))
}

func (h *MenuHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Category deleted successfully"})
}

func (h *MenuHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter menu.ItemFilter
	if raw := q.Get("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid category_id"})
			return
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}
	filter.OnlyAvailable = q.Get("available") == "true"

	items, err := h.svc.GetItems(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]menuItemResponse, 0, len(items))
	for _, m := range items {
		out = append(out, itemOut(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *MenuHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	m, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, itemOut(m))
}

type createItemRequest struct {
	CategoryID      uint    `json:"category_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	ImageURL        string  `json:"image_url"`
	Calories        *int    `json:"calories"`
	PreparationTime *int    `json:"preparation_time"`
	IsVegetarian    bool    `json:"is_vegetarian"`
	IsVegan         bool    `json:"is_vegan"`
	IsGlutenFree    bool    `json:"is_gluten_free"`
	SortOrder       int     `json:"sort_order"`
}

func (h *MenuHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.svc.CreateItem(r.Context(), menu.CreateItemParams{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		ImageURL:        req.ImageURL,
		Calories:        req.Calories,
		PreparationTime: req.PreparationTime,
		IsVegetarian:    req.IsVegetarian,
		IsVegan:         req.IsVegan,
		IsGlutenFree:    req.IsGlutenFree,
		SortOrder:       req.SortOrder,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, itemOut(m))
}

type updateItemRequest struct {
	CategoryID      *uint    `json:"category_id"`
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	IsAvailable     *bool    `json:"is_available"`
	ImageURL        *string  `json:"image_url"`
	Calories        *int     `json:"calories"`
	PreparationTime *int     `json:"preparation_time"`
	SortOrder       *int     `json:"sort_order"`
}

func (h *MenuHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.svc.UpdateItem(r.Context(), id, menu.UpdateItemParams{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		IsAvailable:     req.IsAvailable,
		ImageURL:        req.ImageURL,
		Calories:        req.Calories,
		PreparationTime: req.PreparationTime,
		SortOrder:       req.SortOrder,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, itemOut(m))
}

func (h *MenuHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Menu item deleted successfully"})
}
