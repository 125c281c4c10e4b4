package api

import (
	"net/http"

	"github.com/hector17rock/SeatServe/internal/table"
)

type TableHandler struct {
	svc table.Service
}

func NewTableHandler(svc table.Service) *TableHandler {
	return &TableHandler{svc: svc}
}

func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	var available *bool
	switch r.URL.Query().Get("available") {
	case "true":
		v := true
		available = &v
	case "false":
		v := false
		available = &v
	}

	tables, err := h.svc.GetTables(r.Context(), available)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tablesOut(tables))
}

func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	t, err := h.svc.GetTable(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tableOut(t))
}

type createTableRequest struct {
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
	Location string `json:"location"`
}

func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTableRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.svc.CreateTable(r.Context(), table.CreateTableParams{
		Number:   req.Number,
		Capacity: req.Capacity,
		Location: req.Location,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tableOut(t))
}

type updateTableRequest struct {
	Number      *int    `json:"number"`
	Capacity    *int    `json:"capacity"`
	Location    *string `json:"location"`
	IsAvailable *bool   `json:"is_available"`
}

func (h *TableHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateTableRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.svc.UpdateTable(r.Context(), id, table.UpdateTableParams{
		Number:      req.Number,
		Capacity:    req.Capacity,
		Location:    req.Location,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tableOut(t))
}

func (h *TableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteTable(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Table deleted successfully"})
}

type tableResponse struct {
	ID          uint   `json:"id"`
	Number      int    `json:"number"`
	Capacity    int    `json:"capacity"`
	Location    string `json:"location,omitempty"`
	IsAvailable bool   `json:"is_available"`
}

func tableOut(t *table.Table) tableResponse {
	return tableResponse{
		ID:          t.ID,
		Number:      t.Number,
		Capacity:    t.Capacity,
		Location:    t.Location,
		IsAvailable: t.IsAvailable,
	}
}

func tablesOut(tables []*table.Table) []tableResponse {
	out := make([]tableResponse, 0, len(tables))
	for _, t := range tables {
		out = append(out, tableOut(t))
	}
	return out
}
