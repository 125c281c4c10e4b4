package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hector17rock/SeatServe/internal/logger"
	"github.com/hector17rock/SeatServe/internal/menu"
	"github.com/hector17rock/SeatServe/internal/order"
	"github.com/hector17rock/SeatServe/internal/staff"
	"github.com/hector17rock/SeatServe/internal/table"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps sentinel errors onto HTTP statuses and surfaces their
// messages verbatim, as the original API does.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed", zap.Error(err))
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, order.ErrOrderItemNotFound),
		errors.Is(err, order.ErrTableNotFound),
		errors.Is(err, order.ErrMenuItemNotFound),
		errors.Is(err, table.ErrTableNotFound),
		errors.Is(err, menu.ErrCategoryNotFound),
		errors.Is(err, menu.ErrItemNotFound),
		errors.Is(err, staff.ErrStaffNotFound):
		return http.StatusNotFound

	case errors.Is(err, order.ErrTableUnavailable),
		errors.Is(err, order.ErrMenuItemUnavailable),
		errors.Is(err, order.ErrOrderLocked),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, menu.ErrDuplicateName),
		errors.Is(err, menu.ErrInvalidPrice),
		errors.Is(err, table.ErrDuplicateNumber),
		errors.Is(err, table.ErrTableOccupied),
		errors.Is(err, staff.ErrDuplicateUsername):
		return http.StatusBadRequest

	case errors.Is(err, staff.ErrInvalidCredentials),
		errors.Is(err, staff.ErrInactiveAccount):
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
