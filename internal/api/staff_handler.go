package api

import (
	"net/http"
	"time"

	"github.com/hector17rock/SeatServe/internal/staff"
)

type StaffHandler struct {
	svc staff.Service
}

func NewStaffHandler(svc staff.Service) *StaffHandler {
	return &StaffHandler{svc: svc}
}

func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("active") == "true"

	members, err := h.svc.GetAllStaff(r.Context(), onlyActive)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]staffResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toStaffResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	member, err := h.svc.GetStaff(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toStaffResponse(member))
}

type createStaffRequest struct {
	Username string     `json:"username"`
	Email    string     `json:"email"`
	FullName string     `json:"full_name"`
	Password string     `json:"password"`
	Role     string     `json:"role"`
	Phone    string     `json:"phone"`
	HireDate *time.Time `json:"hire_date"`
}

func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createStaffRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	member, err := h.svc.CreateStaff(r.Context(), staff.CreateStaffParams{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
		HireDate: req.HireDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toStaffResponse(member))
}

type updateStaffRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
	Phone    *string `json:"phone"`
}

func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateStaffRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	member, err := h.svc.UpdateStaff(r.Context(), id, staff.UpdateStaffParams{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: req.IsActive,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toStaffResponse(member))
}

func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteStaff(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Staff member deleted successfully"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	Staff       staffResponse `json:"staff"`
}

func (h *StaffHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, member, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Staff:       toStaffResponse(member),
	})
}
