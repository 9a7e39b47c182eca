package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"washbook/internal/service"

	"github.com/gorilla/mux"
)

type AdminHandler struct {
	Service *service.BookingService
}

func NewAdminHandler(svc *service.BookingService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	list, err := h.Service.ListBookings(r.Context(), limit, offset)
	if err != nil {
		http.Error(w, "Could not list bookings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(list)
}

func (h *AdminHandler) UpdateBranchCapacity(w http.ResponseWriter, r *http.Request) {
	branch := mux.Vars(r)["branch"]
	var req CapacityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.SetBranchCapacity(r.Context(), branch, req.SlotCapacity); err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Capacity updated"})
}
