package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"washbook/internal/config"
	httperrors "washbook/internal/errors"
	"washbook/internal/repository"
	"washbook/internal/service"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	Service *service.BookingService
	Cfg     config.BookingConfig
}

func NewBookingHandler(svc *service.BookingService, cfg config.BookingConfig) *BookingHandler {
	return &BookingHandler{Service: svc, Cfg: cfg}
}

// GetConfig exposes the read-only configuration snapshot the front end
// renders the wizard from.
func (h *BookingHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.Cfg)
}

func (h *BookingHandler) GetPrices(w http.ResponseWriter, r *http.Request) {
	type priceRow struct {
		Category string `json:"category"`
		Service  string `json:"service,omitempty"`
		UnitType string `json:"unit_type,omitempty"`
		UnitSize string `json:"unit_size,omitempty"`
		Price    int    `json:"price"`
	}
	var prices []priceRow
	for code, svc := range h.Cfg.Carwash {
		prices = append(prices, priceRow{Category: "carwash", Service: code, Price: svc.Price})
	}
	for ut, sizes := range h.Cfg.AutoDetailing {
		for size, price := range sizes {
			prices = append(prices, priceRow{Category: "auto_detailing", UnitType: string(ut), UnitSize: string(size), Price: price})
		}
	}
	for ut, sizes := range h.Cfg.GrapheneCoating {
		for size, price := range sizes {
			prices = append(prices, priceRow{Category: "graphene_coating", UnitType: string(ut), UnitSize: string(size), Price: price})
		}
	}
	json.NewEncoder(w).Encode(prices)
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	availability, err := h.Service.Availability(r.Context(), req.Date, req.Branch)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(availability)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "email query parameter is required", http.StatusBadRequest)
		return
	}
	booking, err := h.Service.GetBookingByCode(r.Context(), code, email)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			http.Error(w, "Booking not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(booking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	err := h.Service.Cancel(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			http.Error(w, "Booking not found", http.StatusNotFound)
		case errors.Is(err, service.ErrCancelTooLate):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "Could not cancel booking", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Booking cancelled"})
}

// writeError maps service errors onto HTTP responses, honoring the
// status carried by HTTPError values.
func writeError(w http.ResponseWriter, err error) {
	var httpErr *httperrors.HTTPError
	if errors.As(err, &httpErr) {
		http.Error(w, httpErr.Message, httpErr.Code)
		return
	}
	http.Error(w, "Internal error", http.StatusInternalServerError)
}
