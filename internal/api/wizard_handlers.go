package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"washbook/internal/auth"
	"washbook/internal/entities"
	"washbook/internal/repository"
	"washbook/internal/service"

	"github.com/gorilla/mux"
)

type WizardHandler struct {
	Service *service.WizardService
}

func NewWizardHandler(svc *service.WizardService) *WizardHandler {
	return &WizardHandler{Service: svc}
}

func (h *WizardHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	actor := auth.FromContext(r.Context())
	session, err := h.Service.StartSession(r.Context(), actor.Guest, actor.Email)
	if err != nil {
		http.Error(w, "Could not start booking session", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sessionResponse(session))
}

func (h *WizardHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.Service.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.sessionError(w, err)
		return
	}
	json.NewEncoder(w).Encode(sessionResponse(session))
}

func (h *WizardHandler) ApplyUpdate(w http.ResponseWriter, r *http.Request) {
	update, err := DecodeDraftUpdate(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.Service.ApplyUpdate(r.Context(), mux.Vars(r)["id"], update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHomeServiceUnavailable):
			// Cross-field policy violation: the wizard was sent back to
			// step 1 so the customer can re-select a category.
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":         err.Error(),
				"redirect_step": entities.FirstStep,
				"session":       sessionResponse(session),
			})
		case errors.Is(err, service.ErrInvalidUnitSize):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.sessionError(w, err)
		}
		return
	}
	json.NewEncoder(w).Encode(sessionResponse(session))
}

func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	session, issues, err := h.Service.Next(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.sessionError(w, err)
		return
	}
	if len(issues) > 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"issues":  issues,
			"session": sessionResponse(session),
		})
		return
	}
	json.NewEncoder(w).Encode(sessionResponse(session))
}

func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	session, err := h.Service.Back(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.sessionError(w, err)
		return
	}
	json.NewEncoder(w).Encode(sessionResponse(session))
}

func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	confirmation, issues, err := h.Service.Submit(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAtFinalStep):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, service.ErrSlotFull):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, repository.ErrSessionNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			// Draft is preserved; the customer can resubmit.
			http.Error(w, "Could not submit booking, please try again", http.StatusBadGateway)
		}
		return
	}
	if len(issues) > 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{"issues": issues})
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(confirmation)
}

func (h *WizardHandler) sessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrSessionNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, "Internal error", http.StatusInternalServerError)
}
