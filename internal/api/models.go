package api

import (
	"encoding/json"
	"fmt"
	"io"

	"washbook/internal/entities"
)

// Availability
type AvailabilityRequest struct {
	Date   string `json:"date"`
	Branch string `json:"branch"`
}

// Wizard
type SessionResponse struct {
	SessionID string                `json:"session_id"`
	Step      int                   `json:"step"`
	Guest     bool                  `json:"guest"`
	Draft     entities.BookingDraft `json:"draft"`
}

type CapacityRequest struct {
	SlotCapacity int `json:"slot_capacity"`
}

// updateEnvelope carries the tagged-union draft update over the wire:
// {"op": "set_category", "category": "carwash"}.
type updateEnvelope struct {
	Op string `json:"op"`
}

// DecodeDraftUpdate reads one draft update from the request body and
// returns the concrete operation named by its "op" discriminator.
func DecodeDraftUpdate(body io.Reader) (entities.DraftUpdate, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read update: %w", err)
	}
	var envelope updateEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("invalid update: %w", err)
	}

	var update entities.DraftUpdate
	switch envelope.Op {
	case "set_category":
		var u entities.SetCategory
		err = json.Unmarshal(raw, &u)
		update = u
	case "set_service":
		var u entities.SetService
		err = json.Unmarshal(raw, &u)
		update = u
	case "set_service_type":
		var u entities.SetServiceType
		err = json.Unmarshal(raw, &u)
		update = u
	case "set_unit_type":
		var u entities.SetUnitType
		err = json.Unmarshal(raw, &u)
		update = u
	case "set_unit_size":
		var u entities.SetUnitSize
		err = json.Unmarshal(raw, &u)
		update = u
	case "set_customer":
		var u entities.SetCustomer
		err = json.Unmarshal(raw, &u)
		update = u
	case "set_schedule":
		var u entities.SetSchedule
		err = json.Unmarshal(raw, &u)
		update = u
	case "set_payment_method":
		var u entities.SetPaymentMethod
		err = json.Unmarshal(raw, &u)
		update = u
	case "set_receipt":
		var u entities.SetReceipt
		err = json.Unmarshal(raw, &u)
		update = u
	case "set_accepted_terms":
		var u entities.SetAcceptedTerms
		err = json.Unmarshal(raw, &u)
		update = u
	case "set_notes":
		var u entities.SetNotes
		err = json.Unmarshal(raw, &u)
		update = u
	default:
		return nil, fmt.Errorf("unknown update op %q", envelope.Op)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %q update: %w", envelope.Op, err)
	}
	return update, nil
}

func sessionResponse(session *entities.WizardSession) SessionResponse {
	return SessionResponse{
		SessionID: session.ID,
		Step:      session.Step,
		Guest:     session.Guest,
		Draft:     session.Draft,
	}
}
