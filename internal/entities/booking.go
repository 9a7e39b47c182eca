package entities

import "time"

// BookingPayload is the submission payload built from a completed draft.
type BookingPayload struct {
	Category      Category      `json:"category"`
	Service       string        `json:"service,omitempty"`
	ServiceType   ServiceType   `json:"service_type"`
	UnitType      UnitType      `json:"unit_type"`
	UnitSize      UnitSize      `json:"unit_size"`
	Customer      Customer      `json:"customer"`
	Schedule      Schedule      `json:"schedule"`
	BasePrice     int           `json:"base_price"`
	TotalPrice    int           `json:"total_price"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	ReceiptRef    string        `json:"receipt_ref,omitempty"`
	AcceptedTerms bool          `json:"accepted_terms"`
	Notes         string        `json:"notes,omitempty"`
}

type BookingConfirmation struct {
	BookingID        int    `json:"booking_id"`
	ConfirmationCode string `json:"confirmation_code"`
	Status           string `json:"status"`
	TotalPrice       int    `json:"total_price"`
}

type BookingResponse struct {
	Code          string        `json:"code"`
	Category      Category      `json:"category"`
	Service       string        `json:"service,omitempty"`
	ServiceType   ServiceType   `json:"service_type"`
	UnitType      UnitType      `json:"unit_type"`
	UnitSize      UnitSize      `json:"unit_size"`
	Customer      Customer      `json:"customer"`
	Schedule      Schedule      `json:"schedule"`
	BasePrice     int           `json:"base_price"`
	TotalPrice    int           `json:"total_price"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        string        `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type BookingsList struct {
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
	Bookings []BookingResponse `json:"bookings"`
}

type BookingEmailData struct {
	FullName          string
	ConfirmationCode  string
	ServiceLabel      string
	ScheduleFormatted string
	Branch            string
	TotalPrice        int
	Status            string
	CurrentYear       int
}
