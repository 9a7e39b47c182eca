package db

import "time"

// Booking is the persisted row for a submitted booking.
type Booking struct {
	ID            int
	Code          string
	Category      string
	Service       string
	ServiceType   string
	UnitType      string
	UnitSize      string
	FullName      string
	Mobile        string
	Email         string
	PlateNumber   string
	VehicleModel  string
	Address       string
	Date          string // YYYY-MM-DD
	TimeSlot      string
	Branch        string
	ScheduledAt   time.Time
	BasePrice     int
	TotalPrice    int
	PaymentMethod string
	ReceiptRef    string
	AcceptedTerms bool
	Notes         string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BranchCapacity is the per-slot capacity configured for a branch.
type BranchCapacity struct {
	Branch       string
	SlotCapacity int
}
