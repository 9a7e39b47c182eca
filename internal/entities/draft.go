package entities

import "time"

type Category string

const (
	CategoryCarwash         Category = "carwash"
	CategoryAutoDetailing   Category = "auto_detailing"
	CategoryGrapheneCoating Category = "graphene_coating"
)

type ServiceType string

const (
	ServiceTypeBranch ServiceType = "branch"
	ServiceTypeHome   ServiceType = "home"
)

type UnitType string

const (
	UnitTypeCar        UnitType = "car"
	UnitTypeMotorcycle UnitType = "motorcycle"
)

type UnitSize string

const (
	SizeSedan    UnitSize = "sedan"
	SizeSUV      UnitSize = "suv"
	SizePickup   UnitSize = "pickup"
	SizeVanSmall UnitSize = "van_small"
	SizeVanBig   UnitSize = "van_big"

	SizeRegular UnitSize = "regular"
	SizeMedium  UnitSize = "medium"
	SizeBigBike UnitSize = "big_bike"
)

type PaymentMethod string

const (
	PayAtBranch PaymentMethod = "branch"
	PayOnline   PaymentMethod = "online"
	PayOnsite   PaymentMethod = "onsite"
)

// SizesFor returns the unit sizes that are valid for the given unit type.
func SizesFor(ut UnitType) []UnitSize {
	switch ut {
	case UnitTypeCar:
		return []UnitSize{SizeSedan, SizeSUV, SizePickup, SizeVanSmall, SizeVanBig}
	case UnitTypeMotorcycle:
		return []UnitSize{SizeRegular, SizeMedium, SizeBigBike}
	}
	return nil
}

// ValidSizeFor reports whether the size belongs to the unit type's domain.
func ValidSizeFor(ut UnitType, size UnitSize) bool {
	for _, s := range SizesFor(ut) {
		if s == size {
			return true
		}
	}
	return false
}

type Customer struct {
	FullName     string `json:"full_name"`
	Mobile       string `json:"mobile"`
	Email        string `json:"email"`
	PlateNumber  string `json:"plate_number,omitempty"`
	VehicleModel string `json:"vehicle_model,omitempty"`
	Address      string `json:"address,omitempty"`
}

type Schedule struct {
	Date     string `json:"date"` // YYYY-MM-DD
	TimeSlot string `json:"time_slot"`
	Branch   string `json:"branch"`
}

type Payment struct {
	Method     PaymentMethod `json:"method"`
	ReceiptRef string        `json:"receipt_ref,omitempty"`
}

// BookingDraft is the in-progress booking record accumulated across the
// wizard steps. BasePrice and TotalPrice are derived values; they are
// recomputed whenever a price-affecting field changes and must never be
// set directly by callers.
type BookingDraft struct {
	Category      Category    `json:"category"`
	Service       string      `json:"service"`
	ServiceType   ServiceType `json:"service_type"`
	UnitType      UnitType    `json:"unit_type"`
	UnitSize      UnitSize    `json:"unit_size"`
	Customer      Customer    `json:"customer"`
	Schedule      Schedule    `json:"schedule"`
	Payment       Payment     `json:"payment"`
	AcceptedTerms bool        `json:"accepted_terms"`
	Notes         string      `json:"notes,omitempty"`
	BasePrice     int         `json:"base_price"`
	TotalPrice    int         `json:"total_price"`
}

const (
	FirstStep = 1
	LastStep  = 5
)

// WizardSession is one customer's pass through the booking wizard. The
// draft is exclusively owned by the session for the lifetime of one
// booking attempt; abandoned sessions expire out of the store.
type WizardSession struct {
	ID        string       `json:"id"`
	Step      int          `json:"step"`
	Guest     bool         `json:"guest"`
	Draft     BookingDraft `json:"draft"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
