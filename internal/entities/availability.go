package entities

// AvailabilitySlot is the occupancy snapshot for one bookable time slot
// at a branch. The snapshot may be stale by the time the customer
// submits; the final capacity check happens at booking creation.
type AvailabilitySlot struct {
	Time            string `json:"time"`
	CurrentBookings int    `json:"current_bookings"`
	MaxCapacity     int    `json:"max_capacity"`
	Available       bool   `json:"available"`
}

type AvailabilityResponse struct {
	Date   string             `json:"date"`
	Branch string             `json:"branch"`
	Slots  []AvailabilitySlot `json:"slots"`
}
