package config

import (
	"math"

	"washbook/internal/entities"
)

// DefaultHomeMultiplier applies to home-service bookings when the
// configured multiplier is unset or invalid.
const DefaultHomeMultiplier = 1.2

// DefaultSlotCapacity is used for branches with no explicit capacity row.
const DefaultSlotCapacity = 3

type CarwashService struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// HomeServicePolicy controls which selections may be delivered at the
// customer's location. CarwashServices narrows the carwash category to
// specific services; empty means every carwash service qualifies.
type HomeServicePolicy struct {
	Enabled         bool                       `json:"enabled"`
	Multiplier      float64                    `json:"multiplier"`
	Categories      map[entities.Category]bool `json:"categories"`
	CarwashServices map[string]bool            `json:"carwash_services,omitempty"`
}

// BookingConfig is the read-only configuration snapshot the wizard and
// booking services are constructed with. It is never mutated after load.
type BookingConfig struct {
	Carwash         map[string]CarwashService                       `json:"carwash"`
	AutoDetailing   map[entities.UnitType]map[entities.UnitSize]int `json:"auto_detailing"`
	GrapheneCoating map[entities.UnitType]map[entities.UnitSize]int `json:"graphene_coating"`
	HomeService     HomeServicePolicy                               `json:"home_service"`
	Branches        []string                                        `json:"branches"`
	TimeSlots       []string                                        `json:"time_slots"`
	PaymentMethods  []entities.PaymentMethod                        `json:"payment_methods"`
}

// Multiplier returns the effective home-service multiplier.
func (c BookingConfig) Multiplier() float64 {
	if c.HomeService.Multiplier <= 0 {
		return DefaultHomeMultiplier
	}
	return c.HomeService.Multiplier
}

// HomeAllowed reports whether the current selection may be booked as a
// home service. For the carwash category the chosen service must also
// pass the service allow-list when one is configured.
func (c BookingConfig) HomeAllowed(cat entities.Category, service string) bool {
	if !c.HomeService.Enabled {
		return false
	}
	if !c.HomeService.Categories[cat] {
		return false
	}
	if cat == entities.CategoryCarwash && len(c.HomeService.CarwashServices) > 0 {
		return c.HomeService.CarwashServices[service]
	}
	return true
}

// HasBranch reports whether the branch name is configured.
func (c BookingConfig) HasBranch(branch string) bool {
	for _, b := range c.Branches {
		if b == branch {
			return true
		}
	}
	return false
}

// HasTimeSlot reports whether the slot is part of the bookable schedule.
func (c BookingConfig) HasTimeSlot(slot string) bool {
	for _, s := range c.TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// HomePrice applies the home-service multiplier to a base price,
// rounding to the nearest whole peso.
func (c BookingConfig) HomePrice(base int) int {
	return int(math.Round(float64(base) * c.Multiplier()))
}

// Default returns the documented default configuration. It is the
// standard price list used in development and tests; production loads
// the snapshot from the database instead.
func Default() BookingConfig {
	return BookingConfig{
		Carwash: map[string]CarwashService{
			"express": {Name: "Express Wash", Price: 350},
			"classic": {Name: "Classic Wash", Price: 500},
			"premium": {Name: "Premium Wash", Price: 800},
			"vip":     {Name: "VIP Wash & Wax", Price: 1200},
		},
		AutoDetailing: map[entities.UnitType]map[entities.UnitSize]int{
			entities.UnitTypeCar: {
				entities.SizeSedan:    3500,
				entities.SizeSUV:      4500,
				entities.SizePickup:   5000,
				entities.SizeVanSmall: 5500,
				entities.SizeVanBig:   6500,
			},
			entities.UnitTypeMotorcycle: {
				entities.SizeRegular: 1500,
				entities.SizeMedium:  2000,
				entities.SizeBigBike: 2800,
			},
		},
		GrapheneCoating: map[entities.UnitType]map[entities.UnitSize]int{
			entities.UnitTypeCar: {
				entities.SizeSedan:    8000,
				entities.SizeSUV:      10000,
				entities.SizePickup:   11000,
				entities.SizeVanSmall: 12000,
				entities.SizeVanBig:   14000,
			},
			entities.UnitTypeMotorcycle: {
				entities.SizeRegular: 4000,
				entities.SizeMedium:  5000,
				entities.SizeBigBike: 6500,
			},
		},
		HomeService: HomeServicePolicy{
			Enabled:    true,
			Multiplier: DefaultHomeMultiplier,
			Categories: map[entities.Category]bool{
				entities.CategoryCarwash: true,
			},
		},
		Branches:  []string{"Tumaga", "Boalan", "San Roque"},
		TimeSlots: []string{"8:00 AM", "9:00 AM", "10:00 AM", "11:00 AM", "1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM"},
		PaymentMethods: []entities.PaymentMethod{
			entities.PayAtBranch,
			entities.PayOnline,
			entities.PayOnsite,
		},
	}
}

// Empty returns the zeroed configuration used when the configuration
// provider fails: every price resolves to 0 and no branch or slot is
// bookable. Degraded, never fatal.
func Empty() BookingConfig {
	return BookingConfig{
		Carwash:         map[string]CarwashService{},
		AutoDetailing:   map[entities.UnitType]map[entities.UnitSize]int{},
		GrapheneCoating: map[entities.UnitType]map[entities.UnitSize]int{},
		HomeService:     HomeServicePolicy{Categories: map[entities.Category]bool{}},
	}
}
