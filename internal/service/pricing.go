package service

import (
	"washbook/internal/config"
	"washbook/internal/entities"
)

// BasePrice resolves the base price for the draft's current selection
// from the pricing table. Missing entries price to 0, which renders the
// selection non-bookable rather than failing.
func BasePrice(d *entities.BookingDraft, cfg config.BookingConfig) int {
	switch d.Category {
	case entities.CategoryCarwash:
		return cfg.Carwash[d.Service].Price
	case entities.CategoryAutoDetailing:
		return cfg.AutoDetailing[d.UnitType][d.UnitSize]
	case entities.CategoryGrapheneCoating:
		return cfg.GrapheneCoating[d.UnitType][d.UnitSize]
	}
	return 0
}

// RecomputePrices derives BasePrice and TotalPrice from the draft's
// current selection. The derivation is pure and idempotent; it runs
// after every price-affecting update rather than on a timer.
func RecomputePrices(d *entities.BookingDraft, cfg config.BookingConfig) {
	d.BasePrice = BasePrice(d, cfg)
	if d.ServiceType == entities.ServiceTypeHome && cfg.HomeService.Enabled {
		d.TotalPrice = cfg.HomePrice(d.BasePrice)
	} else {
		d.TotalPrice = d.BasePrice
	}
}
