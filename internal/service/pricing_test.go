package service

import (
	"testing"

	"washbook/internal/config"
	"washbook/internal/entities"

	"github.com/stretchr/testify/assert"
)

func TestBasePriceCarwash(t *testing.T) {
	cfg := config.Default()
	d := &entities.BookingDraft{
		Category: entities.CategoryCarwash,
		Service:  "classic",
	}
	assert.Equal(t, 500, BasePrice(d, cfg))
}

func TestBasePriceAutoDetailingByUnit(t *testing.T) {
	cfg := config.Default()
	d := &entities.BookingDraft{
		Category: entities.CategoryAutoDetailing,
		UnitType: entities.UnitTypeMotorcycle,
		UnitSize: entities.SizeBigBike,
	}
	assert.Equal(t, 2800, BasePrice(d, cfg))
}

func TestBasePriceDefaultsToZeroWhenAbsent(t *testing.T) {
	cfg := config.Default()

	d := &entities.BookingDraft{Category: entities.CategoryCarwash, Service: "no_such_service"}
	assert.Equal(t, 0, BasePrice(d, cfg))

	d = &entities.BookingDraft{
		Category: entities.CategoryGrapheneCoating,
		UnitType: entities.UnitTypeCar,
		// no size chosen yet
	}
	assert.Equal(t, 0, BasePrice(d, cfg))

	empty := config.Empty()
	d = &entities.BookingDraft{Category: entities.CategoryCarwash, Service: "classic"}
	assert.Equal(t, 0, BasePrice(d, empty))
}

func TestRecomputePricesHomeMultiplier(t *testing.T) {
	cfg := config.Default()
	d := &entities.BookingDraft{
		Category:    entities.CategoryCarwash,
		Service:     "classic",
		ServiceType: entities.ServiceTypeHome,
	}
	RecomputePrices(d, cfg)
	assert.Equal(t, 500, d.BasePrice)
	assert.Equal(t, 600, d.TotalPrice)
}

func TestRecomputePricesBranchServiceNoMultiplier(t *testing.T) {
	cfg := config.Default()
	d := &entities.BookingDraft{
		Category:    entities.CategoryCarwash,
		Service:     "premium",
		ServiceType: entities.ServiceTypeBranch,
	}
	RecomputePrices(d, cfg)
	assert.Equal(t, 800, d.BasePrice)
	assert.Equal(t, 800, d.TotalPrice)
}

func TestRecomputePricesIdempotent(t *testing.T) {
	cfg := config.Default()
	d := &entities.BookingDraft{
		Category:    entities.CategoryAutoDetailing,
		UnitType:    entities.UnitTypeCar,
		UnitSize:    entities.SizeSUV,
		ServiceType: entities.ServiceTypeBranch,
	}
	RecomputePrices(d, cfg)
	base, total := d.BasePrice, d.TotalPrice
	RecomputePrices(d, cfg)
	assert.Equal(t, base, d.BasePrice)
	assert.Equal(t, total, d.TotalPrice)
}

func TestMultiplierDefaultsWhenUnset(t *testing.T) {
	cfg := config.Default()
	cfg.HomeService.Multiplier = 0
	assert.Equal(t, config.DefaultHomeMultiplier, cfg.Multiplier())
	assert.Equal(t, 600, cfg.HomePrice(500))
}
