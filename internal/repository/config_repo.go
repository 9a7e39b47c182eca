package repository

import (
	"context"
	"database/sql"
	"fmt"

	"washbook/internal/config"
	"washbook/internal/entities"
)

// ConfigRepository loads the booking configuration snapshot from the
// database. It is read once per server start; the snapshot is never
// mutated afterwards.
type ConfigRepository struct {
	DB *sql.DB
}

func NewConfigRepository(database *sql.DB) *ConfigRepository {
	return &ConfigRepository{DB: database}
}

// Load assembles a BookingConfig from the configuration tables. Any
// query failure aborts the load; the caller decides whether to fall
// back to the degraded empty configuration.
func (r *ConfigRepository) Load(ctx context.Context) (config.BookingConfig, error) {
	cfg := config.Empty()

	if err := r.loadCarwashServices(ctx, &cfg); err != nil {
		return config.Empty(), err
	}
	if err := r.loadUnitPrices(ctx, &cfg); err != nil {
		return config.Empty(), err
	}
	if err := r.loadHomePolicy(ctx, &cfg); err != nil {
		return config.Empty(), err
	}
	if err := r.loadLists(ctx, &cfg); err != nil {
		return config.Empty(), err
	}
	return cfg, nil
}

func (r *ConfigRepository) loadCarwashServices(ctx context.Context, cfg *config.BookingConfig) error {
	rows, err := r.DB.QueryContext(ctx, `SELECT code, name, price FROM carwash_services ORDER BY code`)
	if err != nil {
		return fmt.Errorf("error querying carwash services: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		var svc config.CarwashService
		if err := rows.Scan(&code, &svc.Name, &svc.Price); err != nil {
			return fmt.Errorf("error scanning carwash service: %w", err)
		}
		cfg.Carwash[code] = svc
	}
	return rows.Err()
}

func (r *ConfigRepository) loadUnitPrices(ctx context.Context, cfg *config.BookingConfig) error {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT category, unit_type, unit_size, price FROM unit_prices`)
	if err != nil {
		return fmt.Errorf("error querying unit prices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category, unitType, unitSize string
		var price int
		if err := rows.Scan(&category, &unitType, &unitSize, &price); err != nil {
			return fmt.Errorf("error scanning unit price: %w", err)
		}
		var table map[entities.UnitType]map[entities.UnitSize]int
		switch entities.Category(category) {
		case entities.CategoryAutoDetailing:
			table = cfg.AutoDetailing
		case entities.CategoryGrapheneCoating:
			table = cfg.GrapheneCoating
		default:
			continue
		}
		ut := entities.UnitType(unitType)
		if table[ut] == nil {
			table[ut] = make(map[entities.UnitSize]int)
		}
		table[ut][entities.UnitSize(unitSize)] = price
	}
	return rows.Err()
}

func (r *ConfigRepository) loadHomePolicy(ctx context.Context, cfg *config.BookingConfig) error {
	err := r.DB.QueryRowContext(ctx,
		`SELECT enabled, multiplier FROM home_service_policy LIMIT 1`).
		Scan(&cfg.HomeService.Enabled, &cfg.HomeService.Multiplier)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil // home service stays disabled
		}
		return fmt.Errorf("error querying home service policy: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT category, COALESCE(service, '') FROM home_service_allowed`)
	if err != nil {
		return fmt.Errorf("error querying home service allow-list: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category, service string
		if err := rows.Scan(&category, &service); err != nil {
			return fmt.Errorf("error scanning home service allow-list: %w", err)
		}
		cfg.HomeService.Categories[entities.Category(category)] = true
		if service != "" {
			if cfg.HomeService.CarwashServices == nil {
				cfg.HomeService.CarwashServices = make(map[string]bool)
			}
			cfg.HomeService.CarwashServices[service] = true
		}
	}
	return rows.Err()
}

func (r *ConfigRepository) loadLists(ctx context.Context, cfg *config.BookingConfig) error {
	if err := r.loadStrings(ctx, `SELECT branch FROM branch_capacities ORDER BY branch`, &cfg.Branches); err != nil {
		return err
	}
	if err := r.loadStrings(ctx, `SELECT slot FROM time_slots ORDER BY position`, &cfg.TimeSlots); err != nil {
		return err
	}
	var methods []string
	if err := r.loadStrings(ctx, `SELECT name FROM payment_methods ORDER BY id`, &methods); err != nil {
		return err
	}
	for _, m := range methods {
		cfg.PaymentMethods = append(cfg.PaymentMethods, entities.PaymentMethod(m))
	}
	return nil
}

func (r *ConfigRepository) loadStrings(ctx context.Context, query string, dest *[]string) error {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("error querying configuration list: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return fmt.Errorf("error scanning configuration list: %w", err)
		}
		*dest = append(*dest, v)
	}
	return rows.Err()
}
