package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"washbook/internal/db"
	"washbook/internal/entities"
)

// ErrBookingNotFound is returned when no booking matches the lookup.
var ErrBookingNotFound = errors.New("booking not found")

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

func (r *BookingRepository) CreateBooking(ctx context.Context, b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(code, category, service, service_type, unit_type, unit_size,
		 full_name, mobile, email, plate_number, vehicle_model, address,
		 date, time_slot, branch, scheduled_at,
		 base_price, total_price, payment_method, receipt_ref,
		 accepted_terms, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRowContext(ctx, query,
		b.Code,
		b.Category,
		b.Service,
		b.ServiceType,
		b.UnitType,
		b.UnitSize,
		b.FullName,
		b.Mobile,
		b.Email,
		b.PlateNumber,
		b.VehicleModel,
		b.Address,
		b.Date,
		b.TimeSlot,
		b.Branch,
		b.ScheduledAt,
		b.BasePrice,
		b.TotalPrice,
		b.PaymentMethod,
		b.ReceiptRef,
		b.AcceptedTerms,
		b.Notes,
		b.Status,
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// SlotCounts returns the number of non-cancelled bookings per time slot
// for the given date and branch.
func (r *BookingRepository) SlotCounts(ctx context.Context, date, branch string) (map[string]int, error) {
	query := `
		SELECT time_slot, COUNT(*)
		FROM bookings
		WHERE date = $1 AND branch = $2 AND status IN ('pending', 'confirmed')
		GROUP BY time_slot`
	rows, err := r.DB.QueryContext(ctx, query, date, branch)
	if err != nil {
		return nil, fmt.Errorf("error querying slot occupancy: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var slot string
		var count int
		if err := rows.Scan(&slot, &count); err != nil {
			return nil, fmt.Errorf("error scanning slot occupancy: %w", err)
		}
		counts[slot] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating slot occupancy rows: %w", err)
	}
	return counts, nil
}

// BranchSlotCapacity returns the per-slot capacity for a branch, or
// fallback when no capacity row is configured.
func (r *BookingRepository) BranchSlotCapacity(ctx context.Context, branch string, fallback int) (int, error) {
	var capacity int
	err := r.DB.QueryRowContext(ctx,
		`SELECT slot_capacity FROM branch_capacities WHERE branch = $1`, branch).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fallback, nil
		}
		return 0, fmt.Errorf("error querying branch capacity: %w", err)
	}
	return capacity, nil
}

func (r *BookingRepository) SetBranchSlotCapacity(ctx context.Context, branch string, capacity int) error {
	query := `
		INSERT INTO branch_capacities (branch, slot_capacity)
		VALUES ($1, $2)
		ON CONFLICT (branch) DO UPDATE SET slot_capacity = EXCLUDED.slot_capacity`
	if _, err := r.DB.ExecContext(ctx, query, branch, capacity); err != nil {
		return fmt.Errorf("error updating branch capacity: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetBookingByCode(ctx context.Context, code, email string) (*db.Booking, error) {
	query := selectBooking + ` WHERE code = $1 AND email = $2`
	return r.scanBooking(r.DB.QueryRowContext(ctx, query, code, email))
}

func (r *BookingRepository) GetBookingByCodeOnly(ctx context.Context, code string) (*db.Booking, error) {
	query := selectBooking + ` WHERE code = $1`
	return r.scanBooking(r.DB.QueryRowContext(ctx, query, code))
}

func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, code, status string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE code = $2`, status, code)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) ListBookings(ctx context.Context, limit, offset int) (*entities.BookingsList, error) {
	var total int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total); err != nil {
		return nil, fmt.Errorf("error counting bookings: %w", err)
	}

	query := selectBooking + ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer rows.Close()

	list := &entities.BookingsList{Total: total, Limit: limit, Offset: offset}
	for rows.Next() {
		b, err := r.scanBookingRows(rows)
		if err != nil {
			return nil, err
		}
		list.Bookings = append(list.Bookings, ToBookingResponse(b))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return list, nil
}

const selectBooking = `
	SELECT id, code, category, service, service_type, unit_type, unit_size,
	       full_name, mobile, email, plate_number, vehicle_model, address,
	       date, time_slot, branch, scheduled_at,
	       base_price, total_price, payment_method, receipt_ref,
	       accepted_terms, notes, status, created_at, updated_at
	FROM bookings`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *BookingRepository) scanBooking(row rowScanner) (*db.Booking, error) {
	b, err := r.scanBookingRows(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BookingRepository) scanBookingRows(row rowScanner) (*db.Booking, error) {
	var b db.Booking
	err := row.Scan(
		&b.ID, &b.Code, &b.Category, &b.Service, &b.ServiceType, &b.UnitType, &b.UnitSize,
		&b.FullName, &b.Mobile, &b.Email, &b.PlateNumber, &b.VehicleModel, &b.Address,
		&b.Date, &b.TimeSlot, &b.Branch, &b.ScheduledAt,
		&b.BasePrice, &b.TotalPrice, &b.PaymentMethod, &b.ReceiptRef,
		&b.AcceptedTerms, &b.Notes, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error scanning booking: %w", err)
	}
	return &b, nil
}

// ToBookingResponse converts a persisted row into its API shape.
func ToBookingResponse(b *db.Booking) entities.BookingResponse {
	return entities.BookingResponse{
		Code:        b.Code,
		Category:    entities.Category(b.Category),
		Service:     b.Service,
		ServiceType: entities.ServiceType(b.ServiceType),
		UnitType:    entities.UnitType(b.UnitType),
		UnitSize:    entities.UnitSize(b.UnitSize),
		Customer: entities.Customer{
			FullName:     b.FullName,
			Mobile:       b.Mobile,
			Email:        b.Email,
			PlateNumber:  b.PlateNumber,
			VehicleModel: b.VehicleModel,
			Address:      b.Address,
		},
		Schedule: entities.Schedule{
			Date:     b.Date,
			TimeSlot: b.TimeSlot,
			Branch:   b.Branch,
		},
		BasePrice:     b.BasePrice,
		TotalPrice:    b.TotalPrice,
		PaymentMethod: entities.PaymentMethod(b.PaymentMethod),
		Status:        b.Status,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
