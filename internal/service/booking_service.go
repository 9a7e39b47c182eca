package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"washbook/internal/config"
	"washbook/internal/db"
	"washbook/internal/entities"
	httperrors "washbook/internal/errors"
	"washbook/internal/repository"
	"washbook/internal/utils"
)

const (
	statusPending   = "pending"
	statusConfirmed = "confirmed"
	statusCompleted = "completed"
	statusCanceled  = "canceled"
)

var (
	// ErrSlotFull is the server-side double-booking guard: the chosen
	// slot filled up between the availability snapshot and submission.
	ErrSlotFull = errors.New("selected time slot is fully booked")

	// ErrCancelTooLate enforces the minimum cancellation lead time.
	ErrCancelTooLate = errors.New("bookings can only be cancelled more than 2 hours before the scheduled time")
)

// BookingService is the submission sink behind the wizard: it persists
// confirmed bookings, answers availability lookups, and triggers the
// fire-and-forget customer notifications.
type BookingService struct {
	Repo   *repository.BookingRepository
	Sender *SenderService
	cfg    config.BookingConfig
}

func NewBookingService(repo *repository.BookingRepository, sender *SenderService, cfg config.BookingConfig) *BookingService {
	return &BookingService{Repo: repo, Sender: sender, cfg: cfg}
}

// Availability returns the occupancy snapshot for every configured time
// slot on the given date at the given branch. The snapshot may be stale
// by submission time; Create re-checks capacity.
func (s *BookingService) Availability(ctx context.Context, date, branch string) (*entities.AvailabilityResponse, error) {
	if !utils.ValidDate(date) {
		return nil, httperrors.ErrBadRequest(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}
	if !s.cfg.HasBranch(branch) {
		return nil, httperrors.ErrBadRequest(fmt.Sprintf("unknown branch %q", branch))
	}

	counts, err := s.Repo.SlotCounts(ctx, date, branch)
	if err != nil {
		return nil, fmt.Errorf("internal error checking availability: %w", err)
	}
	capacity, err := s.Repo.BranchSlotCapacity(ctx, branch, config.DefaultSlotCapacity)
	if err != nil {
		return nil, fmt.Errorf("internal error checking availability: %w", err)
	}

	response := &entities.AvailabilityResponse{Date: date, Branch: branch}
	for _, slot := range s.cfg.TimeSlots {
		booked := counts[slot]
		response.Slots = append(response.Slots, entities.AvailabilitySlot{
			Time:            slot,
			CurrentBookings: booked,
			MaxCapacity:     capacity,
			Available:       booked < capacity,
		})
	}
	return response, nil
}

// Create persists a booking built from a completed wizard draft. Branch
// bookings re-check slot capacity first; home-service bookings have no
// branch slot to contend for.
func (s *BookingService) Create(ctx context.Context, payload entities.BookingPayload) (*entities.BookingConfirmation, error) {
	scheduledAt, err := utils.ParseScheduleAt(payload.Schedule.Date, payload.Schedule.TimeSlot)
	if err != nil {
		return nil, err
	}

	if payload.ServiceType != entities.ServiceTypeHome {
		counts, err := s.Repo.SlotCounts(ctx, payload.Schedule.Date, payload.Schedule.Branch)
		if err != nil {
			return nil, fmt.Errorf("internal error checking slot capacity: %w", err)
		}
		capacity, err := s.Repo.BranchSlotCapacity(ctx, payload.Schedule.Branch, config.DefaultSlotCapacity)
		if err != nil {
			return nil, fmt.Errorf("internal error checking slot capacity: %w", err)
		}
		if counts[payload.Schedule.TimeSlot] >= capacity {
			return nil, ErrSlotFull
		}
	}

	code := fmt.Sprintf("%08X", time.Now().UnixNano()%100000000)

	// Online payments stay pending until the receipt is verified.
	status := statusConfirmed
	if payload.PaymentMethod == entities.PayOnline {
		status = statusPending
	}

	now := time.Now().UTC()
	booking := &db.Booking{
		Code:          code,
		Category:      string(payload.Category),
		Service:       payload.Service,
		ServiceType:   string(payload.ServiceType),
		UnitType:      string(payload.UnitType),
		UnitSize:      string(payload.UnitSize),
		FullName:      payload.Customer.FullName,
		Mobile:        payload.Customer.Mobile,
		Email:         payload.Customer.Email,
		PlateNumber:   payload.Customer.PlateNumber,
		VehicleModel:  payload.Customer.VehicleModel,
		Address:       payload.Customer.Address,
		Date:          payload.Schedule.Date,
		TimeSlot:      payload.Schedule.TimeSlot,
		Branch:        payload.Schedule.Branch,
		ScheduledAt:   scheduledAt,
		BasePrice:     payload.BasePrice,
		TotalPrice:    payload.TotalPrice,
		PaymentMethod: string(payload.PaymentMethod),
		ReceiptRef:    payload.ReceiptRef,
		AcceptedTerms: payload.AcceptedTerms,
		Notes:         payload.Notes,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Repo.CreateBooking(ctx, booking); err != nil {
		log.Printf("Error creating booking in repository: %v", err)
		return nil, err
	}

	// Notification failures never roll back the booking.
	if s.Sender != nil {
		s.Sender.SendBookingEmail(repository.ToBookingResponse(booking), s.cfg, status)
		s.Sender.SendBookingSMS(repository.ToBookingResponse(booking), status)
	}

	return &entities.BookingConfirmation{
		BookingID:        booking.ID,
		ConfirmationCode: code,
		Status:           status,
		TotalPrice:       booking.TotalPrice,
	}, nil
}

func (s *BookingService) GetBookingByCode(ctx context.Context, code, email string) (*entities.BookingResponse, error) {
	booking, err := s.Repo.GetBookingByCode(ctx, code, email)
	if err != nil {
		return nil, err
	}
	resp := repository.ToBookingResponse(booking)
	return &resp, nil
}

// Cancel marks a booking cancelled when its scheduled slot is still far
// enough away, then notifies the customer.
func (s *BookingService) Cancel(ctx context.Context, code string) error {
	booking, err := s.Repo.GetBookingByCodeOnly(ctx, code)
	if err != nil {
		return err
	}
	if booking.Status == statusCanceled {
		return nil
	}
	if booking.ScheduledAt.Sub(time.Now().UTC()) < 2*time.Hour {
		return ErrCancelTooLate
	}
	if err := s.Repo.UpdateBookingStatus(ctx, code, statusCanceled); err != nil {
		return err
	}

	if s.Sender != nil {
		booking.Status = statusCanceled
		s.Sender.SendBookingEmail(repository.ToBookingResponse(booking), s.cfg, statusCanceled)
		s.Sender.SendBookingSMS(repository.ToBookingResponse(booking), statusCanceled)
	}
	return nil
}

func (s *BookingService) ListBookings(ctx context.Context, limit, offset int) (*entities.BookingsList, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListBookings(ctx, limit, offset)
}

func (s *BookingService) SetBranchCapacity(ctx context.Context, branch string, capacity int) error {
	if !s.cfg.HasBranch(branch) {
		return httperrors.ErrBadRequest(fmt.Sprintf("unknown branch %q", branch))
	}
	if capacity < 0 {
		return httperrors.ErrBadRequest("capacity must not be negative")
	}
	return s.Repo.SetBranchSlotCapacity(ctx, branch, capacity)
}
