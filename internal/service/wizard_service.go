package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"washbook/internal/config"
	"washbook/internal/entities"
	"washbook/internal/repository"

	"github.com/google/uuid"
)

var (
	// ErrHomeServiceUnavailable signals that the current selection is
	// not on the home-service allow-list. The wizard has already been
	// sent back to step 1 with category and service cleared; the caller
	// should prompt the customer to re-select.
	ErrHomeServiceUnavailable = errors.New("selected service is not available for home service")

	// ErrInvalidUnitSize signals a size outside the unit type's domain.
	ErrInvalidUnitSize = errors.New("unit size does not match unit type")

	// ErrNotAtFinalStep signals a submit attempt before the review step.
	ErrNotAtFinalStep = errors.New("booking can only be submitted from the review step")
)

// SubmissionSink persists a completed booking and hands back its
// confirmation. BookingService is the production implementation.
type SubmissionSink interface {
	Create(ctx context.Context, payload entities.BookingPayload) (*entities.BookingConfirmation, error)
}

// WizardService owns the five-step booking wizard: one session per
// booking attempt, a draft mutated by discrete updates, per-step
// validation gating navigation, and submission at the review step.
type WizardService struct {
	cfg    config.BookingConfig
	drafts repository.DraftRepository
	sink   SubmissionSink
}

func NewWizardService(cfg config.BookingConfig, drafts repository.DraftRepository, sink SubmissionSink) *WizardService {
	return &WizardService{cfg: cfg, drafts: drafts, sink: sink}
}

// StartSession creates an empty draft at step 1. Registered customers
// get their email prefilled; guests must supply one at the review step.
func (s *WizardService) StartSession(ctx context.Context, guest bool, email string) (*entities.WizardSession, error) {
	now := time.Now().UTC()
	session := &entities.WizardSession{
		ID:        uuid.New().String(),
		Step:      entities.FirstStep,
		Guest:     guest,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !guest {
		session.Draft.Customer.Email = email
	}
	if err := s.drafts.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start wizard session: %w", err)
	}
	return session, nil
}

func (s *WizardService) GetSession(ctx context.Context, id string) (*entities.WizardSession, error) {
	return s.drafts.Get(ctx, id)
}

// ApplyUpdate applies one draft update, runs the cascading resets the
// draft invariants require, recomputes prices when the change affects
// them, and saves the session.
func (s *WizardService) ApplyUpdate(ctx context.Context, id string, update entities.DraftUpdate) (*entities.WizardSession, error) {
	session, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyErr := s.apply(session, update)
	if applyErr != nil && !errors.Is(applyErr, ErrHomeServiceUnavailable) {
		return nil, applyErr
	}

	session.UpdatedAt = time.Now().UTC()
	if err := s.drafts.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save wizard session: %w", err)
	}
	// The home-service rejection still saves the session: category and
	// service were cleared and the step reset, and the caller needs to
	// see that state.
	return session, applyErr
}

func (s *WizardService) apply(session *entities.WizardSession, update entities.DraftUpdate) error {
	d := &session.Draft
	switch u := update.(type) {
	case entities.SetCategory:
		d.Category = u.Category
		d.Service = "" // service is meaningful only within one category
	case entities.SetService:
		d.Service = u.Service
	case entities.SetServiceType:
		if u.ServiceType == entities.ServiceTypeHome && !s.cfg.HomeAllowed(d.Category, d.Service) {
			d.Category = ""
			d.Service = ""
			session.Step = entities.FirstStep
			RecomputePrices(d, s.cfg)
			return ErrHomeServiceUnavailable
		}
		d.ServiceType = u.ServiceType
	case entities.SetUnitType:
		d.UnitType = u.UnitType
		d.UnitSize = "" // size domain depends on unit type
	case entities.SetUnitSize:
		if u.UnitSize != "" && !entities.ValidSizeFor(d.UnitType, u.UnitSize) {
			return fmt.Errorf("%w: %s for %s", ErrInvalidUnitSize, u.UnitSize, d.UnitType)
		}
		d.UnitSize = u.UnitSize
	case entities.SetCustomer:
		d.Customer = u.Customer
	case entities.SetSchedule:
		d.Schedule = u.Schedule
	case entities.SetPaymentMethod:
		d.Payment.Method = u.Method
		if u.Method != entities.PayOnline {
			d.Payment.ReceiptRef = ""
		}
	case entities.SetReceipt:
		d.Payment.ReceiptRef = u.ReceiptRef
	case entities.SetAcceptedTerms:
		d.AcceptedTerms = u.Accepted
	case entities.SetNotes:
		d.Notes = u.Notes
	default:
		return fmt.Errorf("unknown draft update %T", update)
	}

	switch update.(type) {
	case entities.SetCategory, entities.SetService, entities.SetServiceType,
		entities.SetUnitType, entities.SetUnitSize:
		RecomputePrices(d, s.cfg)
	}
	return nil
}

// Next advances the wizard one step if the current step validates.
// Returned issues block navigation; Next is a no-op at the review step.
func (s *WizardService) Next(ctx context.Context, id string) (*entities.WizardSession, []FieldIssue, error) {
	session, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	issues := ValidateStep(session.Step, &session.Draft, session.Guest)
	if len(issues) > 0 {
		return session, issues, nil
	}
	if session.Step < entities.LastStep {
		session.Step++
		session.UpdatedAt = time.Now().UTC()
		if err := s.drafts.Save(ctx, session); err != nil {
			return nil, nil, fmt.Errorf("failed to save wizard session: %w", err)
		}
	}
	return session, nil, nil
}

// Back moves one step towards the start without clearing anything.
func (s *WizardService) Back(ctx context.Context, id string) (*entities.WizardSession, error) {
	session, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step > entities.FirstStep {
		session.Step--
		session.UpdatedAt = time.Now().UTC()
		if err := s.drafts.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to save wizard session: %w", err)
		}
	}
	return session, nil
}

// Submit validates the review step, hands the payload to the submission
// sink, and on success resets the session to an empty draft at step 1.
// On failure the draft and step are left untouched so the customer can
// retry without re-entering anything.
func (s *WizardService) Submit(ctx context.Context, id string) (*entities.BookingConfirmation, []FieldIssue, error) {
	session, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if session.Step != entities.LastStep {
		return nil, nil, ErrNotAtFinalStep
	}
	// Re-validate every step, not just review: earlier fields can be
	// edited after their step was passed.
	var issues []FieldIssue
	for step := entities.FirstStep; step <= entities.LastStep; step++ {
		issues = append(issues, ValidateStep(step, &session.Draft, session.Guest)...)
	}
	if len(issues) > 0 {
		return nil, issues, nil
	}

	// Prices are recomputed on every selection change, but derive them
	// once more so the payload never carries a stale value.
	RecomputePrices(&session.Draft, s.cfg)

	confirmation, err := s.sink.Create(ctx, buildPayload(&session.Draft))
	if err != nil {
		return nil, nil, err
	}

	email := ""
	if !session.Guest {
		email = session.Draft.Customer.Email
	}
	session.Draft = entities.BookingDraft{}
	session.Draft.Customer.Email = email
	session.Step = entities.FirstStep
	session.UpdatedAt = time.Now().UTC()
	if err := s.drafts.Save(ctx, session); err != nil {
		// The booking exists; a failed session reset must not hide it.
		return confirmation, nil, nil
	}
	return confirmation, nil, nil
}

func buildPayload(d *entities.BookingDraft) entities.BookingPayload {
	return entities.BookingPayload{
		Category:      d.Category,
		Service:       d.Service,
		ServiceType:   d.ServiceType,
		UnitType:      d.UnitType,
		UnitSize:      d.UnitSize,
		Customer:      d.Customer,
		Schedule:      d.Schedule,
		BasePrice:     d.BasePrice,
		TotalPrice:    d.TotalPrice,
		PaymentMethod: d.Payment.Method,
		ReceiptRef:    d.Payment.ReceiptRef,
		AcceptedTerms: d.AcceptedTerms,
		Notes:         d.Notes,
	}
}
