package service

import (
	"context"
	"errors"
	"testing"

	"washbook/internal/config"
	"washbook/internal/entities"
	"washbook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	created []entities.BookingPayload
	fail    error
}

func (f *fakeSink) Create(_ context.Context, payload entities.BookingPayload) (*entities.BookingConfirmation, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.created = append(f.created, payload)
	return &entities.BookingConfirmation{
		BookingID:        len(f.created),
		ConfirmationCode: "00ABCDEF",
		Status:           "confirmed",
		TotalPrice:       payload.TotalPrice,
	}, nil
}

func newTestWizard(t *testing.T) (*WizardService, *fakeSink) {
	t.Helper()
	sink := &fakeSink{}
	svc := NewWizardService(config.Default(), repository.NewMemoryDraftRepository(), sink)
	return svc, sink
}

func startSession(t *testing.T, svc *WizardService) *entities.WizardSession {
	t.Helper()
	session, err := svc.StartSession(context.Background(), true, "")
	require.NoError(t, err)
	require.Equal(t, entities.FirstStep, session.Step)
	return session
}

func apply(t *testing.T, svc *WizardService, id string, u entities.DraftUpdate) *entities.WizardSession {
	t.Helper()
	session, err := svc.ApplyUpdate(context.Background(), id, u)
	require.NoError(t, err)
	return session
}

func TestSetUnitTypeClearsUnitSize(t *testing.T) {
	svc, _ := newTestWizard(t)
	session := startSession(t, svc)

	apply(t, svc, session.ID, entities.SetUnitType{UnitType: entities.UnitTypeCar})
	apply(t, svc, session.ID, entities.SetUnitSize{UnitSize: entities.SizeSedan})
	session = apply(t, svc, session.ID, entities.SetUnitType{UnitType: entities.UnitTypeMotorcycle})

	assert.Equal(t, entities.UnitSize(""), session.Draft.UnitSize)
}

func TestSetCategoryClearsService(t *testing.T) {
	svc, _ := newTestWizard(t)
	session := startSession(t, svc)

	apply(t, svc, session.ID, entities.SetCategory{Category: entities.CategoryCarwash})
	apply(t, svc, session.ID, entities.SetService{Service: "classic"})
	session = apply(t, svc, session.ID, entities.SetCategory{Category: entities.CategoryAutoDetailing})

	assert.Equal(t, "", session.Draft.Service)
}

func TestSetUnitSizeRejectsWrongDomain(t *testing.T) {
	svc, _ := newTestWizard(t)
	session := startSession(t, svc)

	apply(t, svc, session.ID, entities.SetUnitType{UnitType: entities.UnitTypeCar})
	_, err := svc.ApplyUpdate(context.Background(), session.ID, entities.SetUnitSize{UnitSize: entities.SizeBigBike})
	assert.ErrorIs(t, err, ErrInvalidUnitSize)
}

func TestPricesFollowSelection(t *testing.T) {
	svc, _ := newTestWizard(t)
	session := startSession(t, svc)

	apply(t, svc, session.ID, entities.SetCategory{Category: entities.CategoryCarwash})
	session = apply(t, svc, session.ID, entities.SetService{Service: "classic"})
	assert.Equal(t, 500, session.Draft.BasePrice)
	assert.Equal(t, 500, session.Draft.TotalPrice)

	session = apply(t, svc, session.ID, entities.SetServiceType{ServiceType: entities.ServiceTypeHome})
	assert.Equal(t, 500, session.Draft.BasePrice)
	assert.Equal(t, 600, session.Draft.TotalPrice)
}

func TestHomeServiceRejectedOutsideAllowList(t *testing.T) {
	svc, _ := newTestWizard(t)
	session := startSession(t, svc)

	apply(t, svc, session.ID, entities.SetCategory{Category: entities.CategoryAutoDetailing})
	apply(t, svc, session.ID, entities.SetService{Service: "full_detail"})
	apply(t, svc, session.ID, entities.SetUnitType{UnitType: entities.UnitTypeCar})
	apply(t, svc, session.ID, entities.SetUnitSize{UnitSize: entities.SizeSedan})

	// move past step 1 so the reset is observable
	session, issues, err := svc.Next(context.Background(), session.ID)
	require.NoError(t, err)
	require.Empty(t, issues)
	require.Equal(t, 2, session.Step)

	session, err = svc.ApplyUpdate(context.Background(), session.ID, entities.SetServiceType{ServiceType: entities.ServiceTypeHome})
	assert.ErrorIs(t, err, ErrHomeServiceUnavailable)
	assert.Equal(t, entities.FirstStep, session.Step)
	assert.Equal(t, entities.Category(""), session.Draft.Category)
	assert.Equal(t, "", session.Draft.Service)
	assert.NotEqual(t, entities.ServiceTypeHome, session.Draft.ServiceType)
}

func TestNextBlockedUntilStepComplete(t *testing.T) {
	svc, _ := newTestWizard(t)
	session := startSession(t, svc)

	apply(t, svc, session.ID, entities.SetCategory{Category: entities.CategoryCarwash})
	session, issues, err := svc.Next(context.Background(), session.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, issues)
	assert.Equal(t, 1, session.Step)

	apply(t, svc, session.ID, entities.SetService{Service: "classic"})
	session, issues, err = svc.Next(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, 2, session.Step)
}

func TestBackNeverClearsData(t *testing.T) {
	svc, _ := newTestWizard(t)
	session := startSession(t, svc)

	apply(t, svc, session.ID, entities.SetCategory{Category: entities.CategoryCarwash})
	apply(t, svc, session.ID, entities.SetService{Service: "premium"})
	_, _, err := svc.Next(context.Background(), session.ID)
	require.NoError(t, err)

	session, err = svc.Back(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, session.Step)
	assert.Equal(t, "premium", session.Draft.Service)

	// Back at step 1 is a no-op
	session, err = svc.Back(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, session.Step)
}

// driveToReview walks a valid guest branch booking to step 5.
func driveToReview(t *testing.T, svc *WizardService, id string) {
	t.Helper()
	ctx := context.Background()
	apply(t, svc, id, entities.SetCategory{Category: entities.CategoryCarwash})
	apply(t, svc, id, entities.SetService{Service: "classic"})
	apply(t, svc, id, entities.SetUnitType{UnitType: entities.UnitTypeCar})
	apply(t, svc, id, entities.SetUnitSize{UnitSize: entities.SizeSedan})
	apply(t, svc, id, entities.SetServiceType{ServiceType: entities.ServiceTypeBranch})
	apply(t, svc, id, entities.SetSchedule{Schedule: entities.Schedule{
		Date: "2025-06-01", TimeSlot: "9:00 AM", Branch: "Tumaga",
	}})
	apply(t, svc, id, entities.SetPaymentMethod{Method: entities.PayAtBranch})
	apply(t, svc, id, entities.SetCustomer{Customer: entities.Customer{
		FullName: "Jane Doe", Mobile: "09171234567", Email: "jane@example.com",
	}})
	apply(t, svc, id, entities.SetAcceptedTerms{Accepted: true})

	for step := 1; step < entities.LastStep; step++ {
		session, issues, err := svc.Next(ctx, id)
		require.NoError(t, err)
		require.Empty(t, issues, "step %d should validate", session.Step)
	}
}

func TestSubmitHappyPath(t *testing.T) {
	svc, sink := newTestWizard(t)
	session := startSession(t, svc)
	driveToReview(t, svc, session.ID)

	confirmation, issues, err := svc.Submit(context.Background(), session.ID)
	require.NoError(t, err)
	require.Empty(t, issues)
	require.NotNil(t, confirmation)
	assert.Equal(t, 500, confirmation.TotalPrice) // configured classic wash price
	require.Len(t, sink.created, 1)
	assert.Equal(t, entities.CategoryCarwash, sink.created[0].Category)
	assert.True(t, sink.created[0].AcceptedTerms)

	// success resets the wizard to an empty draft at step 1
	session, err = svc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.FirstStep, session.Step)
	assert.Equal(t, entities.Category(""), session.Draft.Category)
}

func TestSubmitBlockedWithoutReceiptForOnlinePayment(t *testing.T) {
	svc, sink := newTestWizard(t)
	session := startSession(t, svc)
	driveToReview(t, svc, session.ID)

	// switch payment to online at review without attaching a receipt
	apply(t, svc, session.ID, entities.SetPaymentMethod{Method: entities.PayOnline})

	_, issues, err := svc.Submit(context.Background(), session.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, issues)
	assert.Empty(t, sink.created)
}

func TestSubmitFailurePreservesDraft(t *testing.T) {
	svc, sink := newTestWizard(t)
	session := startSession(t, svc)
	driveToReview(t, svc, session.ID)

	sink.fail = errors.New("submission sink unreachable")
	_, _, err := svc.Submit(context.Background(), session.ID)
	require.Error(t, err)

	session, err = svc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.LastStep, session.Step)
	assert.Equal(t, "classic", session.Draft.Service)

	// retry after the sink recovers succeeds without re-entering data
	sink.fail = nil
	confirmation, issues, err := svc.Submit(context.Background(), session.ID)
	require.NoError(t, err)
	require.Empty(t, issues)
	assert.NotNil(t, confirmation)
}

func TestSubmitOnlyAtReviewStep(t *testing.T) {
	svc, _ := newTestWizard(t)
	session := startSession(t, svc)

	_, _, err := svc.Submit(context.Background(), session.ID)
	assert.ErrorIs(t, err, ErrNotAtFinalStep)
}

func TestRegisteredCustomerEmailPrefilled(t *testing.T) {
	svc, _ := newTestWizard(t)
	session, err := svc.StartSession(context.Background(), false, "member@example.com")
	require.NoError(t, err)
	assert.False(t, session.Guest)
	assert.Equal(t, "member@example.com", session.Draft.Customer.Email)
}
