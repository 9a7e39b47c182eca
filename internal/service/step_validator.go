package service

import (
	"washbook/internal/entities"
	"washbook/internal/utils"
)

// FieldIssue names a draft field that blocks forward navigation and why.
type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidateStep checks whether the draft satisfies the given wizard step
// (1–5). It returns every unmet field so the caller can surface all of
// them at once; an empty result permits forward navigation. Pure
// function, no side effects.
func ValidateStep(step int, d *entities.BookingDraft, guest bool) []FieldIssue {
	var issues []FieldIssue
	add := func(field, reason string) {
		issues = append(issues, FieldIssue{Field: field, Reason: reason})
	}

	switch step {
	case 1:
		if d.Category == "" {
			add("category", "category is required")
		}
		if d.Service == "" {
			add("service", "service is required")
		}
	case 2:
		if d.UnitType == "" {
			add("unit_type", "unit type is required")
		}
		if d.UnitSize == "" {
			add("unit_size", "unit size is required")
		}
	case 3:
		if d.ServiceType == "" {
			add("service_type", "service type is required")
		}
		if d.Schedule.Date == "" {
			add("date", "date is required")
		} else if !utils.ValidDate(d.Schedule.Date) {
			add("date", "date must be YYYY-MM-DD")
		}
		if d.Schedule.TimeSlot == "" {
			add("time_slot", "time slot is required")
		}
		if d.ServiceType != entities.ServiceTypeHome && d.Schedule.Branch == "" {
			add("branch", "branch is required for branch service")
		}
	case 4:
		if d.Payment.Method == "" {
			add("payment_method", "payment method is required")
		}
		if d.Payment.Method == entities.PayOnline && d.Payment.ReceiptRef == "" {
			add("receipt", "receipt is required for online payment")
		}
	case 5:
		if d.Customer.FullName == "" {
			add("full_name", "full name is required")
		}
		if d.Customer.Mobile == "" {
			add("mobile", "mobile number is required")
		} else if !utils.ValidMobile(d.Customer.Mobile) {
			add("mobile", "mobile number is invalid")
		}
		if d.ServiceType == entities.ServiceTypeHome && d.Customer.Address == "" {
			add("address", "address is required for home service")
		}
		if guest {
			if d.Customer.Email == "" {
				add("email", "email is required for guest bookings")
			} else if !utils.ValidEmail(d.Customer.Email) {
				add("email", "email is invalid")
			}
		} else if d.Customer.Email != "" && !utils.ValidEmail(d.Customer.Email) {
			add("email", "email is invalid")
		}
		if !d.AcceptedTerms {
			add("accepted_terms", "terms and conditions must be accepted")
		}
	}
	return issues
}

// StepValid is the boolean form of ValidateStep.
func StepValid(step int, d *entities.BookingDraft, guest bool) bool {
	return len(ValidateStep(step, d, guest)) == 0
}
