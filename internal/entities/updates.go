package entities

// DraftUpdate is one discrete mutation of a booking draft. Each update
// is a separate type so the wizard can apply cascading resets with an
// exhaustive switch instead of stringly-typed field dispatch.
type DraftUpdate interface {
	isDraftUpdate()
}

type SetCategory struct {
	Category Category `json:"category"`
}

type SetService struct {
	Service string `json:"service"`
}

type SetServiceType struct {
	ServiceType ServiceType `json:"service_type"`
}

type SetUnitType struct {
	UnitType UnitType `json:"unit_type"`
}

type SetUnitSize struct {
	UnitSize UnitSize `json:"unit_size"`
}

type SetCustomer struct {
	Customer Customer `json:"customer"`
}

type SetSchedule struct {
	Schedule Schedule `json:"schedule"`
}

type SetPaymentMethod struct {
	Method PaymentMethod `json:"method"`
}

type SetReceipt struct {
	ReceiptRef string `json:"receipt_ref"`
}

type SetAcceptedTerms struct {
	Accepted bool `json:"accepted"`
}

type SetNotes struct {
	Notes string `json:"notes"`
}

func (SetCategory) isDraftUpdate()      {}
func (SetService) isDraftUpdate()       {}
func (SetServiceType) isDraftUpdate()   {}
func (SetUnitType) isDraftUpdate()      {}
func (SetUnitSize) isDraftUpdate()      {}
func (SetCustomer) isDraftUpdate()      {}
func (SetSchedule) isDraftUpdate()      {}
func (SetPaymentMethod) isDraftUpdate() {}
func (SetReceipt) isDraftUpdate()       {}
func (SetAcceptedTerms) isDraftUpdate() {}
func (SetNotes) isDraftUpdate()         {}
