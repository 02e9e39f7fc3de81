package fee

import (
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventStatus represents the billing state of a fee event
type EventStatus string

const (
	EventStatusAccrued  EventStatus = "accrued"
	EventStatusInvoiced EventStatus = "invoiced"
)

// IsValid checks if the status is known
func (s EventStatus) IsValid() bool {
	return s == EventStatusAccrued || s == EventStatusInvoiced
}

// String returns the string representation of EventStatus
func (s EventStatus) String() string {
	return string(s)
}

// FeeEvent is one computed charge for exactly one (allocation, component) pair.
// Only its status and invoice linkage change after creation.
type FeeEvent struct {
	shared.TenantAggregateRoot
	AllocationID   uuid.UUID
	FeeComponentID uuid.UUID
	FeePlanID      uuid.UUID
	InvestorID     uuid.UUID
	DealID         uuid.UUID
	Kind           ComponentKind
	CalcMethod     CalcMethod
	Frequency      Frequency
	RateBps        *int
	BaseAmount     decimal.Decimal
	ComputedAmount decimal.Decimal
	Currency       valueobject.Currency
	Status         EventStatus
	EventDate      time.Time
	InvoiceID      *uuid.UUID
	InvoicedAt     *time.Time
}

// NewFeeEventInput holds the fields for recording a computed charge
type NewFeeEventInput struct {
	AllocationID   uuid.UUID
	InvestorID     uuid.UUID
	DealID         uuid.UUID
	Plan           *FeePlan
	Component      *FeeComponent
	BaseAmount     decimal.Decimal
	ComputedAmount decimal.Decimal
	EventDate      time.Time
}

// NewFeeEvent creates an accrued fee event
func NewFeeEvent(tenantID uuid.UUID, input NewFeeEventInput) (*FeeEvent, error) {
	if input.AllocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ALLOCATION", "Allocation ID cannot be empty")
	}
	if input.Plan == nil || input.Component == nil {
		return nil, shared.NewDomainError("INVALID_FEE_COMPONENT", "Fee plan and component are required")
	}
	if input.ComputedAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Computed amount cannot be negative")
	}
	eventDate := input.EventDate
	if eventDate.IsZero() {
		eventDate = shared.Now()
	}

	e := &FeeEvent{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		AllocationID:        input.AllocationID,
		FeeComponentID:      input.Component.ID,
		FeePlanID:           input.Plan.ID,
		InvestorID:          input.InvestorID,
		DealID:              input.DealID,
		Kind:                input.Component.Kind,
		CalcMethod:          input.Component.CalcMethod,
		Frequency:           input.Component.Frequency,
		RateBps:             input.Component.RateBps,
		BaseAmount:          input.BaseAmount,
		ComputedAmount:      input.ComputedAmount,
		Currency:            input.Plan.Currency,
		Status:              EventStatusAccrued,
		EventDate:           eventDate,
	}
	e.AddDomainEvent(NewFeeEventAccruedEvent(e))
	return e, nil
}

// IsAccrued reports whether the event can still be invoiced
func (e *FeeEvent) IsAccrued() bool {
	return e.Status == EventStatusAccrued
}

// MarkInvoiced links the event to an invoice
func (e *FeeEvent) MarkInvoiced(invoiceID uuid.UUID) error {
	if e.Status != EventStatusAccrued {
		return shared.NewDomainError("INVALID_STATE", "Only accrued fee events can be invoiced")
	}
	now := shared.Now()
	e.Status = EventStatusInvoiced
	e.InvoiceID = &invoiceID
	e.InvoicedAt = &now
	e.UpdatedAt = now
	e.IncrementVersion()
	return nil
}
