package fee

import (
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// AggregateTypeFeeEvent is the aggregate type name for fee events
	AggregateTypeFeeEvent = "FeeEvent"

	// EventTypeFeeEventAccrued is published when a charge is recorded
	EventTypeFeeEventAccrued = "FeeEventAccrued"
)

// FeeEventAccruedEvent is raised when a fee event is created
type FeeEventAccruedEvent struct {
	shared.BaseDomainEvent
	AllocationID   uuid.UUID       `json:"allocation_id"`
	FeeComponentID uuid.UUID       `json:"fee_component_id"`
	InvestorID     uuid.UUID       `json:"investor_id"`
	DealID         uuid.UUID       `json:"deal_id"`
	Kind           ComponentKind   `json:"kind"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
}

// NewFeeEventAccruedEvent creates the event for a freshly accrued charge
func NewFeeEventAccruedEvent(e *FeeEvent) *FeeEventAccruedEvent {
	return &FeeEventAccruedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFeeEventAccrued, AggregateTypeFeeEvent, e.ID, e.TenantID),
		AllocationID:    e.AllocationID,
		FeeComponentID:  e.FeeComponentID,
		InvestorID:      e.InvestorID,
		DealID:          e.DealID,
		Kind:            e.Kind,
		Amount:          e.ComputedAmount,
		Currency:        e.Currency.String(),
	}
}

// EventType returns the event type name
func (e *FeeEventAccruedEvent) EventType() string {
	return EventTypeFeeEventAccrued
}
