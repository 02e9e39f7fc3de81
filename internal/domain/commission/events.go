package commission

import (
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// AggregateTypeCommission is the aggregate type name for party commissions
	AggregateTypeCommission = "PartyCommission"

	EventTypeCommissionAccrued       = "CommissionAccrued"
	EventTypeCommissionStatusChanged = "CommissionStatusChanged"
	EventTypeCommissionPaid          = "CommissionPaid"
)

// CommissionAccruedEvent is raised when a commission is recorded
type CommissionAccruedEvent struct {
	shared.BaseDomainEvent
	PartyKind     PartyKind       `json:"party_kind"`
	PartyID       uuid.UUID       `json:"party_id"`
	DealID        uuid.UUID       `json:"deal_id"`
	BasisType     BasisType       `json:"basis_type"`
	AccrualAmount decimal.Decimal `json:"accrual_amount"`
	Currency      string          `json:"currency"`
}

// NewCommissionAccruedEvent creates a CommissionAccruedEvent
func NewCommissionAccruedEvent(c *PartyCommission) *CommissionAccruedEvent {
	return &CommissionAccruedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCommissionAccrued, AggregateTypeCommission, c.ID, c.TenantID),
		PartyKind:       c.PartyKind,
		PartyID:         c.PartyID,
		DealID:          c.DealID,
		BasisType:       c.BasisType,
		AccrualAmount:   c.AccrualAmount,
		Currency:        c.Currency.String(),
	}
}

// EventType returns the event type name
func (e *CommissionAccruedEvent) EventType() string {
	return EventTypeCommissionAccrued
}

// CommissionStatusChangedEvent is raised on every lifecycle transition
type CommissionStatusChangedEvent struct {
	shared.BaseDomainEvent
	PartyKind  PartyKind `json:"party_kind"`
	FromStatus Status    `json:"from_status"`
	ToStatus   Status    `json:"to_status"`
}

// NewCommissionStatusChangedEvent creates a CommissionStatusChangedEvent
func NewCommissionStatusChangedEvent(c *PartyCommission, from Status) *CommissionStatusChangedEvent {
	return &CommissionStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCommissionStatusChanged, AggregateTypeCommission, c.ID, c.TenantID),
		PartyKind:       c.PartyKind,
		FromStatus:      from,
		ToStatus:        c.Status,
	}
}

// EventType returns the event type name
func (e *CommissionStatusChangedEvent) EventType() string {
	return EventTypeCommissionStatusChanged
}

// CommissionPaidEvent is raised when payment is confirmed
type CommissionPaidEvent struct {
	shared.BaseDomainEvent
	PartyKind        PartyKind       `json:"party_kind"`
	PartyID          uuid.UUID       `json:"party_id"`
	DealID           uuid.UUID       `json:"deal_id"`
	AccrualAmount    decimal.Decimal `json:"accrual_amount"`
	Currency         string          `json:"currency"`
	PaymentReference string          `json:"payment_reference,omitempty"`
}

// NewCommissionPaidEvent creates a CommissionPaidEvent
func NewCommissionPaidEvent(c *PartyCommission) *CommissionPaidEvent {
	return &CommissionPaidEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeCommissionPaid, AggregateTypeCommission, c.ID, c.TenantID),
		PartyKind:        c.PartyKind,
		PartyID:          c.PartyID,
		DealID:           c.DealID,
		AccrualAmount:    c.AccrualAmount,
		Currency:         c.Currency.String(),
		PaymentReference: c.PaymentReference,
	}
}

// EventType returns the event type name
func (e *CommissionPaidEvent) EventType() string {
	return EventTypeCommissionPaid
}
