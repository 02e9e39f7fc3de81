package subscription

import (
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// AggregateTypeSubscription is the aggregate type name
	AggregateTypeSubscription = "Subscription"

	EventTypeSubscriptionCommitted = "SubscriptionCommitted"
	EventTypeSubscriptionFunded    = "SubscriptionFunded"
)

// SubscriptionCommittedEvent is raised the first time a subscription becomes committed
type SubscriptionCommittedEvent struct {
	shared.BaseDomainEvent
	SubscriptionID   uuid.UUID       `json:"subscription_id"`
	InvestorID       uuid.UUID       `json:"investor_id"`
	DealID           uuid.UUID       `json:"deal_id"`
	CommitmentAmount decimal.Decimal `json:"commitment_amount"`
	Currency         string          `json:"currency"`
}

// NewSubscriptionCommittedEvent creates the event
func NewSubscriptionCommittedEvent(s *Subscription) *SubscriptionCommittedEvent {
	return &SubscriptionCommittedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeSubscriptionCommitted, AggregateTypeSubscription, s.ID, s.TenantID),
		SubscriptionID:   s.ID,
		InvestorID:       s.InvestorID,
		DealID:           s.DealID,
		CommitmentAmount: s.CommitmentAmount,
		Currency:         s.Currency.String(),
	}
}

// EventType returns the event type name
func (e *SubscriptionCommittedEvent) EventType() string {
	return EventTypeSubscriptionCommitted
}

// SubscriptionFundedEvent is raised when funds are received
type SubscriptionFundedEvent struct {
	shared.BaseDomainEvent
	SubscriptionID uuid.UUID       `json:"subscription_id"`
	DealID         uuid.UUID       `json:"deal_id"`
	FundedAmount   decimal.Decimal `json:"funded_amount"`
}

// NewSubscriptionFundedEvent creates the event
func NewSubscriptionFundedEvent(s *Subscription) *SubscriptionFundedEvent {
	return &SubscriptionFundedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubscriptionFunded, AggregateTypeSubscription, s.ID, s.TenantID),
		SubscriptionID:  s.ID,
		DealID:          s.DealID,
		FundedAmount:    s.FundedAmount,
	}
}

// EventType returns the event type name
func (e *SubscriptionFundedEvent) EventType() string {
	return EventTypeSubscriptionFunded
}
