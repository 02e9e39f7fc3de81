package subscription

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle of a subscription (allocation)
type Status string

const (
	StatusPending   Status = "pending"
	StatusCommitted Status = "committed"
	StatusFunded    Status = "funded"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCommitted, StatusFunded, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true for funded and cancelled subscriptions
func (s Status) IsTerminal() bool {
	return s == StatusFunded || s == StatusCancelled
}

// IsCommitted returns true once the investor is committed (committed or funded)
func (s Status) IsCommitted() bool {
	return s == StatusCommitted || s == StatusFunded
}

var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusCommitted, StatusFunded, StatusCancelled},
	StatusCommitted: {StatusFunded, StatusCancelled},
}

// CanTransitionTo reports whether the status may move to target
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ErrDuplicateSubscription is returned when a subscription with the same fingerprint exists
var ErrDuplicateSubscription = shared.NewDomainError("DUPLICATE_SUBSCRIPTION", "A subscription with the same investor, vehicle, commitment and effective date already exists")

// Subscription is an investor's allocation into a deal vehicle
type Subscription struct {
	shared.TenantAggregateRoot
	InvestorID       uuid.UUID
	DealID           uuid.UUID
	VehicleID        uuid.UUID
	TermsheetID      *uuid.UUID
	FeePlanID        *uuid.UUID
	CommitmentAmount decimal.Decimal
	FundedAmount     decimal.Decimal
	UnitCount        decimal.Decimal
	Currency         valueobject.Currency
	EffectiveDate    time.Time
	Status           Status
	Fingerprint      string
	CommittedAt      *time.Time
	FundedAt         *time.Time
	CancelledAt      *time.Time
}

// NewSubscriptionInput holds the fields for creating a subscription
type NewSubscriptionInput struct {
	InvestorID       uuid.UUID
	DealID           uuid.UUID
	VehicleID        uuid.UUID
	TermsheetID      *uuid.UUID
	FeePlanID        *uuid.UUID
	CommitmentAmount decimal.Decimal
	UnitCount        decimal.Decimal
	Currency         valueobject.Currency
	EffectiveDate    time.Time
}

// NewSubscription creates a pending subscription with its fingerprint
func NewSubscription(actor shared.Actor, input NewSubscriptionInput) (*Subscription, error) {
	if input.InvestorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVESTOR", "Investor ID cannot be empty")
	}
	if input.DealID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEAL", "Deal ID cannot be empty")
	}
	if input.VehicleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VEHICLE", "Vehicle ID cannot be empty")
	}
	if !input.CommitmentAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Commitment amount must be positive")
	}
	if input.UnitCount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNITS", "Unit count cannot be negative")
	}
	if input.EffectiveDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Effective date is required")
	}
	currency := input.Currency
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unsupported currency")
	}

	effective := truncateToDate(input.EffectiveDate)
	return &Subscription{
		TenantAggregateRoot: shared.NewTenantAggregateRootForActor(actor),
		InvestorID:          input.InvestorID,
		DealID:              input.DealID,
		VehicleID:           input.VehicleID,
		TermsheetID:         input.TermsheetID,
		FeePlanID:           input.FeePlanID,
		CommitmentAmount:    input.CommitmentAmount,
		FundedAmount:        decimal.Zero,
		UnitCount:           input.UnitCount,
		Currency:            currency,
		EffectiveDate:       effective,
		Status:              StatusPending,
		Fingerprint:         Fingerprint(input.InvestorID, input.VehicleID, input.CommitmentAmount, effective),
	}, nil
}

// Fingerprint identifies an intended subscription so that concurrent duplicate
// requests collide on a unique constraint.
func Fingerprint(investorID, vehicleID uuid.UUID, commitment decimal.Decimal, effectiveDate time.Time) string {
	raw := fmt.Sprintf("%s|%s|%s|%s",
		investorID, vehicleID, commitment.StringFixed(2), truncateToDate(effectiveDate).Format(time.DateOnly))
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TransitionTo moves the subscription to target. It returns true when this call
// made the subscription committed for the first time.
func (s *Subscription) TransitionTo(target Status, fundedAmount *decimal.Decimal) (bool, error) {
	if !target.IsValid() {
		return false, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown subscription status %q", target))
	}
	if s.Status == target {
		return false, nil
	}
	if !s.Status.CanTransitionTo(target) {
		return false, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot move subscription from %s to %s", s.Status, target))
	}

	now := shared.Now()
	becameCommitted := !s.Status.IsCommitted() && target.IsCommitted()

	switch target {
	case StatusCommitted:
		s.CommittedAt = &now
	case StatusFunded:
		if s.CommittedAt == nil {
			s.CommittedAt = &now
		}
		s.FundedAt = &now
		s.FundedAmount = s.CommitmentAmount
		if fundedAmount != nil {
			if fundedAmount.IsNegative() {
				return false, shared.NewDomainError("INVALID_AMOUNT", "Funded amount cannot be negative")
			}
			s.FundedAmount = *fundedAmount
		}
	case StatusCancelled:
		s.CancelledAt = &now
	}

	s.Status = target
	s.UpdatedAt = now
	s.IncrementVersion()

	if becameCommitted {
		s.AddDomainEvent(NewSubscriptionCommittedEvent(s))
	}
	if target == StatusFunded {
		s.AddDomainEvent(NewSubscriptionFundedEvent(s))
	}
	return becameCommitted, nil
}
