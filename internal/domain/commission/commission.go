package commission

import (
	"fmt"
	"strings"
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyKind identifies who receives the commission
type PartyKind string

const (
	PartyPartner           PartyKind = "partner"
	PartyIntroducer        PartyKind = "introducer"
	PartyCommercialPartner PartyKind = "commercial_partner"
)

// IsValid checks if the party kind is known
func (k PartyKind) IsValid() bool {
	switch k {
	case PartyPartner, PartyIntroducer, PartyCommercialPartner:
		return true
	}
	return false
}

// String returns the string representation of PartyKind
func (k PartyKind) String() string {
	return string(k)
}

// SupportsRejection reports whether commissions for this party may be rejected
func (k PartyKind) SupportsRejection() bool {
	return k == PartyIntroducer
}

// BasisType is the amount a commission rate applies to
type BasisType string

const (
	BasisInvestedAmount BasisType = "invested_amount"
	BasisSpread         BasisType = "spread"
	BasisManagementFee  BasisType = "management_fee"
	BasisPerformanceFee BasisType = "performance_fee"
)

// IsValid checks if the basis type is known
func (b BasisType) IsValid() bool {
	switch b {
	case BasisInvestedAmount, BasisSpread, BasisManagementFee, BasisPerformanceFee:
		return true
	}
	return false
}

// String returns the string representation of BasisType
func (b BasisType) String() string {
	return string(b)
}

// Status is the payment lifecycle state of a commission
type Status string

const (
	StatusAccrued          Status = "accrued"
	StatusInvoiceRequested Status = "invoice_requested"
	StatusInvoiced         Status = "invoiced"
	StatusPaid             Status = "paid"
	StatusCancelled        Status = "cancelled"
	StatusRejected         Status = "rejected"
)

// AllStatuses lists every commission status in lifecycle order
var AllStatuses = []Status{
	StatusAccrued, StatusInvoiceRequested, StatusInvoiced, StatusPaid, StatusCancelled, StatusRejected,
}

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Label returns a display name such as "Invoice Requested"
func (s Status) Label() string {
	return valueobject.Humanize(string(s))
}

// IsTerminal returns true for paid, cancelled and rejected commissions
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled || s == StatusRejected
}

// IsOutstanding returns true while the accrual is still owed
func (s Status) IsOutstanding() bool {
	return s == StatusAccrued || s == StatusInvoiceRequested || s == StatusInvoiced
}

var forwardTransitions = map[Status]Status{
	StatusAccrued:          StatusInvoiceRequested,
	StatusInvoiceRequested: StatusInvoiced,
	StatusInvoiced:         StatusPaid,
}

// CanTransition reports whether a commission of the given party kind may move from one status to another.
// The lifecycle only moves forward one step at a time; any non-terminal state may be cancelled,
// and introducer commissions may additionally be rejected before they are paid.
func CanTransition(kind PartyKind, from, to Status) bool {
	if from.IsTerminal() {
		return false
	}
	switch to {
	case StatusCancelled:
		return true
	case StatusRejected:
		return kind.SupportsRejection()
	}
	return forwardTransitions[from] == to
}

var (
	// ErrInvalidTransition is returned for transitions the lifecycle does not permit
	ErrInvalidTransition = shared.NewDomainError("INVALID_STATUS_TRANSITION", "Commission status transition is not allowed")

	// ErrInvalidCommissionTerms is returned when neither a valid rate nor a flat amount is given
	ErrInvalidCommissionTerms = shared.NewDomainError("INVALID_COMMISSION_TERMS", "Either rate_bps in [0, 10000] or a flat amount is required")
)

// PartyCommission is one accrual owed to a partner, introducer or commercial partner
type PartyCommission struct {
	shared.TenantAggregateRoot
	PartyKind          PartyKind
	PartyID            uuid.UUID
	ArrangerID         *uuid.UUID
	DealID             uuid.UUID
	InvestorID         *uuid.UUID
	SubscriptionID     *uuid.UUID
	AgreementID        *uuid.UUID
	SourceID           *uuid.UUID
	BasisType          BasisType
	RateBps            *int
	BaseAmount         decimal.Decimal
	AccrualAmount      decimal.Decimal
	Currency           valueobject.Currency
	Status             Status
	AccruedAt          time.Time
	InvoiceRequestedAt *time.Time
	InvoicedAt         *time.Time
	InvoiceReference   string
	PaidAt             *time.Time
	PaymentReference   string
	PaidBy             *uuid.UUID
	CancelledAt        *time.Time
	RejectedAt         *time.Time
	StatusReason       string
	Notes              string
}

// NewCommissionInput holds the fields for recording a commission
type NewCommissionInput struct {
	PartyKind      PartyKind
	PartyID        uuid.UUID
	ArrangerID     *uuid.UUID
	DealID         uuid.UUID
	InvestorID     *uuid.UUID
	SubscriptionID *uuid.UUID
	AgreementID    *uuid.UUID
	// SourceID is the record that triggered an automatic accrual (subscription or fee event)
	SourceID   *uuid.UUID
	BasisType  BasisType
	RateBps    *int
	BaseAmount decimal.Decimal
	// FlatAmount is used when no rate is given
	FlatAmount *decimal.Decimal
	Currency   valueobject.Currency
	AccruedAt  time.Time
	Notes      string
}

// NewPartyCommission creates an accrued commission. With a rate the accrual is
// base × rate_bps / 10000; without one a flat amount is required.
func NewPartyCommission(actor shared.Actor, input NewCommissionInput) (*PartyCommission, error) {
	if !input.PartyKind.IsValid() {
		return nil, shared.NewDomainError("INVALID_PARTY_KIND", fmt.Sprintf("Unknown party kind: %s", input.PartyKind))
	}
	if input.PartyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTY", "Party ID cannot be empty")
	}
	if input.DealID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEAL", "Deal ID cannot be empty")
	}
	if !input.BasisType.IsValid() {
		return nil, shared.NewDomainError("INVALID_BASIS_TYPE", fmt.Sprintf("Unknown basis type: %s", input.BasisType))
	}
	if input.BaseAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Base amount cannot be negative")
	}
	currency := input.Currency
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", fmt.Sprintf("Unsupported currency: %s", currency))
	}

	var accrual decimal.Decimal
	switch {
	case input.RateBps != nil:
		bps, err := valueobject.NewBasisPoints(*input.RateBps)
		if err != nil {
			return nil, ErrInvalidCommissionTerms.WithMessage(err.Error())
		}
		accrual = bps.Of(input.BaseAmount)
	case input.FlatAmount != nil:
		if input.FlatAmount.IsNegative() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Commission amount cannot be negative")
		}
		accrual = *input.FlatAmount
	default:
		return nil, ErrInvalidCommissionTerms
	}

	accruedAt := input.AccruedAt
	if accruedAt.IsZero() {
		accruedAt = shared.Now()
	}

	c := &PartyCommission{
		TenantAggregateRoot: shared.NewTenantAggregateRootForActor(actor),
		PartyKind:           input.PartyKind,
		PartyID:             input.PartyID,
		ArrangerID:          input.ArrangerID,
		DealID:              input.DealID,
		InvestorID:          input.InvestorID,
		SubscriptionID:      input.SubscriptionID,
		AgreementID:         input.AgreementID,
		SourceID:            input.SourceID,
		BasisType:           input.BasisType,
		RateBps:             input.RateBps,
		BaseAmount:          input.BaseAmount,
		AccrualAmount:       accrual,
		Currency:            currency,
		Status:              StatusAccrued,
		AccruedAt:           accruedAt,
		Notes:               strings.TrimSpace(input.Notes),
	}
	c.AddDomainEvent(NewCommissionAccruedEvent(c))
	return c, nil
}

// IsPaid returns true once payment is confirmed
func (c *PartyCommission) IsPaid() bool {
	return c.Status == StatusPaid
}

func (c *PartyCommission) transition(to Status, at time.Time) error {
	if !CanTransition(c.PartyKind, c.Status, to) {
		return ErrInvalidTransition.WithMessage(
			fmt.Sprintf("Cannot move %s commission from %s to %s", c.PartyKind, c.Status, to))
	}
	from := c.Status
	c.Status = to
	c.UpdatedAt = at
	c.IncrementVersion()
	c.AddDomainEvent(NewCommissionStatusChangedEvent(c, from))
	return nil
}

// RequestInvoice asks the party to invoice the accrued amount
func (c *PartyCommission) RequestInvoice() error {
	now := shared.Now()
	if err := c.transition(StatusInvoiceRequested, now); err != nil {
		return err
	}
	c.InvoiceRequestedAt = &now
	return nil
}

// MarkInvoiced records the party's invoice
func (c *PartyCommission) MarkInvoiced(reference string) error {
	now := shared.Now()
	if err := c.transition(StatusInvoiced, now); err != nil {
		return err
	}
	c.InvoicedAt = &now
	c.InvoiceReference = strings.TrimSpace(reference)
	return nil
}

// MarkPaid confirms payment of an invoiced commission
func (c *PartyCommission) MarkPaid(reviewerID uuid.UUID, reference string, at time.Time) error {
	if at.IsZero() {
		at = shared.Now()
	}
	if err := c.transition(StatusPaid, at); err != nil {
		return err
	}
	c.PaidAt = &at
	c.PaymentReference = strings.TrimSpace(reference)
	if reviewerID != uuid.Nil {
		c.PaidBy = &reviewerID
	}
	c.AddDomainEvent(NewCommissionPaidEvent(c))
	return nil
}

// Cancel cancels a commission that has not been paid
func (c *PartyCommission) Cancel(reason string) error {
	now := shared.Now()
	if err := c.transition(StatusCancelled, now); err != nil {
		return err
	}
	c.CancelledAt = &now
	c.StatusReason = strings.TrimSpace(reason)
	return nil
}

// Reject rejects an introducer commission that has not been paid
func (c *PartyCommission) Reject(reason string) error {
	now := shared.Now()
	if err := c.transition(StatusRejected, now); err != nil {
		return err
	}
	c.RejectedAt = &now
	c.StatusReason = strings.TrimSpace(reason)
	return nil
}
