package commission

import (
	"time"

	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Agreement holds the standing commission terms a party has on a deal.
// Active agreements accrue commissions automatically as subscriptions commit and fees accrue.
type Agreement struct {
	shared.TenantAggregateRoot
	DealID        uuid.UUID
	PartyKind     PartyKind
	PartyID       uuid.UUID
	ArrangerID    *uuid.UUID
	BasisType     BasisType
	RateBps       int
	Currency      valueobject.Currency
	Active        bool
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
}

// NewAgreementInput holds the fields for creating an agreement
type NewAgreementInput struct {
	DealID        uuid.UUID
	PartyKind     PartyKind
	PartyID       uuid.UUID
	ArrangerID    *uuid.UUID
	BasisType     BasisType
	RateBps       int
	Currency      valueobject.Currency
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
}

// NewAgreement creates an active agreement
func NewAgreement(actor shared.Actor, input NewAgreementInput) (*Agreement, error) {
	if input.DealID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEAL", "Deal ID cannot be empty")
	}
	if input.PartyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTY", "Party ID cannot be empty")
	}
	if !input.PartyKind.IsValid() {
		return nil, shared.NewDomainError("INVALID_PARTY_KIND", "Unknown party kind: "+input.PartyKind.String())
	}
	if !input.BasisType.IsValid() {
		return nil, shared.NewDomainError("INVALID_BASIS_TYPE", "Unknown basis type: "+input.BasisType.String())
	}
	if _, err := valueobject.NewBasisPoints(input.RateBps); err != nil {
		return nil, ErrInvalidCommissionTerms.WithMessage(err.Error())
	}
	currency := input.Currency
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unsupported currency: "+currency.String())
	}
	effectiveFrom := input.EffectiveFrom
	if effectiveFrom.IsZero() {
		effectiveFrom = shared.Now()
	}
	if input.EffectiveTo != nil && input.EffectiveTo.Before(effectiveFrom) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Agreement end date cannot be before its start date")
	}

	return &Agreement{
		TenantAggregateRoot: shared.NewTenantAggregateRootForActor(actor),
		DealID:              input.DealID,
		PartyKind:           input.PartyKind,
		PartyID:             input.PartyID,
		ArrangerID:          input.ArrangerID,
		BasisType:           input.BasisType,
		RateBps:             input.RateBps,
		Currency:            currency,
		Active:              true,
		EffectiveFrom:       effectiveFrom,
		EffectiveTo:         input.EffectiveTo,
	}, nil
}

// AppliesOn reports whether the agreement is in force on the date
func (a *Agreement) AppliesOn(at time.Time) bool {
	if !a.Active || at.Before(a.EffectiveFrom) {
		return false
	}
	return a.EffectiveTo == nil || !at.After(*a.EffectiveTo)
}

// Deactivate stops automatic accrual under this agreement
func (a *Agreement) Deactivate() {
	if !a.Active {
		return
	}
	a.Active = false
	a.UpdatedAt = shared.Now()
	a.IncrementVersion()
}

// MatchesFeeKind reports whether fee events of the kind drive accruals for this basis.
// Invested-amount agreements accrue on subscription commitment instead and return false.
func (b BasisType) MatchesFeeKind(kind fee.ComponentKind) bool {
	switch b {
	case BasisManagementFee:
		return kind == fee.KindManagement
	case BasisPerformanceFee:
		return kind == fee.KindPerformance
	case BasisSpread:
		return kind == fee.KindSpreadMarkup
	}
	return false
}

// Accrue derives the commission input for a source record under this agreement
func (a *Agreement) Accrue(sourceID uuid.UUID, investorID, subscriptionID *uuid.UUID, base decimal.Decimal, at time.Time) NewCommissionInput {
	rate := a.RateBps
	agreementID := a.ID
	return NewCommissionInput{
		PartyKind:      a.PartyKind,
		PartyID:        a.PartyID,
		ArrangerID:     a.ArrangerID,
		DealID:         a.DealID,
		InvestorID:     investorID,
		SubscriptionID: subscriptionID,
		AgreementID:    &agreementID,
		SourceID:       &sourceID,
		BasisType:      a.BasisType,
		RateBps:        &rate,
		BaseAmount:     base,
		Currency:       a.Currency,
		AccruedAt:      at,
	}
}
