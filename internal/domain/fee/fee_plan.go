package fee

import (
	"slices"
	"strings"
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PlanStatus represents the lifecycle of a fee plan
type PlanStatus string

const (
	PlanStatusDraft    PlanStatus = "draft"
	PlanStatusActive   PlanStatus = "active"
	PlanStatusArchived PlanStatus = "archived"
)

// IsValid checks if the status is known
func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanStatusDraft, PlanStatusActive, PlanStatusArchived:
		return true
	}
	return false
}

// String returns the string representation of PlanStatus
func (s PlanStatus) String() string {
	return string(s)
}

// CounterpartyType is who a fee plan bills
type CounterpartyType string

const (
	CounterpartyInvestor          CounterpartyType = "investor"
	CounterpartyPartner           CounterpartyType = "partner"
	CounterpartyIntroducer        CounterpartyType = "introducer"
	CounterpartyCommercialPartner CounterpartyType = "commercial_partner"
)

// IsValid checks if the counterparty type is known
func (c CounterpartyType) IsValid() bool {
	switch c {
	case CounterpartyInvestor, CounterpartyPartner, CounterpartyIntroducer, CounterpartyCommercialPartner:
		return true
	}
	return false
}

// Plan errors
var (
	ErrPlanLocked      = shared.NewDomainError("FEE_PLAN_LOCKED", "Fee plan is referenced by fee events and can no longer change; amend it instead")
	ErrPlanNotActive   = shared.NewDomainError("FEE_PLAN_NOT_ACTIVE", "Fee plan is not active")
	ErrNoEffectivePlan = shared.NewDomainError("NO_EFFECTIVE_FEE_PLAN", "No fee plan applies to this allocation")
)

// FeePlan is the ordered set of fee components governing a deal (or one allocation by override)
type FeePlan struct {
	shared.TenantAggregateRoot
	DealID           uuid.UUID
	VehicleID        *uuid.UUID
	TermsheetID      *uuid.UUID
	Name             string
	Revision         int
	PreviousPlanID   *uuid.UUID
	Status           PlanStatus
	IsDefault        bool
	CounterpartyType CounterpartyType
	Currency         valueobject.Currency
	LockedAt         *time.Time
	Components       []FeeComponent
}

// NewFeePlanInput holds the fields for creating a plan
type NewFeePlanInput struct {
	DealID           uuid.UUID
	VehicleID        *uuid.UUID
	TermsheetID      *uuid.UUID
	Name             string
	CounterpartyType CounterpartyType
	Currency         valueobject.Currency
}

// NewFeePlan creates a draft plan at revision 1
func NewFeePlan(actor shared.Actor, input NewFeePlanInput) (*FeePlan, error) {
	if input.DealID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEAL", "Deal ID cannot be empty")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Fee plan name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Fee plan name cannot exceed 200 characters")
	}
	counterparty := input.CounterpartyType
	if counterparty == "" {
		counterparty = CounterpartyInvestor
	}
	if !counterparty.IsValid() {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY", "Unknown counterparty type")
	}
	currency := input.Currency
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unsupported currency")
	}

	return &FeePlan{
		TenantAggregateRoot: shared.NewTenantAggregateRootForActor(actor),
		DealID:              input.DealID,
		VehicleID:           input.VehicleID,
		TermsheetID:         input.TermsheetID,
		Name:                name,
		Revision:            1,
		Status:              PlanStatusDraft,
		CounterpartyType:    counterparty,
		Currency:            currency,
		Components:          make([]FeeComponent, 0),
	}, nil
}

// IsLocked reports whether any fee event references the plan
func (p *FeePlan) IsLocked() bool {
	return p.LockedAt != nil
}

// AddComponent appends a component to the plan
func (p *FeePlan) AddComponent(spec ComponentSpec) (*FeeComponent, error) {
	if p.IsLocked() {
		return nil, ErrPlanLocked
	}
	if p.Status == PlanStatusArchived {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add components to an archived fee plan")
	}
	c, err := NewFeeComponent(p.ID, spec, len(p.Components))
	if err != nil {
		return nil, err
	}
	p.Components = append(p.Components, *c)
	p.Touch()
	p.IncrementVersion()
	return c, nil
}

// RemoveComponent drops a component from an unlocked plan
func (p *FeePlan) RemoveComponent(componentID uuid.UUID) error {
	if p.IsLocked() {
		return ErrPlanLocked
	}
	idx := slices.IndexFunc(p.Components, func(c FeeComponent) bool { return c.ID == componentID })
	if idx < 0 {
		return shared.ErrNotFound.WithMessage("Fee component not found in plan")
	}
	p.Components = slices.Delete(p.Components, idx, idx+1)
	for i := range p.Components {
		p.Components[i].SortOrder = i
	}
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Component returns the component with the given ID
func (p *FeePlan) Component(componentID uuid.UUID) (*FeeComponent, bool) {
	for i := range p.Components {
		if p.Components[i].ID == componentID {
			return &p.Components[i], true
		}
	}
	return nil, false
}

// Activate makes the plan usable for fee generation
func (p *FeePlan) Activate() error {
	if p.Status == PlanStatusActive {
		return nil
	}
	if p.Status != PlanStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft fee plans can be activated")
	}
	if len(p.Components) == 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot activate a fee plan without components")
	}
	p.Status = PlanStatusActive
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Archive retires the plan; an archived plan cannot be default
func (p *FeePlan) Archive() {
	if p.Status == PlanStatusArchived {
		return
	}
	p.Status = PlanStatusArchived
	p.IsDefault = false
	p.Touch()
	p.IncrementVersion()
}

// MarkDefault flags the plan as the deal default. The repository clears the previous default.
func (p *FeePlan) MarkDefault() error {
	if err := p.CanBeDefault(); err != nil {
		return err
	}
	p.IsDefault = true
	p.Touch()
	p.IncrementVersion()
	return nil
}

// CanBeDefault checks that the plan is an active investor plan
func (p *FeePlan) CanBeDefault() error {
	if p.Status != PlanStatusActive {
		return ErrPlanNotActive
	}
	if p.CounterpartyType != CounterpartyInvestor {
		return shared.NewDomainError("INVALID_STATE", "Only investor fee plans can be the deal default")
	}
	return nil
}

// Lock freezes the plan once a fee event references it
func (p *FeePlan) Lock(at time.Time) {
	if p.LockedAt != nil {
		return
	}
	p.LockedAt = &at
}

// Amend returns a new draft revision carrying copies of this plan's components.
// The receiver is left untouched.
func (p *FeePlan) Amend(actor shared.Actor) *FeePlan {
	previousID := p.ID
	next := &FeePlan{
		TenantAggregateRoot: shared.NewTenantAggregateRootForActor(actor),
		DealID:              p.DealID,
		VehicleID:           p.VehicleID,
		TermsheetID:         p.TermsheetID,
		Name:                p.Name,
		Revision:            p.Revision + 1,
		PreviousPlanID:      &previousID,
		Status:              PlanStatusDraft,
		CounterpartyType:    p.CounterpartyType,
		Currency:            p.Currency,
		Components:          make([]FeeComponent, 0, len(p.Components)),
	}
	for _, c := range p.Components {
		copied := c
		copied.ID = uuid.New()
		copied.FeePlanID = next.ID
		next.Components = append(next.Components, copied)
	}
	return next
}
