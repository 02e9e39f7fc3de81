package models

import (
	"time"

	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeePlanModel is the persistence model for the FeePlan aggregate root.
// At most one default plan per deal is enforced by a partial unique index.
type FeePlanModel struct {
	TenantAggregateModel
	DealID           uuid.UUID            `gorm:"type:uuid;not null;index;uniqueIndex:idx_fee_plans_default_per_deal,where:is_default = true"`
	VehicleID        *uuid.UUID           `gorm:"type:uuid"`
	TermsheetID      *uuid.UUID           `gorm:"type:uuid;index"`
	Name             string               `gorm:"type:varchar(200);not null"`
	Revision         int                  `gorm:"not null;default:1"`
	PreviousPlanID   *uuid.UUID           `gorm:"type:uuid"`
	Status           fee.PlanStatus       `gorm:"type:varchar(20);not null;default:'draft'"`
	IsDefault        bool                 `gorm:"not null;default:false"`
	CounterpartyType fee.CounterpartyType `gorm:"type:varchar(30);not null;default:'investor'"`
	Currency         string               `gorm:"type:varchar(3);not null"`
	LockedAt         *time.Time
	Components       []FeeComponentModel `gorm:"foreignKey:FeePlanID;references:ID"`
}

// TableName returns the table name for GORM
func (FeePlanModel) TableName() string {
	return "fee_plans"
}

// ToDomain converts the persistence model to a domain FeePlan.
func (m *FeePlanModel) ToDomain() *fee.FeePlan {
	plan := &fee.FeePlan{
		DealID:           m.DealID,
		VehicleID:        m.VehicleID,
		TermsheetID:      m.TermsheetID,
		Name:             m.Name,
		Revision:         m.Revision,
		PreviousPlanID:   m.PreviousPlanID,
		Status:           m.Status,
		IsDefault:        m.IsDefault,
		CounterpartyType: m.CounterpartyType,
		Currency:         valueobject.Currency(m.Currency),
		LockedAt:         m.LockedAt,
		Components:       make([]fee.FeeComponent, len(m.Components)),
	}
	m.PopulateTenantAggregateRoot(&plan.TenantAggregateRoot)
	for i := range m.Components {
		plan.Components[i] = m.Components[i].ToDomain()
	}
	return plan
}

// FromDomain populates the persistence model from a domain FeePlan.
func (m *FeePlanModel) FromDomain(p *fee.FeePlan) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.DealID = p.DealID
	m.VehicleID = p.VehicleID
	m.TermsheetID = p.TermsheetID
	m.Name = p.Name
	m.Revision = p.Revision
	m.PreviousPlanID = p.PreviousPlanID
	m.Status = p.Status
	m.IsDefault = p.IsDefault
	m.CounterpartyType = p.CounterpartyType
	m.Currency = p.Currency.String()
	m.LockedAt = p.LockedAt
	m.Components = make([]FeeComponentModel, len(p.Components))
	for i := range p.Components {
		m.Components[i] = FeeComponentModelFromDomain(&p.Components[i])
	}
}

// FeePlanModelFromDomain creates a new persistence model from a domain FeePlan.
func FeePlanModelFromDomain(p *fee.FeePlan) *FeePlanModel {
	m := &FeePlanModel{}
	m.FromDomain(p)
	return m
}

// FeeComponentModel is the persistence model for a fee plan component.
type FeeComponentModel struct {
	ID               uuid.UUID         `gorm:"type:uuid;primary_key"`
	FeePlanID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	Kind             fee.ComponentKind `gorm:"type:varchar(30);not null"`
	CalcMethod       fee.CalcMethod    `gorm:"type:varchar(30);not null"`
	RateBps          *int
	FlatAmount       *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Frequency        fee.Frequency    `gorm:"type:varchar(20);not null"`
	HurdleRateBps    *int
	HasHighWaterMark bool   `gorm:"not null;default:false"`
	SortOrder        int    `gorm:"not null;default:0"`
	Description      string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (FeeComponentModel) TableName() string {
	return "fee_components"
}

// ToDomain converts the persistence model to a domain FeeComponent.
func (m *FeeComponentModel) ToDomain() fee.FeeComponent {
	return fee.FeeComponent{
		ID:               m.ID,
		FeePlanID:        m.FeePlanID,
		Kind:             m.Kind,
		CalcMethod:       m.CalcMethod,
		RateBps:          m.RateBps,
		FlatAmount:       m.FlatAmount,
		Frequency:        m.Frequency,
		HurdleRateBps:    m.HurdleRateBps,
		HasHighWaterMark: m.HasHighWaterMark,
		SortOrder:        m.SortOrder,
		Description:      m.Description,
	}
}

// FeeComponentModelFromDomain creates a persistence model from a domain FeeComponent.
func FeeComponentModelFromDomain(c *fee.FeeComponent) FeeComponentModel {
	return FeeComponentModel{
		ID:               c.ID,
		FeePlanID:        c.FeePlanID,
		Kind:             c.Kind,
		CalcMethod:       c.CalcMethod,
		RateBps:          c.RateBps,
		FlatAmount:       c.FlatAmount,
		Frequency:        c.Frequency,
		HurdleRateBps:    c.HurdleRateBps,
		HasHighWaterMark: c.HasHighWaterMark,
		SortOrder:        c.SortOrder,
		Description:      c.Description,
	}
}

// FeeEventModel is the persistence model for a FeeEvent. The (allocation, component)
// pair is unique.
type FeeEventModel struct {
	TenantAggregateModel
	AllocationID   uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_fee_events_allocation_component,priority:1"`
	FeeComponentID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_fee_events_allocation_component,priority:2"`
	FeePlanID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	InvestorID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	DealID         uuid.UUID         `gorm:"type:uuid;not null;index"`
	Kind           fee.ComponentKind `gorm:"type:varchar(30);not null"`
	CalcMethod     fee.CalcMethod    `gorm:"type:varchar(30);not null"`
	Frequency      fee.Frequency     `gorm:"type:varchar(20);not null"`
	RateBps        *int
	BaseAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ComputedAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency       string          `gorm:"type:varchar(3);not null"`
	Status         fee.EventStatus `gorm:"type:varchar(20);not null;default:'accrued';index"`
	EventDate      time.Time       `gorm:"not null"`
	InvoiceID      *uuid.UUID      `gorm:"type:uuid;index"`
	InvoicedAt     *time.Time
}

// TableName returns the table name for GORM
func (FeeEventModel) TableName() string {
	return "fee_events"
}

// ToDomain converts the persistence model to a domain FeeEvent.
func (m *FeeEventModel) ToDomain() *fee.FeeEvent {
	e := &fee.FeeEvent{
		AllocationID:   m.AllocationID,
		FeeComponentID: m.FeeComponentID,
		FeePlanID:      m.FeePlanID,
		InvestorID:     m.InvestorID,
		DealID:         m.DealID,
		Kind:           m.Kind,
		CalcMethod:     m.CalcMethod,
		Frequency:      m.Frequency,
		RateBps:        m.RateBps,
		BaseAmount:     m.BaseAmount,
		ComputedAmount: m.ComputedAmount,
		Currency:       valueobject.Currency(m.Currency),
		Status:         m.Status,
		EventDate:      m.EventDate,
		InvoiceID:      m.InvoiceID,
		InvoicedAt:     m.InvoicedAt,
	}
	m.PopulateTenantAggregateRoot(&e.TenantAggregateRoot)
	return e
}

// FeeEventModelFromDomain creates a persistence model from a domain FeeEvent.
func FeeEventModelFromDomain(e *fee.FeeEvent) *FeeEventModel {
	m := &FeeEventModel{
		AllocationID:   e.AllocationID,
		FeeComponentID: e.FeeComponentID,
		FeePlanID:      e.FeePlanID,
		InvestorID:     e.InvestorID,
		DealID:         e.DealID,
		Kind:           e.Kind,
		CalcMethod:     e.CalcMethod,
		Frequency:      e.Frequency,
		RateBps:        e.RateBps,
		BaseAmount:     e.BaseAmount,
		ComputedAmount: e.ComputedAmount,
		Currency:       e.Currency.String(),
		Status:         e.Status,
		EventDate:      e.EventDate,
		InvoiceID:      e.InvoiceID,
		InvoicedAt:     e.InvoicedAt,
	}
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	return m
}
