package models

import (
	"time"

	"github.com/erp/feeengine/internal/domain/commission"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyCommissionModel is the persistence model for the PartyCommission aggregate root.
// party_kind discriminates partner, introducer and commercial partner rows in one table.
// An automatic accrual is unique per (agreement, source).
type PartyCommissionModel struct {
	TenantAggregateModel
	PartyKind          commission.PartyKind `gorm:"type:varchar(30);not null;index"`
	PartyID            uuid.UUID            `gorm:"type:uuid;not null;index"`
	ArrangerID         *uuid.UUID           `gorm:"type:uuid;index"`
	DealID             uuid.UUID            `gorm:"type:uuid;not null;index"`
	InvestorID         *uuid.UUID           `gorm:"type:uuid"`
	SubscriptionID     *uuid.UUID           `gorm:"type:uuid;index"`
	AgreementID        *uuid.UUID           `gorm:"type:uuid;uniqueIndex:idx_party_commissions_agreement_source,priority:1"`
	SourceID           *uuid.UUID           `gorm:"type:uuid;uniqueIndex:idx_party_commissions_agreement_source,priority:2"`
	BasisType          commission.BasisType `gorm:"type:varchar(30);not null"`
	RateBps            *int
	BaseAmount         decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	AccrualAmount      decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Currency           string            `gorm:"type:varchar(3);not null"`
	Status             commission.Status `gorm:"type:varchar(20);not null;default:'accrued';index"`
	AccruedAt          time.Time         `gorm:"not null;index"`
	InvoiceRequestedAt *time.Time
	InvoicedAt         *time.Time
	InvoiceReference   string `gorm:"type:varchar(200)"`
	PaidAt             *time.Time
	PaymentReference   string     `gorm:"type:varchar(200)"`
	PaidBy             *uuid.UUID `gorm:"type:uuid"`
	CancelledAt        *time.Time
	RejectedAt         *time.Time
	StatusReason       string `gorm:"type:varchar(500)"`
	Notes              string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PartyCommissionModel) TableName() string {
	return "party_commissions"
}

// ToDomain converts the persistence model to a domain PartyCommission.
func (m *PartyCommissionModel) ToDomain() *commission.PartyCommission {
	c := &commission.PartyCommission{
		PartyKind:          m.PartyKind,
		PartyID:            m.PartyID,
		ArrangerID:         m.ArrangerID,
		DealID:             m.DealID,
		InvestorID:         m.InvestorID,
		SubscriptionID:     m.SubscriptionID,
		AgreementID:        m.AgreementID,
		SourceID:           m.SourceID,
		BasisType:          m.BasisType,
		RateBps:            m.RateBps,
		BaseAmount:         m.BaseAmount,
		AccrualAmount:      m.AccrualAmount,
		Currency:           valueobject.Currency(m.Currency),
		Status:             m.Status,
		AccruedAt:          m.AccruedAt,
		InvoiceRequestedAt: m.InvoiceRequestedAt,
		InvoicedAt:         m.InvoicedAt,
		InvoiceReference:   m.InvoiceReference,
		PaidAt:             m.PaidAt,
		PaymentReference:   m.PaymentReference,
		PaidBy:             m.PaidBy,
		CancelledAt:        m.CancelledAt,
		RejectedAt:         m.RejectedAt,
		StatusReason:       m.StatusReason,
		Notes:              m.Notes,
	}
	m.PopulateTenantAggregateRoot(&c.TenantAggregateRoot)
	return c
}

// PartyCommissionModelFromDomain creates a persistence model from a domain PartyCommission.
func PartyCommissionModelFromDomain(c *commission.PartyCommission) *PartyCommissionModel {
	m := &PartyCommissionModel{
		PartyKind:          c.PartyKind,
		PartyID:            c.PartyID,
		ArrangerID:         c.ArrangerID,
		DealID:             c.DealID,
		InvestorID:         c.InvestorID,
		SubscriptionID:     c.SubscriptionID,
		AgreementID:        c.AgreementID,
		SourceID:           c.SourceID,
		BasisType:          c.BasisType,
		RateBps:            c.RateBps,
		BaseAmount:         c.BaseAmount,
		AccrualAmount:      c.AccrualAmount,
		Currency:           c.Currency.String(),
		Status:             c.Status,
		AccruedAt:          c.AccruedAt,
		InvoiceRequestedAt: c.InvoiceRequestedAt,
		InvoicedAt:         c.InvoicedAt,
		InvoiceReference:   c.InvoiceReference,
		PaidAt:             c.PaidAt,
		PaymentReference:   c.PaymentReference,
		PaidBy:             c.PaidBy,
		CancelledAt:        c.CancelledAt,
		RejectedAt:         c.RejectedAt,
		StatusReason:       c.StatusReason,
		Notes:              c.Notes,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}

// CommissionAgreementModel is the persistence model for a standing commission agreement.
type CommissionAgreementModel struct {
	TenantAggregateModel
	DealID        uuid.UUID            `gorm:"type:uuid;not null;index"`
	PartyKind     commission.PartyKind `gorm:"type:varchar(30);not null"`
	PartyID       uuid.UUID            `gorm:"type:uuid;not null;index"`
	ArrangerID    *uuid.UUID           `gorm:"type:uuid"`
	BasisType     commission.BasisType `gorm:"type:varchar(30);not null"`
	RateBps       int                  `gorm:"not null"`
	Currency      string               `gorm:"type:varchar(3);not null"`
	Active        bool                 `gorm:"not null"`
	EffectiveFrom time.Time            `gorm:"not null"`
	EffectiveTo   *time.Time
}

// TableName returns the table name for GORM
func (CommissionAgreementModel) TableName() string {
	return "commission_agreements"
}

// ToDomain converts the persistence model to a domain Agreement.
func (m *CommissionAgreementModel) ToDomain() *commission.Agreement {
	a := &commission.Agreement{
		DealID:        m.DealID,
		PartyKind:     m.PartyKind,
		PartyID:       m.PartyID,
		ArrangerID:    m.ArrangerID,
		BasisType:     m.BasisType,
		RateBps:       m.RateBps,
		Currency:      valueobject.Currency(m.Currency),
		Active:        m.Active,
		EffectiveFrom: m.EffectiveFrom,
		EffectiveTo:   m.EffectiveTo,
	}
	m.PopulateTenantAggregateRoot(&a.TenantAggregateRoot)
	return a
}

// CommissionAgreementModelFromDomain creates a persistence model from a domain Agreement.
func CommissionAgreementModelFromDomain(a *commission.Agreement) *CommissionAgreementModel {
	m := &CommissionAgreementModel{
		DealID:        a.DealID,
		PartyKind:     a.PartyKind,
		PartyID:       a.PartyID,
		ArrangerID:    a.ArrangerID,
		BasisType:     a.BasisType,
		RateBps:       a.RateBps,
		Currency:      a.Currency.String(),
		Active:        a.Active,
		EffectiveFrom: a.EffectiveFrom,
		EffectiveTo:   a.EffectiveTo,
	}
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	return m
}

// PartyModel is the read model of commission-receiving parties, used for reconciliation names.
type PartyModel struct {
	ID       uuid.UUID            `gorm:"type:uuid;primary_key"`
	TenantID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Kind     commission.PartyKind `gorm:"type:varchar(30);not null"`
	Name     string               `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (PartyModel) TableName() string {
	return "parties"
}
