package models

import (
	"time"

	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/erp/feeengine/internal/domain/subscription"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubscriptionModel is the persistence model for the Subscription aggregate root.
// The fingerprint is unique per tenant.
type SubscriptionModel struct {
	TenantAggregateModel
	InvestorID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	DealID           uuid.UUID           `gorm:"type:uuid;not null;index"`
	VehicleID        uuid.UUID           `gorm:"type:uuid;not null"`
	TermsheetID      *uuid.UUID          `gorm:"type:uuid;index"`
	FeePlanID        *uuid.UUID          `gorm:"type:uuid"`
	CommitmentAmount decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	FundedAmount     decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCount        decimal.Decimal     `gorm:"type:decimal(18,6);not null;default:0"`
	Currency         string              `gorm:"type:varchar(3);not null"`
	EffectiveDate    time.Time           `gorm:"not null"`
	Status           subscription.Status `gorm:"type:varchar(20);not null;default:'pending';index"`
	Fingerprint      string              `gorm:"type:char(64);not null;uniqueIndex:idx_subscriptions_tenant_fingerprint,priority:2"`
	CommittedAt      *time.Time
	FundedAt         *time.Time
	CancelledAt      *time.Time
}

// TableName returns the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToDomain converts the persistence model to a domain Subscription.
func (m *SubscriptionModel) ToDomain() *subscription.Subscription {
	s := &subscription.Subscription{
		InvestorID:       m.InvestorID,
		DealID:           m.DealID,
		VehicleID:        m.VehicleID,
		TermsheetID:      m.TermsheetID,
		FeePlanID:        m.FeePlanID,
		CommitmentAmount: m.CommitmentAmount,
		FundedAmount:     m.FundedAmount,
		UnitCount:        m.UnitCount,
		Currency:         valueobject.Currency(m.Currency),
		EffectiveDate:    m.EffectiveDate,
		Status:           m.Status,
		Fingerprint:      m.Fingerprint,
		CommittedAt:      m.CommittedAt,
		FundedAt:         m.FundedAt,
		CancelledAt:      m.CancelledAt,
	}
	m.PopulateTenantAggregateRoot(&s.TenantAggregateRoot)
	return s
}

// SubscriptionModelFromDomain creates a persistence model from a domain Subscription.
func SubscriptionModelFromDomain(s *subscription.Subscription) *SubscriptionModel {
	m := &SubscriptionModel{
		InvestorID:       s.InvestorID,
		DealID:           s.DealID,
		VehicleID:        s.VehicleID,
		TermsheetID:      s.TermsheetID,
		FeePlanID:        s.FeePlanID,
		CommitmentAmount: s.CommitmentAmount,
		FundedAmount:     s.FundedAmount,
		UnitCount:        s.UnitCount,
		Currency:         s.Currency.String(),
		EffectiveDate:    s.EffectiveDate,
		Status:           s.Status,
		Fingerprint:      s.Fingerprint,
		CommittedAt:      s.CommittedAt,
		FundedAt:         s.FundedAt,
		CancelledAt:      s.CancelledAt,
	}
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	return m
}
