package models

import (
	"time"

	"github.com/erp/feeengine/internal/domain/deal"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// DealModel is the persistence model for the Deal read model.
type DealModel struct {
	TenantAggregateModel
	Name       string      `gorm:"type:varchar(200);not null"`
	Status     deal.Status `gorm:"type:varchar(30);not null;default:'draft'"`
	ArrangerID *uuid.UUID  `gorm:"type:uuid;index"`
	Currency   string      `gorm:"type:varchar(3);not null"`
}

// TableName returns the table name for GORM
func (DealModel) TableName() string {
	return "deals"
}

// ToDomain converts the persistence model to a domain Deal.
func (m *DealModel) ToDomain() *deal.Deal {
	d := &deal.Deal{
		Name:       m.Name,
		Status:     m.Status,
		ArrangerID: m.ArrangerID,
		Currency:   valueobject.Currency(m.Currency),
	}
	m.PopulateTenantAggregateRoot(&d.TenantAggregateRoot)
	return d
}

// DealModelFromDomain creates a persistence model from a domain Deal.
func DealModelFromDomain(d *deal.Deal) *DealModel {
	m := &DealModel{
		Name:       d.Name,
		Status:     d.Status,
		ArrangerID: d.ArrangerID,
		Currency:   d.Currency.String(),
	}
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	return m
}

// TermsheetModel is the persistence model for the Termsheet read model.
type TermsheetModel struct {
	TenantAggregateModel
	DealID            uuid.UUID            `gorm:"type:uuid;not null;index"`
	TermsVersion      int                  `gorm:"not null;default:1"`
	Title             string               `gorm:"type:varchar(300);not null"`
	Status            deal.TermsheetStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	CompletionDate    *time.Time           `gorm:"index"`
	PublishedAt       *time.Time
	ClosedProcessedAt *time.Time
}

// TableName returns the table name for GORM
func (TermsheetModel) TableName() string {
	return "termsheets"
}

// ToDomain converts the persistence model to a domain Termsheet.
func (m *TermsheetModel) ToDomain() *deal.Termsheet {
	t := &deal.Termsheet{
		DealID:            m.DealID,
		TermsVersion:      m.TermsVersion,
		Title:             m.Title,
		Status:            m.Status,
		CompletionDate:    m.CompletionDate,
		PublishedAt:       m.PublishedAt,
		ClosedProcessedAt: m.ClosedProcessedAt,
	}
	m.PopulateTenantAggregateRoot(&t.TenantAggregateRoot)
	return t
}

// TermsheetModelFromDomain creates a persistence model from a domain Termsheet.
func TermsheetModelFromDomain(t *deal.Termsheet) *TermsheetModel {
	m := &TermsheetModel{
		DealID:            t.DealID,
		TermsVersion:      t.TermsVersion,
		Title:             t.Title,
		Status:            t.Status,
		CompletionDate:    t.CompletionDate,
		PublishedAt:       t.PublishedAt,
		ClosedProcessedAt: t.ClosedProcessedAt,
	}
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)
	return m
}

// DealAssignmentModel links a user to a deal in a role.
type DealAssignmentModel struct {
	TenantID  uuid.UUID           `gorm:"type:uuid;primaryKey"`
	DealID    uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Role      deal.AssignmentRole `gorm:"type:varchar(30);primaryKey"`
	CreatedAt time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DealAssignmentModel) TableName() string {
	return "deal_assignments"
}
