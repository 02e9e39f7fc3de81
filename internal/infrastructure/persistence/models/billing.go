package models

import (
	"time"

	"github.com/erp/feeengine/internal/domain/billing"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
// Balance due is derived from payments and never stored.
type InvoiceModel struct {
	TenantAggregateModel
	InvoiceNumber    string                   `gorm:"type:varchar(30);not null;uniqueIndex:idx_invoices_tenant_number,priority:2"`
	InvestorID       uuid.UUID                `gorm:"type:uuid;not null;index"`
	DealID           *uuid.UUID               `gorm:"type:uuid;index"`
	Currency         string                   `gorm:"type:varchar(3);not null"`
	IssueDate        time.Time                `gorm:"not null"`
	DueDate          time.Time                `gorm:"not null"`
	Subtotal         decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	Total            decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	Status           billing.InvoiceStatus    `gorm:"type:varchar(20);not null;default:'draft';index"`
	Notes            string                   `gorm:"type:text"`
	DocumentURL      string                   `gorm:"type:varchar(1000)"`
	GenerationStatus billing.GenerationStatus `gorm:"type:varchar(20)"`
	GenerationError  string                   `gorm:"type:text"`
	SentAt           *time.Time
	PaidAt           *time.Time
	CancelledAt      *time.Time
	Lines            []InvoiceLineModel    `gorm:"foreignKey:InvoiceID;references:ID"`
	Payments         []InvoicePaymentModel `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		InvoiceNumber:    m.InvoiceNumber,
		InvestorID:       m.InvestorID,
		DealID:           m.DealID,
		Currency:         valueobject.Currency(m.Currency),
		IssueDate:        m.IssueDate,
		DueDate:          m.DueDate,
		Subtotal:         m.Subtotal,
		Total:            m.Total,
		Status:           m.Status,
		Notes:            m.Notes,
		DocumentURL:      m.DocumentURL,
		GenerationStatus: m.GenerationStatus,
		GenerationError:  m.GenerationError,
		SentAt:           m.SentAt,
		PaidAt:           m.PaidAt,
		CancelledAt:      m.CancelledAt,
		Lines:            make([]billing.InvoiceLine, len(m.Lines)),
		Payments:         make([]billing.InvoicePayment, len(m.Payments)),
	}
	m.PopulateTenantAggregateRoot(&inv.TenantAggregateRoot)
	for i := range m.Lines {
		inv.Lines[i] = m.Lines[i].ToDomain()
	}
	for i := range m.Payments {
		inv.Payments[i] = m.Payments[i].ToDomain()
	}
	return inv
}

// InvoiceModelFromDomain creates a header-only persistence model from a domain Invoice.
// Lines and payments are written by their own repository calls.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		InvoiceNumber:    inv.InvoiceNumber,
		InvestorID:       inv.InvestorID,
		DealID:           inv.DealID,
		Currency:         inv.Currency.String(),
		IssueDate:        inv.IssueDate,
		DueDate:          inv.DueDate,
		Subtotal:         inv.Subtotal,
		Total:            inv.Total,
		Status:           inv.Status,
		Notes:            inv.Notes,
		DocumentURL:      inv.DocumentURL,
		GenerationStatus: inv.GenerationStatus,
		GenerationError:  inv.GenerationError,
		SentAt:           inv.SentAt,
		PaidAt:           inv.PaidAt,
		CancelledAt:      inv.CancelledAt,
	}
	m.FromDomainTenantAggregateRoot(inv.TenantAggregateRoot)
	return m
}

// InvoiceLineModel is the persistence model for an invoice line.
type InvoiceLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	FeeEventID  *uuid.UUID      `gorm:"type:uuid;index"`
	Kind        string          `gorm:"type:varchar(30);not null"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SortOrder   int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// ToDomain converts the persistence model to a domain InvoiceLine.
func (m *InvoiceLineModel) ToDomain() billing.InvoiceLine {
	return billing.InvoiceLine{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		FeeEventID:  m.FeeEventID,
		Kind:        m.Kind,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
		SortOrder:   m.SortOrder,
	}
}

// InvoiceLineModelFromDomain creates a persistence model from a domain InvoiceLine.
func InvoiceLineModelFromDomain(l *billing.InvoiceLine) InvoiceLineModel {
	return InvoiceLineModel{
		ID:          l.ID,
		InvoiceID:   l.InvoiceID,
		FeeEventID:  l.FeeEventID,
		Kind:        l.Kind,
		Description: l.Description,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		Amount:      l.Amount,
		SortOrder:   l.SortOrder,
	}
}

// InvoicePaymentModel is the persistence model for a recorded invoice payment.
type InvoicePaymentModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAt    time.Time       `gorm:"not null"`
	Reference string          `gorm:"type:varchar(200)"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoicePaymentModel) TableName() string {
	return "invoice_payments"
}

// ToDomain converts the persistence model to a domain InvoicePayment.
func (m *InvoicePaymentModel) ToDomain() billing.InvoicePayment {
	return billing.InvoicePayment{
		ID:        m.ID,
		InvoiceID: m.InvoiceID,
		Amount:    m.Amount,
		PaidAt:    m.PaidAt,
		Reference: m.Reference,
		CreatedAt: m.CreatedAt,
	}
}

// InvoicePaymentModelFromDomain creates a persistence model from a domain InvoicePayment.
func InvoicePaymentModelFromDomain(p *billing.InvoicePayment) *InvoicePaymentModel {
	return &InvoicePaymentModel{
		ID:        p.ID,
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount,
		PaidAt:    p.PaidAt,
		Reference: p.Reference,
		CreatedAt: p.CreatedAt,
	}
}

// InvoiceSequenceModel is the per-tenant, per-year invoice number counter row.
type InvoiceSequenceModel struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Year      int       `gorm:"primaryKey"`
	LastValue int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceSequenceModel) TableName() string {
	return "invoice_sequences"
}
