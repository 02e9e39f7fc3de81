package billing

import (
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// AggregateTypeInvoice is the aggregate type name for invoices
	AggregateTypeInvoice = "Invoice"

	EventTypeInvoiceCreated         = "InvoiceCreated"
	EventTypeInvoiceSent            = "InvoiceSent"
	EventTypeInvoicePaymentRecorded = "InvoicePaymentRecorded"
	EventTypeInvoicePaid            = "InvoicePaid"
)

// InvoiceCreatedEvent is raised when a draft invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	InvestorID    uuid.UUID       `json:"investor_id"`
	DealID        *uuid.UUID      `json:"deal_id,omitempty"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	LineCount     int             `json:"line_count"`
}

// NewInvoiceCreatedEvent creates an InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceNumber:   inv.InvoiceNumber,
		InvestorID:      inv.InvestorID,
		DealID:          inv.DealID,
		Total:           inv.Total,
		Currency:        inv.Currency.String(),
		LineCount:       len(inv.Lines),
	}
}

// EventType returns the event type name
func (e *InvoiceCreatedEvent) EventType() string {
	return EventTypeInvoiceCreated
}

// InvoiceSentEvent is raised when the generated document moves the invoice to sent
type InvoiceSentEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string    `json:"invoice_number"`
	InvestorID    uuid.UUID `json:"investor_id"`
	DocumentURL   string    `json:"document_url"`
}

// NewInvoiceSentEvent creates an InvoiceSentEvent
func NewInvoiceSentEvent(inv *Invoice) *InvoiceSentEvent {
	return &InvoiceSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceSent, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceNumber:   inv.InvoiceNumber,
		InvestorID:      inv.InvestorID,
		DocumentURL:     inv.DocumentURL,
	}
}

// EventType returns the event type name
func (e *InvoiceSentEvent) EventType() string {
	return EventTypeInvoiceSent
}

// InvoicePaymentRecordedEvent is raised for every payment recorded against an invoice
type InvoicePaymentRecordedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	PaymentID     uuid.UUID       `json:"payment_id"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceDue    decimal.Decimal `json:"balance_due"`
}

// NewInvoicePaymentRecordedEvent creates an InvoicePaymentRecordedEvent
func NewInvoicePaymentRecordedEvent(inv *Invoice, payment *InvoicePayment) *InvoicePaymentRecordedEvent {
	return &InvoicePaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaymentRecorded, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceNumber:   inv.InvoiceNumber,
		PaymentID:       payment.ID,
		Amount:          payment.Amount,
		BalanceDue:      inv.BalanceDue(),
	}
}

// EventType returns the event type name
func (e *InvoicePaymentRecordedEvent) EventType() string {
	return EventTypeInvoicePaymentRecorded
}

// InvoicePaidEvent is raised when the balance due reaches zero
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	InvestorID    uuid.UUID       `json:"investor_id"`
	Total         decimal.Decimal `json:"total"`
}

// NewInvoicePaidEvent creates an InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceNumber:   inv.InvoiceNumber,
		InvestorID:      inv.InvestorID,
		Total:           inv.Total,
	}
}

// EventType returns the event type name
func (e *InvoicePaidEvent) EventType() string {
	return EventTypeInvoicePaid
}
