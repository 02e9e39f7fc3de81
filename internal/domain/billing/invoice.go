package billing

import (
	"fmt"
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
)

// IsValid checks if the status is valid
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPartiallyPaid,
		InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the invoice can no longer change
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// CanApplyPayment returns true if payments may be recorded against the invoice
func (s InvoiceStatus) CanApplyPayment() bool {
	return s == InvoiceStatusSent || s == InvoiceStatusPartiallyPaid
}

// GenerationStatus tracks the external document generation for an invoice
type GenerationStatus string

const (
	GenerationStatusRequested GenerationStatus = "requested"
	GenerationStatusCompleted GenerationStatus = "completed"
	GenerationStatusFailed    GenerationStatus = "failed"
)

// IsValid checks if the generation status is valid
func (s GenerationStatus) IsValid() bool {
	return s == GenerationStatusRequested || s == GenerationStatusCompleted || s == GenerationStatusFailed
}

// String returns the string representation of GenerationStatus
func (s GenerationStatus) String() string {
	return string(s)
}

// FormatInvoiceNumber renders the yearly sequence as INV-{year}-{seq}
func FormatInvoiceNumber(year, sequence int) string {
	return fmt.Sprintf("INV-%d-%04d", year, sequence)
}

// Invoice aggregates accrued fee events and custom lines into one billing document.
// Total always equals the sum of the line amounts; the balance due is derived from payments.
type Invoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber    string
	InvestorID       uuid.UUID
	DealID           *uuid.UUID
	Currency         valueobject.Currency
	IssueDate        time.Time
	DueDate          time.Time
	Subtotal         decimal.Decimal
	Total            decimal.Decimal
	Status           InvoiceStatus
	Notes            string
	Lines            []InvoiceLine
	Payments         []InvoicePayment
	DocumentURL      string
	GenerationStatus GenerationStatus
	GenerationError  string
	SentAt           *time.Time
	PaidAt           *time.Time
	CancelledAt      *time.Time
}

// NewInvoiceInput holds the fields for creating an invoice
type NewInvoiceInput struct {
	InvoiceNumber string
	InvestorID    uuid.UUID
	DealID        *uuid.UUID
	Currency      valueobject.Currency
	IssueDate     time.Time
	DueDate       time.Time
	Notes         string
	Lines         []InvoiceLine
}

// NewInvoice creates a draft invoice with its lines and computed totals
func NewInvoice(actor shared.Actor, input NewInvoiceInput) (*Invoice, error) {
	if input.InvoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if input.InvestorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVESTOR", "Investor ID cannot be empty")
	}
	if len(input.Lines) == 0 {
		return nil, shared.NewDomainError("INVALID_LINES", "Invoice must have at least one line")
	}
	if input.DueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}
	currency := input.Currency
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", fmt.Sprintf("Unsupported currency: %s", currency))
	}
	issueDate := input.IssueDate
	if issueDate.IsZero() {
		issueDate = shared.Now()
	}
	if input.DueDate.Before(truncateDay(issueDate)) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before the issue date")
	}

	inv := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRootForActor(actor),
		InvoiceNumber:       input.InvoiceNumber,
		InvestorID:          input.InvestorID,
		DealID:              input.DealID,
		Currency:            currency,
		IssueDate:           issueDate,
		DueDate:             input.DueDate,
		Status:              InvoiceStatusDraft,
		Notes:               input.Notes,
		GenerationStatus:    GenerationStatusRequested,
		Payments:            make([]InvoicePayment, 0),
	}
	inv.Lines = make([]InvoiceLine, 0, len(input.Lines))
	for i, line := range input.Lines {
		line.InvoiceID = inv.ID
		line.SortOrder = i + 1
		inv.Lines = append(inv.Lines, line)
	}
	inv.recalculate()

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))
	return inv, nil
}

// recalculate derives subtotal and total from the lines
func (inv *Invoice) recalculate() {
	subtotal := decimal.Zero
	for _, line := range inv.Lines {
		subtotal = subtotal.Add(line.Amount)
	}
	inv.Subtotal = subtotal
	inv.Total = subtotal
}

// PaidAmount returns the sum of recorded payments
func (inv *Invoice) PaidAmount() decimal.Decimal {
	paid := decimal.Zero
	for _, p := range inv.Payments {
		paid = paid.Add(p.Amount)
	}
	return paid
}

// BalanceDue returns total minus payments
func (inv *Invoice) BalanceDue() decimal.Decimal {
	return inv.Total.Sub(inv.PaidAmount())
}

// FeeEventIDs returns the fee events billed on this invoice
func (inv *Invoice) FeeEventIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(inv.Lines))
	for _, line := range inv.Lines {
		if line.FeeEventID != nil {
			ids = append(ids, *line.FeeEventID)
		}
	}
	return ids
}

// IsDocumentGenerated reports whether the collaborator has confirmed the document
func (inv *Invoice) IsDocumentGenerated() bool {
	return inv.GenerationStatus == GenerationStatusCompleted
}

// MarkDocumentGenerated records the generated document and moves a draft invoice to sent.
// Returns false when the document was already recorded.
func (inv *Invoice) MarkDocumentGenerated(documentURL string, at time.Time) (bool, error) {
	if inv.GenerationStatus == GenerationStatusCompleted {
		return false, nil
	}
	if inv.Status == InvoiceStatusCancelled {
		return false, shared.NewDomainError("INVALID_STATE", "Cannot attach a document to a cancelled invoice")
	}

	inv.DocumentURL = documentURL
	inv.GenerationStatus = GenerationStatusCompleted
	inv.GenerationError = ""
	if inv.Status == InvoiceStatusDraft {
		inv.Status = InvoiceStatusSent
		inv.SentAt = &at
		inv.AddDomainEvent(NewInvoiceSentEvent(inv))
	}
	inv.UpdatedAt = at
	inv.IncrementVersion()
	return true, nil
}

// MarkDocumentFailed records a generation failure; the invoice stays in its current status.
// Returns false when there is nothing to change.
func (inv *Invoice) MarkDocumentFailed(reason string, at time.Time) bool {
	if inv.GenerationStatus == GenerationStatusCompleted {
		return false
	}
	if inv.GenerationStatus == GenerationStatusFailed && inv.GenerationError == reason {
		return false
	}
	inv.GenerationStatus = GenerationStatusFailed
	inv.GenerationError = reason
	inv.UpdatedAt = at
	inv.IncrementVersion()
	return true
}

// RecordPayment applies a payment against the balance due
func (inv *Invoice) RecordPayment(amount decimal.Decimal, paidAt time.Time, reference string) (*InvoicePayment, error) {
	if !inv.Status.CanApplyPayment() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record a payment on an invoice in %s status", inv.Status))
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	balance := inv.BalanceDue()
	if amount.GreaterThan(balance) {
		return nil, shared.NewDomainError("EXCEEDS_BALANCE_DUE", fmt.Sprintf("Payment amount %s exceeds balance due %s", amount.StringFixed(2), balance.StringFixed(2)))
	}
	if paidAt.IsZero() {
		paidAt = shared.Now()
	}

	payment := NewInvoicePayment(inv.ID, amount, paidAt, reference)
	inv.Payments = append(inv.Payments, *payment)

	if inv.BalanceDue().IsZero() {
		inv.Status = InvoiceStatusPaid
		inv.PaidAt = &paidAt
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	} else {
		inv.Status = InvoiceStatusPartiallyPaid
	}
	inv.AddDomainEvent(NewInvoicePaymentRecordedEvent(inv, payment))

	inv.UpdatedAt = shared.Now()
	inv.IncrementVersion()
	return payment, nil
}

// Cancel cancels an invoice that has not received any payment
func (inv *Invoice) Cancel() error {
	if inv.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel invoice in %s status", inv.Status))
	}
	if len(inv.Payments) > 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel an invoice with recorded payments")
	}
	now := shared.Now()
	inv.Status = InvoiceStatusCancelled
	inv.CancelledAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()
	return nil
}

// IsOverdue returns true if the invoice is unpaid past its due date
func (inv *Invoice) IsOverdue(now time.Time) bool {
	if inv.Status.IsTerminal() || inv.Status == InvoiceStatusDraft {
		return false
	}
	return now.After(inv.DueDate)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
