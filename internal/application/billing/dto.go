package billing

import (
	"time"

	"github.com/erp/feeengine/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Invoice DTOs ====================

// CustomLineInput is an ad hoc invoice line
type CustomLineInput struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"decimal_gte0"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"decimal_gte0"`
}

// CreateInvoiceRequest represents a request to bill accrued fee events
type CreateInvoiceRequest struct {
	InvestorID  uuid.UUID         `json:"investor_id" binding:"required"`
	DealID      *uuid.UUID        `json:"deal_id"`
	FeeEventIDs []uuid.UUID       `json:"fee_event_ids" binding:"required,min=1"`
	CustomLines []CustomLineInput `json:"custom_lines" binding:"dive"`
	IssueDate   *time.Time        `json:"issue_date"`
	DueDate     time.Time         `json:"due_date" binding:"required"`
	Currency    string            `json:"currency"`
	Notes       string            `json:"notes" binding:"max=2000"`
}

// RecordPaymentRequest represents a payment received against an invoice
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	PaidAt    *time.Time      `json:"paid_at"`
	Reference string          `json:"reference" binding:"max=200"`
}

// InvoiceListFilter represents filter options for invoice listings
type InvoiceListFilter struct {
	InvestorID *uuid.UUID `form:"investor_id"`
	DealID     *uuid.UUID `form:"deal_id"`
	Status     string     `form:"status"`
	FromDate   *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// InvoiceLineResponse represents an invoice line in API responses
type InvoiceLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	FeeEventID  *uuid.UUID      `json:"fee_event_id,omitempty"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	SortOrder   int             `json:"sort_order"`
}

// InvoicePaymentResponse represents a payment in API responses
type InvoicePaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paid_at"`
	Reference string          `json:"reference,omitempty"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID               uuid.UUID                `json:"id"`
	InvoiceNumber    string                   `json:"invoice_number"`
	InvestorID       uuid.UUID                `json:"investor_id"`
	DealID           *uuid.UUID               `json:"deal_id,omitempty"`
	Currency         string                   `json:"currency"`
	IssueDate        time.Time                `json:"issue_date"`
	DueDate          time.Time                `json:"due_date"`
	Subtotal         decimal.Decimal          `json:"subtotal"`
	Total            decimal.Decimal          `json:"total"`
	PaidAmount       decimal.Decimal          `json:"paid_amount"`
	BalanceDue       decimal.Decimal          `json:"balance_due"`
	Status           string                   `json:"status"`
	IsOverdue        bool                     `json:"is_overdue"`
	Notes            string                   `json:"notes,omitempty"`
	DocumentURL      string                   `json:"document_url,omitempty"`
	GenerationStatus string                   `json:"generation_status"`
	GenerationError  string                   `json:"generation_error,omitempty"`
	Lines            []InvoiceLineResponse    `json:"lines,omitempty"`
	Payments         []InvoicePaymentResponse `json:"payments,omitempty"`
	SentAt           *time.Time               `json:"sent_at,omitempty"`
	PaidAt           *time.Time               `json:"paid_at,omitempty"`
	CancelledAt      *time.Time               `json:"cancelled_at,omitempty"`
	Version          int                      `json:"version"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// Warning is a non-fatal problem reported alongside a successful result
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateInvoiceResult is the outcome of invoice creation.
// A failed document request leaves the invoice in place and adds a warning.
type CreateInvoiceResult struct {
	Invoice  InvoiceResponse `json:"invoice"`
	Warnings []Warning       `json:"warnings,omitempty"`
}

// ToInvoiceResponse converts a domain invoice to a response
func ToInvoiceResponse(inv *billing.Invoice, now time.Time) InvoiceResponse {
	resp := InvoiceResponse{
		ID:               inv.ID,
		InvoiceNumber:    inv.InvoiceNumber,
		InvestorID:       inv.InvestorID,
		DealID:           inv.DealID,
		Currency:         inv.Currency.String(),
		IssueDate:        inv.IssueDate,
		DueDate:          inv.DueDate,
		Subtotal:         inv.Subtotal,
		Total:            inv.Total,
		PaidAmount:       inv.PaidAmount(),
		BalanceDue:       inv.BalanceDue(),
		Status:           string(inv.Status),
		IsOverdue:        inv.IsOverdue(now),
		Notes:            inv.Notes,
		DocumentURL:      inv.DocumentURL,
		GenerationStatus: string(inv.GenerationStatus),
		GenerationError:  inv.GenerationError,
		SentAt:           inv.SentAt,
		PaidAt:           inv.PaidAt,
		CancelledAt:      inv.CancelledAt,
		Version:          inv.Version,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
	for _, line := range inv.Lines {
		resp.Lines = append(resp.Lines, InvoiceLineResponse{
			ID:          line.ID,
			FeeEventID:  line.FeeEventID,
			Kind:        line.Kind,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Amount:      line.Amount,
			SortOrder:   line.SortOrder,
		})
	}
	for _, p := range inv.Payments {
		resp.Payments = append(resp.Payments, InvoicePaymentResponse{
			ID:        p.ID,
			Amount:    p.Amount,
			PaidAt:    p.PaidAt,
			Reference: p.Reference,
		})
	}
	return resp
}

// ==================== Document Callback DTOs ====================

// DocumentCallbackPayload is the signed body the document collaborator posts back
type DocumentCallbackPayload = billing.DocumentCallback

// CallbackResult is returned to the document collaborator after a callback
type CallbackResult struct {
	InvoiceID uuid.UUID `json:"invoice_id"`
	Status    string    `json:"status"`
	Processed bool      `json:"processed"`
	Message   string    `json:"message,omitempty"`
}
