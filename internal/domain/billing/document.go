package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentLineItem is one line of the document generation payload
type DocumentLineItem struct {
	Description string          `json:"description"`
	Kind        string          `json:"kind"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// DocumentParty identifies the investor or deal on the payload
type DocumentParty struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
}

// DocumentRequest is the payload sent to the document generation collaborator
type DocumentRequest struct {
	InvoiceID     uuid.UUID          `json:"invoice_id"`
	InvoiceNumber string             `json:"invoice_number"`
	Investor      DocumentParty      `json:"investor"`
	Deal          *DocumentParty     `json:"deal,omitempty"`
	DueDate       string             `json:"due_date"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Total         decimal.Decimal    `json:"total"`
	Currency      string             `json:"currency"`
	LineItems     []DocumentLineItem `json:"line_items"`
	Notes         string             `json:"notes"`
	CallbackURL   string             `json:"callback_url"`
}

// NewDocumentRequest builds the generation payload for an invoice
func NewDocumentRequest(inv *Invoice, callbackURL string) *DocumentRequest {
	req := &DocumentRequest{
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Investor:      DocumentParty{ID: inv.InvestorID},
		DueDate:       inv.DueDate.Format("2006-01-02"),
		Subtotal:      inv.Subtotal,
		Total:         inv.Total,
		Currency:      inv.Currency.String(),
		LineItems:     make([]DocumentLineItem, 0, len(inv.Lines)),
		Notes:         inv.Notes,
		CallbackURL:   callbackURL,
	}
	if inv.DealID != nil {
		req.Deal = &DocumentParty{ID: *inv.DealID}
	}
	for _, line := range inv.Lines {
		req.LineItems = append(req.LineItems, DocumentLineItem{
			Description: line.Description,
			Kind:        line.Kind,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Amount:      line.Amount,
		})
	}
	return req
}

// DocumentCallback is what the collaborator posts back once generation finishes
type DocumentCallback struct {
	InvoiceID   uuid.UUID `json:"invoice_id"`
	Status      string    `json:"status"`
	DocumentURL string    `json:"document_url,omitempty"`
	Error       string    `json:"error,omitempty"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

// Succeeded reports whether the collaborator produced the document
func (c *DocumentCallback) Succeeded() bool {
	return c.Status == string(GenerationStatusCompleted)
}

// DocumentGenerator is the port to the external document generation collaborator.
// Implementations deliver the request and return once it was accepted; the result
// arrives later through the callback.
type DocumentGenerator interface {
	RequestDocument(ctx context.Context, req *DocumentRequest) error
}
