package billing

import (
	"time"

	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineKindCustom marks an ad hoc line that does not come from a fee event
const LineKindCustom = "custom"

// InvoiceLine is one billed item. Amount is always quantity × unit price.
type InvoiceLine struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	FeeEventID  *uuid.UUID
	Kind        string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	SortOrder   int
}

// IsCustom reports whether the line was entered by hand
func (l InvoiceLine) IsCustom() bool {
	return l.FeeEventID == nil
}

// NewFeeEventLine creates a line billing an accrued fee event
func NewFeeEventLine(e *fee.FeeEvent) (InvoiceLine, error) {
	if e == nil {
		return InvoiceLine{}, shared.NewDomainError("INVALID_FEE_EVENT", "Fee event is required")
	}
	if !e.IsAccrued() {
		return InvoiceLine{}, shared.NewDomainError("FEE_EVENT_NOT_ACCRUED", "Fee event "+e.ID.String()+" is not accrued")
	}
	feeEventID := e.ID
	return InvoiceLine{
		ID:          uuid.New(),
		FeeEventID:  &feeEventID,
		Kind:        string(e.Kind),
		Description: e.Kind.Label() + " fee",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   e.ComputedAmount,
		Amount:      e.ComputedAmount,
	}, nil
}

// NewCustomLine creates an ad hoc line
func NewCustomLine(description string, quantity, unitPrice decimal.Decimal) (InvoiceLine, error) {
	if description == "" {
		return InvoiceLine{}, shared.NewDomainError("INVALID_DESCRIPTION", "Line description cannot be empty")
	}
	if !quantity.IsPositive() {
		return InvoiceLine{}, shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return InvoiceLine{}, shared.NewDomainError("INVALID_UNIT_PRICE", "Line unit price cannot be negative")
	}
	return InvoiceLine{
		ID:          uuid.New(),
		Kind:        LineKindCustom,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      quantity.Mul(unitPrice),
	}, nil
}

// InvoicePayment is a payment received against an invoice
type InvoicePayment struct {
	ID        uuid.UUID
	InvoiceID uuid.UUID
	Amount    decimal.Decimal
	PaidAt    time.Time
	Reference string
	CreatedAt time.Time
}

// NewInvoicePayment creates a payment record
func NewInvoicePayment(invoiceID uuid.UUID, amount decimal.Decimal, paidAt time.Time, reference string) *InvoicePayment {
	return &InvoicePayment{
		ID:        uuid.New(),
		InvoiceID: invoiceID,
		Amount:    amount,
		PaidAt:    paidAt,
		Reference: reference,
		CreatedAt: shared.Now(),
	}
}
