package billing

import (
	"context"
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceFilter defines filtering options for invoice queries
type InvoiceFilter struct {
	shared.Filter
	InvestorID *uuid.UUID
	DealID     *uuid.UUID
	Status     *InvoiceStatus
	FromDate   *time.Time
	ToDate     *time.Time
}

// InvoiceRepository defines persistence for invoices, their lines and payments
type InvoiceRepository interface {
	// FindByIDForTenant finds an invoice with lines and payments
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)

	// FindByID finds an invoice without tenant scoping (used by the signed document callback)
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindAllForTenant lists invoices matching the filter, without lines
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) ([]Invoice, error)

	// CountForTenant counts invoices matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) (int64, error)

	// NextSequence atomically allocates the next invoice sequence for the tenant and year
	NextSequence(ctx context.Context, tenantID uuid.UUID, year int) (int, error)

	// Create inserts the invoice header
	Create(ctx context.Context, invoice *Invoice) error

	// CreateLines inserts all lines of the invoice in one transaction
	CreateLines(ctx context.Context, invoice *Invoice) error

	// Delete removes an invoice and any lines (compensating action)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// SaveCancelled saves a cancelled invoice with optimistic locking and returns its
	// invoiced fee events to accrued in the same transaction. Returns the number released.
	SaveCancelled(ctx context.Context, invoice *Invoice) (int64, error)

	// SaveGeneration persists the document generation fields only if the stored
	// generation status still equals expected. Returns false when another writer won.
	SaveGeneration(ctx context.Context, invoice *Invoice, expected GenerationStatus) (bool, error)

	// AddPayment inserts a payment and saves the header with optimistic locking
	AddPayment(ctx context.Context, invoice *Invoice, payment *InvoicePayment) error
}
