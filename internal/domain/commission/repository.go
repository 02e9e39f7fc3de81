package commission

import (
	"context"
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter defines filtering options for commission listings
type Filter struct {
	shared.Filter
	PartyKind  *PartyKind
	PartyID    *uuid.UUID
	DealID     *uuid.UUID
	ArrangerID *uuid.UUID
	Status     *Status
}

// Repository defines persistence for party commissions
type Repository interface {
	// FindByIDForTenant finds a commission by ID
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PartyCommission, error)

	// FindAllForTenant lists commissions matching the filter
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]PartyCommission, error)

	// CountForTenant counts commissions matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) (int64, error)

	// Create inserts a commission. A second accrual for the same (agreement, source)
	// returns shared.ErrAlreadyExists.
	Create(ctx context.Context, c *PartyCommission) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, c *PartyCommission) error

	// Reconciliation returns joined rows; pagination applies only when filter.Limit > 0
	Reconciliation(ctx context.Context, tenantID uuid.UUID, filter ReconciliationFilter) ([]ReconciliationRow, error)

	// Summarize totals the whole filtered set, ignoring pagination
	Summarize(ctx context.Context, tenantID uuid.UUID, filter ReconciliationFilter) (*ReconciliationSummary, error)
}

// AgreementRepository defines persistence for commission agreements
type AgreementRepository interface {
	// FindByIDForTenant finds an agreement by ID
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Agreement, error)

	// FindActiveForDeal lists agreements of the deal in force at the given time
	FindActiveForDeal(ctx context.Context, tenantID, dealID uuid.UUID, at time.Time) ([]Agreement, error)

	// FindAllForDeal lists every agreement of the deal
	FindAllForDeal(ctx context.Context, tenantID, dealID uuid.UUID) ([]Agreement, error)

	// Save creates or updates an agreement
	Save(ctx context.Context, a *Agreement) error
}
