package fee

import (
	"context"
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
)

// FeePlanFilter defines filtering options for fee plan queries
type FeePlanFilter struct {
	shared.Filter
	DealID           *uuid.UUID
	TermsheetID      *uuid.UUID
	Status           *PlanStatus
	CounterpartyType *CounterpartyType
}

// FeePlanRepository defines persistence for fee plans and their components
type FeePlanRepository interface {
	// FindByIDForTenant finds a plan with its components
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*FeePlan, error)

	// FindDefaultForDeal finds the active default plan for a deal
	FindDefaultForDeal(ctx context.Context, tenantID, dealID uuid.UUID) (*FeePlan, error)

	// FindAllForTenant lists plans matching the filter
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter FeePlanFilter) ([]FeePlan, error)

	// CountForTenant counts plans matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter FeePlanFilter) (int64, error)

	// Save creates or updates a plan and replaces its components
	Save(ctx context.Context, plan *FeePlan) error

	// SaveWithLock saves with optimistic locking (version check). It never clears
	// locked_at, and component edits on a plan locked in storage return ErrPlanLocked.
	SaveWithLock(ctx context.Context, plan *FeePlan) error

	// SetDefault clears the deal's current default and flags planID in one transaction, bumping both versions
	SetDefault(ctx context.Context, tenantID, dealID, planID uuid.UUID) error

	// SaveAsDefault clears the deal's current default and saves plan, already flagged
	// as default, in one transaction
	SaveAsDefault(ctx context.Context, plan *FeePlan) error
}

// FeeEventFilter defines filtering options for fee event queries
type FeeEventFilter struct {
	shared.Filter
	AllocationID *uuid.UUID
	InvestorID   *uuid.UUID
	DealID       *uuid.UUID
	Status       *EventStatus
	InvoiceID    *uuid.UUID
}

// FeeEventRepository defines persistence for fee events
type FeeEventRepository interface {
	// FindByIDForTenant finds a fee event by ID
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*FeeEvent, error)

	// FindByIDs loads the given fee events; missing IDs are simply absent from the result
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]FeeEvent, error)

	// FindAllForTenant lists fee events matching the filter
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter FeeEventFilter) ([]FeeEvent, error)

	// CountForTenant counts fee events matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter FeeEventFilter) (int64, error)

	// ExistsForComponent reports whether a fee event exists for the (allocation, component) pair
	ExistsForComponent(ctx context.Context, tenantID, allocationID, componentID uuid.UUID) (bool, error)

	// CreateAccrued inserts the events and locks their plan in one transaction.
	// Events whose (allocation, component) pair already exists are left out of the
	// returned slice. When a referenced component no longer belongs to the plan
	// nothing is written and shared.ErrConcurrencyConflict is returned.
	CreateAccrued(ctx context.Context, plan *FeePlan, events []*FeeEvent, at time.Time) ([]*FeeEvent, error)

	// MarkInvoiced moves accrued events to invoiced, linked to the invoice.
	// Only rows still accrued are updated. Either every id is updated or none: when
	// some event is no longer accrued the update is rolled back and
	// shared.ErrConcurrencyConflict is returned with the count that matched.
	MarkInvoiced(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, invoiceID uuid.UUID, at time.Time) (int64, error)
}
