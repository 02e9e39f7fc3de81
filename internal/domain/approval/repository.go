package approval

import (
	"context"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filter defines filtering options for approval queries
type Filter struct {
	shared.Filter
	EntityType *EntityType
	EntityID   *uuid.UUID
	Status     *Status
	AssignedTo *uuid.UUID
}

// Repository defines persistence for approvals
type Repository interface {
	// FindByIDForTenant finds an approval by ID
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Approval, error)

	// FindForEntity returns the most recent approval for the entity in any of the statuses,
	// or shared.ErrNotFound
	FindForEntity(ctx context.Context, tenantID uuid.UUID, entityType EntityType, entityID uuid.UUID, statuses []Status) (*Approval, error)

	// FindAllForTenant lists approvals matching the filter
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]Approval, error)

	// CountForTenant counts approvals matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) (int64, error)

	// Create inserts an approval. A second pending approval for the same entity
	// returns shared.ErrAlreadyExists.
	Create(ctx context.Context, a *Approval) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, a *Approval) error
}

// SnapshotReader computes the read-only figures attached to a close approval
type SnapshotReader interface {
	// FundedSubscriptions returns the count and summed funded amount of funded subscriptions under the termsheet
	FundedSubscriptions(ctx context.Context, tenantID, termsheetID uuid.UUID) (int64, decimal.Decimal, error)

	// FeePlanCounts groups the termsheet's fee plans by status and by counterparty type
	FeePlanCounts(ctx context.Context, tenantID, termsheetID uuid.UUID) (byStatus, byCounterparty map[string]int64, err error)
}
