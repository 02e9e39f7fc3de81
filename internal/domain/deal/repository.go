package deal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence for deals
type Repository interface {
	// FindByIDForTenant finds a deal by ID
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Deal, error)

	// FindByIDs loads several deals at once
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Deal, error)

	// Save creates or updates a deal
	Save(ctx context.Context, d *Deal) error
}

// TermsheetRepository defines persistence for termsheets
type TermsheetRepository interface {
	// FindByIDForTenant finds a termsheet by ID
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Termsheet, error)

	// FindMatured lists published termsheets with completion_date <= now and closed_processed_at IS NULL
	FindMatured(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]Termsheet, error)

	// Save creates or updates a termsheet
	Save(ctx context.Context, t *Termsheet) error
}

// AssignmentRepository defines persistence for deal assignments
type AssignmentRepository interface {
	// IsAssigned reports whether the user holds the role on the deal
	IsAssigned(ctx context.Context, tenantID, dealID, userID uuid.UUID, role AssignmentRole) (bool, error)

	// Assign records an assignment; repeating it is a no-op
	Assign(ctx context.Context, a Assignment) error
}
