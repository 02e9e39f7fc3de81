package subscription

import (
	"context"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter defines filtering options for subscription queries
type Filter struct {
	shared.Filter
	InvestorID  *uuid.UUID
	DealID      *uuid.UUID
	TermsheetID *uuid.UUID
	Status      *Status
}

// Repository defines persistence for subscriptions
type Repository interface {
	// FindByIDForTenant finds a subscription by ID
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Subscription, error)

	// FindByFingerprint finds the subscription holding a fingerprint
	FindByFingerprint(ctx context.Context, tenantID uuid.UUID, fingerprint string) (*Subscription, error)

	// FindAllForTenant lists subscriptions matching the filter
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]Subscription, error)

	// CountForTenant counts subscriptions matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) (int64, error)

	// Create inserts a new subscription. A fingerprint collision returns shared.ErrAlreadyExists.
	Create(ctx context.Context, s *Subscription) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, s *Subscription) error
}
