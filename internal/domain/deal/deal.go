package deal

import (
	"strings"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Status represents the lifecycle of a deal
type Status string

const (
	StatusDraft             Status = "draft"
	StatusOpen              Status = "open"
	StatusAllocationPending Status = "allocation_pending"
	StatusClosed            Status = "closed"
	StatusCancelled         Status = "cancelled"
)

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusOpen, StatusAllocationPending, StatusClosed, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsCloseEligible reports whether termsheets under a deal in this status may be
// proposed for closing
func (s Status) IsCloseEligible() bool {
	switch s {
	case StatusOpen, StatusAllocationPending, StatusClosed:
		return true
	}
	return false
}

// Deal is the investment opportunity that fee plans, subscriptions and commissions hang off
type Deal struct {
	shared.TenantAggregateRoot
	Name       string
	Status     Status
	ArrangerID *uuid.UUID
	Currency   valueobject.Currency
}

// NewDeal creates a deal in draft status
func NewDeal(actor shared.Actor, name string, arrangerID *uuid.UUID, currency valueobject.Currency) (*Deal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Deal name cannot be empty")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &Deal{
		TenantAggregateRoot: shared.NewTenantAggregateRootForActor(actor),
		Name:                name,
		Status:              StatusDraft,
		ArrangerID:          arrangerID,
		Currency:            currency,
	}, nil
}

// SetStatus changes the deal status
func (d *Deal) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown deal status")
	}
	d.Status = status
	d.Touch()
	d.IncrementVersion()
	return nil
}

// IsArrangedBy reports whether the organization arranges this deal
func (d *Deal) IsArrangedBy(orgID uuid.UUID) bool {
	return d.ArrangerID != nil && *d.ArrangerID == orgID
}
