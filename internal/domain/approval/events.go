package approval

import (
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	// AggregateTypeApproval is the aggregate type name for approvals
	AggregateTypeApproval = "Approval"

	EventTypeApprovalRequested = "ApprovalRequested"
	EventTypeApprovalResolved  = "ApprovalResolved"
)

// ApprovalRequestedEvent is raised when a new approval awaits a decision
type ApprovalRequestedEvent struct {
	shared.BaseDomainEvent
	EntityType EntityType `json:"entity_type"`
	EntityID   uuid.UUID  `json:"entity_id"`
	AssignedTo uuid.UUID  `json:"assigned_to"`
}

// NewApprovalRequestedEvent creates an ApprovalRequestedEvent
func NewApprovalRequestedEvent(a *Approval) *ApprovalRequestedEvent {
	return &ApprovalRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApprovalRequested, AggregateTypeApproval, a.ID, a.TenantID),
		EntityType:      a.EntityType,
		EntityID:        a.EntityID,
		AssignedTo:      a.AssignedTo,
	}
}

// EventType returns the event type name
func (e *ApprovalRequestedEvent) EventType() string {
	return EventTypeApprovalRequested
}

// ApprovalResolvedEvent is raised when the signer approves or rejects
type ApprovalResolvedEvent struct {
	shared.BaseDomainEvent
	EntityType EntityType `json:"entity_type"`
	EntityID   uuid.UUID  `json:"entity_id"`
	Status     Status     `json:"status"`
}

// NewApprovalResolvedEvent creates an ApprovalResolvedEvent
func NewApprovalResolvedEvent(a *Approval) *ApprovalResolvedEvent {
	return &ApprovalResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApprovalResolved, AggregateTypeApproval, a.ID, a.TenantID),
		EntityType:      a.EntityType,
		EntityID:        a.EntityID,
		Status:          a.Status,
	}
}

// EventType returns the event type name
func (e *ApprovalResolvedEvent) EventType() string {
	return EventTypeApprovalResolved
}
