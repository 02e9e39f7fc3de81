package approval

import (
	"fmt"
	"strings"
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntityType identifies what an approval decides on
type EntityType string

const (
	EntityTermsheetClose EntityType = "termsheet_close"
)

// String returns the string representation of EntityType
func (t EntityType) String() string {
	return string(t)
}

// Status is the decision state of an approval
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true once a decision was made
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ErrAlreadyDecided is returned when resolving an approval that is no longer pending
var ErrAlreadyDecided = shared.NewDomainError("APPROVAL_ALREADY_DECIDED", "Approval has already been decided")

// CloseSnapshot is the metadata computed for a termsheet close request
type CloseSnapshot struct {
	TermsheetID            uuid.UUID        `json:"termsheet_id"`
	DealID                 uuid.UUID        `json:"deal_id"`
	TermsVersion           int              `json:"terms_version"`
	CompletionDate         *time.Time       `json:"completion_date,omitempty"`
	FundedCount            int64            `json:"funded_count"`
	FundedTotal            decimal.Decimal  `json:"funded_total"`
	FeePlansByStatus       map[string]int64 `json:"fee_plans_by_status"`
	FeePlansByCounterparty map[string]int64 `json:"fee_plans_by_counterparty"`
	ComputedAt             time.Time        `json:"computed_at"`
}

// Approval is a request for a human decision. At most one non-terminal approval
// exists per entity; terminal decisions are final.
type Approval struct {
	shared.TenantAggregateRoot
	EntityType   EntityType
	EntityID     uuid.UUID
	Status       Status
	AssignedTo   uuid.UUID
	Snapshot     CloseSnapshot
	DecidedBy    *uuid.UUID
	DecidedAt    *time.Time
	DecisionNote string
}

// NewTermsheetCloseApproval creates a pending close approval for a matured termsheet
func NewTermsheetCloseApproval(actor shared.Actor, assignee uuid.UUID, snapshot CloseSnapshot) (*Approval, error) {
	if snapshot.TermsheetID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TERMSHEET", "Termsheet ID cannot be empty")
	}
	if assignee == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ASSIGNEE", "Approval must be assigned to a signer")
	}
	a := &Approval{
		TenantAggregateRoot: shared.NewTenantAggregateRootForActor(actor),
		EntityType:          EntityTermsheetClose,
		EntityID:            snapshot.TermsheetID,
		Status:              StatusPending,
		AssignedTo:          assignee,
		Snapshot:            snapshot,
	}
	a.AddDomainEvent(NewApprovalRequestedEvent(a))
	return a, nil
}

// CanDecide reports whether the actor may resolve the approval
func (a *Approval) CanDecide(actor shared.Actor) bool {
	return actor.UserID == a.AssignedTo || actor.IsStaffAdmin()
}

// Approve records a positive decision
func (a *Approval) Approve(actor shared.Actor, note string) error {
	return a.decide(actor, StatusApproved, note)
}

// Reject records a negative decision
func (a *Approval) Reject(actor shared.Actor, note string) error {
	return a.decide(actor, StatusRejected, note)
}

func (a *Approval) decide(actor shared.Actor, to Status, note string) error {
	if a.Status.IsTerminal() {
		return ErrAlreadyDecided.WithMessage(fmt.Sprintf("Approval is already %s", a.Status))
	}
	if !a.CanDecide(actor) {
		return shared.ErrForbidden.WithMessage("Only the assigned signer or a staff admin can decide this approval")
	}
	now := shared.Now()
	decidedBy := actor.UserID
	a.Status = to
	a.DecidedBy = &decidedBy
	a.DecidedAt = &now
	a.DecisionNote = strings.TrimSpace(note)
	a.UpdatedAt = now
	a.IncrementVersion()
	a.AddDomainEvent(NewApprovalResolvedEvent(a))
	return nil
}
