package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is a consistency boundary saved with a version check
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot tracks the version a repository compares on update and
// the events raised since the aggregate was loaded
type BaseAggregateRoot struct {
	BaseEntity
	Version int
	pending []DomainEvent
}

func (a *BaseAggregateRoot) GetVersion() int { return a.Version }

func (a *BaseAggregateRoot) IncrementVersion() { a.Version++ }

func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}

func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent { return a.pending }

func (a *BaseAggregateRoot) ClearDomainEvents() { a.pending = nil }

// PullDomainEvents returns the pending events and forgets them, so a retried
// save never publishes twice
func (a *BaseAggregateRoot) PullDomainEvents() []DomainEvent {
	events := a.pending
	a.pending = nil
	return events
}

// NewBaseAggregateRoot starts a new aggregate at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// TenantAggregateRoot is an aggregate owned by one tenant and optionally by the user who created it
type TenantAggregateRoot struct {
	BaseAggregateRoot
	TenantID  uuid.UUID
	CreatedBy *uuid.UUID
}

func NewTenantAggregateRoot(tenantID uuid.UUID) TenantAggregateRoot {
	return TenantAggregateRoot{BaseAggregateRoot: NewBaseAggregateRoot(), TenantID: tenantID}
}

// NewTenantAggregateRootForActor stamps CreatedBy unless the actor is the system
func NewTenantAggregateRootForActor(actor Actor) TenantAggregateRoot {
	root := NewTenantAggregateRoot(actor.TenantID)
	if actor.UserID != uuid.Nil {
		userID := actor.UserID
		root.CreatedBy = &userID
	}
	return root
}
