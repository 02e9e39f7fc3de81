package models

import (
	"encoding/json"
	"time"

	"github.com/erp/feeengine/internal/domain/approval"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ApprovalModel is the persistence model for the Approval aggregate root.
// At most one pending approval exists per entity (partial unique index).
type ApprovalModel struct {
	TenantAggregateModel
	EntityType   approval.EntityType `gorm:"type:varchar(50);not null;uniqueIndex:idx_approvals_pending_entity,priority:1,where:status = 'pending'"`
	EntityID     uuid.UUID           `gorm:"type:uuid;not null;index;uniqueIndex:idx_approvals_pending_entity,priority:2"`
	Status       approval.Status     `gorm:"type:varchar(20);not null;default:'pending';index"`
	AssignedTo   uuid.UUID           `gorm:"type:uuid;not null;index"`
	Snapshot     datatypes.JSON      `gorm:"type:jsonb"`
	DecidedBy    *uuid.UUID          `gorm:"type:uuid"`
	DecidedAt    *time.Time
	DecisionNote string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ApprovalModel) TableName() string {
	return "approvals"
}

// ToDomain converts the persistence model to a domain Approval.
func (m *ApprovalModel) ToDomain() (*approval.Approval, error) {
	a := &approval.Approval{
		EntityType:   m.EntityType,
		EntityID:     m.EntityID,
		Status:       m.Status,
		AssignedTo:   m.AssignedTo,
		DecidedBy:    m.DecidedBy,
		DecidedAt:    m.DecidedAt,
		DecisionNote: m.DecisionNote,
	}
	m.PopulateTenantAggregateRoot(&a.TenantAggregateRoot)
	if len(m.Snapshot) > 0 {
		if err := json.Unmarshal(m.Snapshot, &a.Snapshot); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// ApprovalModelFromDomain creates a persistence model from a domain Approval.
func ApprovalModelFromDomain(a *approval.Approval) (*ApprovalModel, error) {
	snapshot, err := json.Marshal(a.Snapshot)
	if err != nil {
		return nil, err
	}
	m := &ApprovalModel{
		EntityType:   a.EntityType,
		EntityID:     a.EntityID,
		Status:       a.Status,
		AssignedTo:   a.AssignedTo,
		Snapshot:     datatypes.JSON(snapshot),
		DecidedBy:    a.DecidedBy,
		DecidedAt:    a.DecidedAt,
		DecisionNote: a.DecisionNote,
	}
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	return m, nil
}
