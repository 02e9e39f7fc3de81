package models

import (
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLogModel is the persistence model for an audit entry.
// Audit logs are append-only and should not be modified after creation.
type AuditLogModel struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key"`
	TenantID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	Actor      string            `gorm:"type:varchar(200);not null"`
	Action     string            `gorm:"type:varchar(100);not null;index"`
	EntityType string            `gorm:"type:varchar(50);not null"`
	EntityID   string            `gorm:"type:varchar(100);not null"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb"`
	Timestamp  time.Time         `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// AuditLogModelFromDomain creates a persistence model from an audit entry.
func AuditLogModelFromDomain(e shared.AuditEntry) *AuditLogModel {
	metadata := datatypes.JSONMap{}
	for k, v := range e.Metadata {
		metadata[k] = v
	}
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return &AuditLogModel{
		ID:         uuid.New(),
		TenantID:   e.TenantID,
		Actor:      e.Actor,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Metadata:   metadata,
		Timestamp:  ts,
	}
}

// ToDomain converts the persistence model to an audit entry.
func (m *AuditLogModel) ToDomain() shared.AuditEntry {
	return shared.AuditEntry{
		TenantID:   m.TenantID,
		Actor:      m.Actor,
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Metadata:   map[string]any(m.Metadata),
		Timestamp:  m.Timestamp,
	}
}
