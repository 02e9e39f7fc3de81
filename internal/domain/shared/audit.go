package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditEntry is one append-only audit record
type AuditEntry struct {
	TenantID   uuid.UUID
	Actor      string
	Action     string
	EntityType string
	EntityID   string
	Metadata   map[string]any
	Timestamp  time.Time
}

// NewAuditEntry builds an entry stamped with the current time
func NewAuditEntry(actor Actor, action, entityType, entityID string, metadata map[string]any) AuditEntry {
	return AuditEntry{
		TenantID:   actor.TenantID,
		Actor:      actor.Identity(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
		Timestamp:  Now(),
	}
}

// AuditSink is the write-only audit log consumed by the engine
type AuditSink interface {
	Record(ctx context.Context, entry AuditEntry) error
}
