package persistence

import (
	"context"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuditSink appends audit entries to the audit_logs table
type GormAuditSink struct {
	db *gorm.DB
}

// NewGormAuditSink creates a new GormAuditSink
func NewGormAuditSink(db *gorm.DB) *GormAuditSink {
	return &GormAuditSink{db: db}
}

// Record appends one entry
func (s *GormAuditSink) Record(ctx context.Context, entry shared.AuditEntry) error {
	return s.db.WithContext(ctx).Create(models.AuditLogModelFromDomain(entry)).Error
}

// FindForEntity lists the entries recorded against an entity, oldest first
func (s *GormAuditSink) FindForEntity(ctx context.Context, tenantID uuid.UUID, entityType, entityID string) ([]shared.AuditEntry, error) {
	var rows []models.AuditLogModel
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND entity_type = ? AND entity_id = ?", tenantID, entityType, entityID).
		Order("timestamp ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]shared.AuditEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

var _ shared.AuditSink = (*GormAuditSink)(nil)
