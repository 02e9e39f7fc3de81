package persistence

import (
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// updateWithVersion writes columns of an aggregate whose in-memory version was bumped once
// by the domain command being saved. The row must still carry the previous version.
func updateWithVersion(tx *gorm.DB, model any, tenantID, id uuid.UUID, version int, columns map[string]any) error {
	columns["version"] = version
	if _, ok := columns["updated_at"]; !ok {
		columns["updated_at"] = time.Now()
	}
	result := tx.Model(model).
		Where("tenant_id = ? AND id = ? AND version = ?", tenantID, id, version-1).
		Updates(columns)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.Model(model).Where("tenant_id = ? AND id = ?", tenantID, id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return shared.ErrConcurrencyConflict
}
