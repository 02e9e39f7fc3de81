package models

import (
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantAggregateModel holds the columns every tenant-owned fee engine table shares.
// Version backs the compare-and-swap in updateWithVersion.
type TenantAggregateModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Version   int        `gorm:"not null;default:1"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

// FromDomainTenantAggregateRoot copies identity, ownership and version off the aggregate
func (m *TenantAggregateModel) FromDomainTenantAggregateRoot(root shared.TenantAggregateRoot) {
	*m = TenantAggregateModel{
		ID:        root.ID,
		TenantID:  root.TenantID,
		Version:   root.Version,
		CreatedBy: root.CreatedBy,
		CreatedAt: root.CreatedAt,
		UpdatedAt: root.UpdatedAt,
	}
}

// PopulateTenantAggregateRoot is the inverse of FromDomainTenantAggregateRoot.
// Pending domain events are left untouched.
func (m *TenantAggregateModel) PopulateTenantAggregateRoot(root *shared.TenantAggregateRoot) {
	root.ID = m.ID
	root.TenantID = m.TenantID
	root.Version = m.Version
	root.CreatedBy = m.CreatedBy
	root.CreatedAt = m.CreatedAt
	root.UpdatedAt = m.UpdatedAt
}
