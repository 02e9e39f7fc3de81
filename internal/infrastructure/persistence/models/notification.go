package models

import (
	"time"

	"github.com/erp/feeengine/internal/domain/notification"
	"github.com/google/uuid"
)

// NotificationModel is the persistence model for an in-app notification.
type NotificationModel struct {
	ID          uuid.UUID             `gorm:"type:uuid;primary_key"`
	TenantID    uuid.UUID             `gorm:"type:uuid;not null;index:idx_notifications_recipient,priority:1"`
	Audience    notification.Audience `gorm:"type:varchar(30);not null"`
	Channel     notification.Channel  `gorm:"type:varchar(30);not null"`
	RecipientID uuid.UUID             `gorm:"type:uuid;not null;index:idx_notifications_recipient,priority:2"`
	Subject     string                `gorm:"type:varchar(300);not null"`
	Body        string                `gorm:"type:text"`
	EntityType  string                `gorm:"type:varchar(50)"`
	EntityID    uuid.UUID             `gorm:"type:uuid"`
	CreatedAt   time.Time             `gorm:"not null"`
	ReadAt      *time.Time
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification.
func (m *NotificationModel) ToDomain() notification.Notification {
	return notification.Notification{
		ID:          m.ID,
		TenantID:    m.TenantID,
		Audience:    m.Audience,
		Channel:     m.Channel,
		RecipientID: m.RecipientID,
		Subject:     m.Subject,
		Body:        m.Body,
		EntityType:  m.EntityType,
		EntityID:    m.EntityID,
		CreatedAt:   m.CreatedAt,
		ReadAt:      m.ReadAt,
	}
}

// NotificationModelFromDomain creates a persistence model from a domain Notification.
func NotificationModelFromDomain(n *notification.Notification) NotificationModel {
	return NotificationModel{
		ID:          n.ID,
		TenantID:    n.TenantID,
		Audience:    n.Audience,
		Channel:     n.Channel,
		RecipientID: n.RecipientID,
		Subject:     n.Subject,
		Body:        n.Body,
		EntityType:  n.EntityType,
		EntityID:    n.EntityID,
		CreatedAt:   n.CreatedAt,
		ReadAt:      n.ReadAt,
	}
}
