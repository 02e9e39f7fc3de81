package persistence

import (
	"context"
	"time"

	"github.com/erp/feeengine/internal/domain/notification"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormNotificationRepository implements notification.Repository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// CreateBatch inserts notifications
func (r *GormNotificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	rows := make([]models.NotificationModel, len(notifications))
	for i, n := range notifications {
		rows[i] = models.NotificationModelFromDomain(n)
	}
	return r.db.WithContext(ctx).CreateInBatches(&rows, 100).Error
}

// FindForRecipient lists a user's notifications, newest first
func (r *GormNotificationRepository) FindForRecipient(ctx context.Context, tenantID, recipientID uuid.UUID, filter shared.Filter) ([]notification.Notification, error) {
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND recipient_id = ?", tenantID, recipientID).
		Order("created_at DESC")
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var rows []models.NotificationModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]notification.Notification, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, nil
}

// MarkRead stamps read_at on a recipient's notification
func (r *GormNotificationRepository) MarkRead(ctx context.Context, tenantID, recipientID, id uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("tenant_id = ? AND recipient_id = ? AND id = ?", tenantID, recipientID, id).
		Update("read_at", gorm.Expr("COALESCE(read_at, ?)", at))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// InboxSender delivers notifications of one channel by storing them for the in-app inbox
type InboxSender struct {
	channel notification.Channel
	repo    notification.Repository
}

// NewInboxSender creates a sender for an inbox channel
func NewInboxSender(channel notification.Channel, repo notification.Repository) *InboxSender {
	return &InboxSender{channel: channel, repo: repo}
}

// Channel returns the channel this sender serves
func (s *InboxSender) Channel() notification.Channel {
	return s.channel
}

// Send stores the notifications
func (s *InboxSender) Send(ctx context.Context, notifications []*notification.Notification) error {
	return s.repo.CreateBatch(ctx, notifications)
}

// NewInboxSenders builds one inbox sender per portal channel
func NewInboxSenders(repo notification.Repository) []notification.Sender {
	return []notification.Sender{
		NewInboxSender(notification.ChannelArrangerPortal, repo),
		NewInboxSender(notification.ChannelPartyPortal, repo),
		NewInboxSender(notification.ChannelStaffInbox, repo),
	}
}

var (
	_ notification.Repository = (*GormNotificationRepository)(nil)
	_ notification.Sender     = (*InboxSender)(nil)
)
