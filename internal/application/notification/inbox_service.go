package notification

import (
	"context"
	"time"

	"github.com/erp/feeengine/internal/domain/notification"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
)

// NotificationResponse represents an inbox entry in API responses
type NotificationResponse struct {
	ID         uuid.UUID  `json:"id"`
	Audience   string     `json:"audience"`
	Channel    string     `json:"channel"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	EntityType string     `json:"entity_type"`
	EntityID   uuid.UUID  `json:"entity_id"`
	CreatedAt  time.Time  `json:"created_at"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
}

// InboxService lists and acknowledges the caller's notifications
type InboxService struct {
	repo notification.Repository
	now  func() time.Time
}

// NewInboxService creates a new InboxService
func NewInboxService(repo notification.Repository) *InboxService {
	return &InboxService{repo: repo, now: shared.Now}
}

// List returns the actor's notifications, newest first
func (s *InboxService) List(ctx context.Context, actor shared.Actor, page, pageSize int) ([]NotificationResponse, error) {
	items, err := s.repo.FindForRecipient(ctx, actor.TenantID, actor.UserID, shared.PageFilter(page, pageSize))
	if err != nil {
		return nil, err
	}
	out := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, NotificationResponse{
			ID:         n.ID,
			Audience:   string(n.Audience),
			Channel:    string(n.Channel),
			Subject:    n.Subject,
			Body:       n.Body,
			EntityType: n.EntityType,
			EntityID:   n.EntityID,
			CreatedAt:  n.CreatedAt,
			ReadAt:     n.ReadAt,
		})
	}
	return out, nil
}

// MarkRead acknowledges one of the actor's notifications
func (s *InboxService) MarkRead(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, actor.TenantID, actor.UserID, id, s.now())
}
