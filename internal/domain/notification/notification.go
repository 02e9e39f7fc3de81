package notification

import (
	"context"
	"time"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
)

// Audience is the group of users a notification is addressed to
type Audience string

const (
	AudienceArranger  Audience = "arranger"
	AudienceParty     Audience = "party"
	AudienceExecutive Audience = "executive"
	AudienceSigner    Audience = "signer"
)

// Channel is the delivery channel for a notification
type Channel string

const (
	ChannelArrangerPortal Channel = "arranger_portal"
	ChannelPartyPortal    Channel = "party_portal"
	ChannelStaffInbox     Channel = "staff_inbox"
)

// ChannelFor returns the channel an audience is reached on
func ChannelFor(a Audience) Channel {
	switch a {
	case AudienceArranger:
		return ChannelArrangerPortal
	case AudienceParty:
		return ChannelPartyPortal
	default:
		return ChannelStaffInbox
	}
}

// Notification is one message to one recipient
type Notification struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Audience    Audience
	Channel     Channel
	RecipientID uuid.UUID
	Subject     string
	Body        string
	EntityType  string
	EntityID    uuid.UUID
	CreatedAt   time.Time
	ReadAt      *time.Time
}

// New creates a notification for the recipient on the audience's channel
func New(tenantID uuid.UUID, audience Audience, recipientID uuid.UUID, subject, body, entityType string, entityID uuid.UUID) (*Notification, error) {
	if recipientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Notification recipient cannot be empty")
	}
	if subject == "" {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Notification subject cannot be empty")
	}
	return &Notification{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Audience:    audience,
		Channel:     ChannelFor(audience),
		RecipientID: recipientID,
		Subject:     subject,
		Body:        body,
		EntityType:  entityType,
		EntityID:    entityID,
		CreatedAt:   shared.Now(),
	}, nil
}

// Sender delivers notifications over a single channel
type Sender interface {
	Channel() Channel
	Send(ctx context.Context, notifications []*Notification) error
}

// Repository stores delivered notifications for in-app inboxes
type Repository interface {
	// CreateBatch inserts notifications
	CreateBatch(ctx context.Context, notifications []*Notification) error

	// FindForRecipient lists a user's notifications, newest first
	FindForRecipient(ctx context.Context, tenantID, recipientID uuid.UUID, filter shared.Filter) ([]Notification, error)

	// MarkRead stamps read_at on a recipient's notification
	MarkRead(ctx context.Context, tenantID, recipientID, id uuid.UUID, at time.Time) error
}
