package notification

import (
	"context"
	"fmt"

	"github.com/erp/feeengine/internal/domain/notification"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Message is the content sent to every recipient of a dispatch
type Message struct {
	Subject    string
	Body       string
	EntityType string
	EntityID   uuid.UUID
}

// Group is a set of recipients reached through one audience
type Group struct {
	Audience   notification.Audience
	Recipients []uuid.UUID
}

// GroupFailure records an audience that could not be notified
type GroupFailure struct {
	Audience string `json:"audience"`
	Error    string `json:"error"`
}

// DispatchResult summarizes a fan-out. Failures never roll back the caller's work.
type DispatchResult struct {
	Sent     int            `json:"sent"`
	Failures []GroupFailure `json:"failures,omitempty"`
}

// AddFailure records a failed audience
func (r *DispatchResult) AddFailure(audience notification.Audience, err error) {
	r.Failures = append(r.Failures, GroupFailure{Audience: string(audience), Error: err.Error()})
}

// OK returns true when every group was delivered
func (r DispatchResult) OK() bool {
	return len(r.Failures) == 0
}

// Dispatcher fans a message out to audience groups over their channels.
// Each group is delivered independently; one group failing does not stop the others.
type Dispatcher struct {
	senders map[notification.Channel]notification.Sender
	logger  *zap.Logger
}

// NewDispatcher creates a Dispatcher over the given channel senders
func NewDispatcher(logger *zap.Logger, senders ...notification.Sender) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	byChannel := make(map[notification.Channel]notification.Sender, len(senders))
	for _, s := range senders {
		byChannel[s.Channel()] = s
	}
	return &Dispatcher{senders: byChannel, logger: logger}
}

// Dispatch sends msg to every group and reports per-group failures
func (d *Dispatcher) Dispatch(ctx context.Context, tenantID uuid.UUID, msg Message, groups ...Group) DispatchResult {
	var result DispatchResult
	for _, g := range groups {
		sent, err := d.dispatchGroup(ctx, tenantID, msg, g)
		if err != nil {
			d.logger.Warn("failed to notify audience",
				zap.String("audience", string(g.Audience)),
				zap.String("entity_type", msg.EntityType),
				zap.String("entity_id", msg.EntityID.String()),
				zap.Error(err),
			)
			result.AddFailure(g.Audience, err)
			continue
		}
		result.Sent += sent
	}
	return result
}

func (d *Dispatcher) dispatchGroup(ctx context.Context, tenantID uuid.UUID, msg Message, g Group) (int, error) {
	recipients := dedupe(g.Recipients)
	if len(recipients) == 0 {
		d.logger.Debug("no recipients for audience", zap.String("audience", string(g.Audience)))
		return 0, nil
	}
	channel := notification.ChannelFor(g.Audience)
	sender, ok := d.senders[channel]
	if !ok {
		return 0, fmt.Errorf("no sender registered for channel %s", channel)
	}

	batch := make([]*notification.Notification, 0, len(recipients))
	for _, recipientID := range recipients {
		n, err := notification.New(tenantID, g.Audience, recipientID, msg.Subject, msg.Body, msg.EntityType, msg.EntityID)
		if err != nil {
			return 0, err
		}
		batch = append(batch, n)
	}
	if err := sender.Send(ctx, batch); err != nil {
		return 0, err
	}
	return len(batch), nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
