package commission

import (
	"context"
	"fmt"

	appnotification "github.com/erp/feeengine/internal/application/notification"
	"github.com/erp/feeengine/internal/domain/commission"
	"github.com/erp/feeengine/internal/domain/directory"
	"github.com/erp/feeengine/internal/domain/notification"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
)

// Dispatcher sends a message to audience groups
type Dispatcher interface {
	Dispatch(ctx context.Context, tenantID uuid.UUID, msg appnotification.Message, groups ...appnotification.Group) appnotification.DispatchResult
}

// DispatchResult is the outcome of a notification fan-out
type DispatchResult = appnotification.DispatchResult

// PaymentNotifier tells the party, the arranger and the executives that a commission was paid
type PaymentNotifier struct {
	directory  directory.Repository
	dispatcher Dispatcher
}

// NewPaymentNotifier creates a new PaymentNotifier
func NewPaymentNotifier(dir directory.Repository, dispatcher Dispatcher) *PaymentNotifier {
	return &PaymentNotifier{directory: dir, dispatcher: dispatcher}
}

// NotifyPaid resolves the party, arranger and executive audiences and dispatches to each.
// A user reachable through several audiences is notified once, through the first of
// them in that order. A group whose recipients cannot be resolved is reported as
// failed; the others still go out.
func (n *PaymentNotifier) NotifyPaid(ctx context.Context, c *commission.PartyCommission) DispatchResult {
	msg := appnotification.Message{
		Subject:    fmt.Sprintf("Commission paid: %s %s", c.AccrualAmount.StringFixed(2), c.Currency),
		Body:       paidBody(c),
		EntityType: "party_commission",
		EntityID:   c.ID,
	}

	var failed DispatchResult
	groups := make([]appnotification.Group, 0, 3)
	seen := make(map[uuid.UUID]struct{})
	add := func(audience notification.Audience, ids []uuid.UUID, err error) {
		if err != nil {
			failed.AddFailure(audience, err)
			return
		}
		groups = append(groups, appnotification.Group{Audience: audience, Recipients: unseen(seen, ids)})
	}

	ids, err := n.organizationMembers(ctx, c.TenantID, c.PartyID)
	add(notification.AudienceParty, ids, err)

	if c.ArrangerID != nil {
		ids, err := n.organizationMembers(ctx, c.TenantID, *c.ArrangerID)
		add(notification.AudienceArranger, ids, err)
	}

	ids, err = n.executives(ctx, c.TenantID)
	add(notification.AudienceExecutive, ids, err)

	result := n.dispatcher.Dispatch(ctx, c.TenantID, msg, groups...)
	result.Failures = append(failed.Failures, result.Failures...)
	return result
}

// unseen returns the ids not yet in seen, in order, and records them
func unseen(seen map[uuid.UUID]struct{}, ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (n *PaymentNotifier) organizationMembers(ctx context.Context, tenantID, orgID uuid.UUID) ([]uuid.UUID, error) {
	profiles, err := n.directory.FindByOrganization(ctx, tenantID, orgID)
	if err != nil {
		return nil, err
	}
	return userIDs(profiles), nil
}

func (n *PaymentNotifier) executives(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, role := range []string{shared.RoleCEO, shared.RoleStaffAdmin} {
		profiles, err := n.directory.FindByRole(ctx, tenantID, role)
		if err != nil {
			return nil, err
		}
		ids = append(ids, userIDs(profiles)...)
	}
	return ids, nil
}

func userIDs(profiles []directory.Profile) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	return ids
}

func paidBody(c *commission.PartyCommission) string {
	body := fmt.Sprintf("The %s commission on deal %s (%s basis) has been paid.",
		c.PartyKind, c.DealID, c.BasisType)
	if c.PaymentReference != "" {
		body += " Payment reference: " + c.PaymentReference + "."
	}
	return body
}
