package commission

import (
	"context"
	"strings"
	"time"

	"github.com/erp/feeengine/internal/domain/commission"
	"github.com/erp/feeengine/internal/domain/deal"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Audit actions recorded by the commission service
const (
	AuditActionCommissionRecorded = "commission.recorded"
	AuditActionCommissionStatus   = "commission.status_changed"
	AuditActionCommissionPaid     = "commission.paid"
)

// Notifier announces confirmed payments
type Notifier interface {
	NotifyPaid(ctx context.Context, c *commission.PartyCommission) DispatchResult
}

// ServiceConfig holds the dependencies of Service
type ServiceConfig struct {
	Repo           commission.Repository
	DealRepo       deal.Repository
	AssignmentRepo deal.AssignmentRepository
	Notifier       Notifier
	EventPublisher shared.EventPublisher
	AuditSink      shared.AuditSink
	Logger         *zap.Logger
	Now            func() time.Time
}

// Service manages the party commission ledger
type Service struct {
	repo           commission.Repository
	dealRepo       deal.Repository
	assignmentRepo deal.AssignmentRepository
	notifier       Notifier
	eventPublisher shared.EventPublisher
	auditSink      shared.AuditSink
	logger         *zap.Logger
	now            func() time.Time
}

// NewService creates a new commission Service
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = shared.Now
	}
	return &Service{
		repo:           cfg.Repo,
		dealRepo:       cfg.DealRepo,
		assignmentRepo: cfg.AssignmentRepo,
		notifier:       cfg.Notifier,
		eventPublisher: cfg.EventPublisher,
		auditSink:      cfg.AuditSink,
		logger:         logger,
		now:            now,
	}
}

// Record creates an accrued commission. Staff admins and the deal's arranger may record.
func (s *Service) Record(ctx context.Context, actor shared.Actor, req RecordCommissionRequest) (*CommissionResponse, error) {
	d, err := s.dealRepo.FindByIDForTenant(ctx, actor.TenantID, req.DealID)
	if err != nil {
		return nil, err
	}
	if !commission.CanRecord(actor, d) {
		return nil, shared.ErrForbidden.WithMessage("Only staff admins or the deal's arranger may record commissions")
	}

	currency := d.Currency
	if strings.TrimSpace(req.Currency) != "" {
		currency, err = valueobject.ParseCurrency(req.Currency)
		if err != nil {
			return nil, shared.ErrInvalidInput.WithMessage(err.Error())
		}
	}

	c, err := commission.NewPartyCommission(actor, commission.NewCommissionInput{
		PartyKind:      commission.PartyKind(req.PartyKind),
		PartyID:        req.PartyID,
		ArrangerID:     d.ArrangerID,
		DealID:         d.ID,
		InvestorID:     req.InvestorID,
		SubscriptionID: req.SubscriptionID,
		BasisType:      commission.BasisType(req.BasisType),
		RateBps:        req.RateBps,
		BaseAmount:     req.BaseAmount,
		FlatAmount:     req.FlatAmount,
		Currency:       currency,
		AccruedAt:      s.now(),
		Notes:          req.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.publish(ctx, c)
	s.audit(ctx, actor, AuditActionCommissionRecorded, c, map[string]any{
		"party_kind":     c.PartyKind.String(),
		"party_id":       c.PartyID.String(),
		"basis_type":     c.BasisType.String(),
		"accrual_amount": c.AccrualAmount.String(),
	})
	s.logger.Info("commission recorded",
		zap.String("commission_id", c.ID.String()),
		zap.String("deal_id", c.DealID.String()),
		zap.String("accrual_amount", c.AccrualAmount.String()),
	)

	resp := ToCommissionResponse(c)
	return &resp, nil
}

// GetByID returns one commission
func (s *Service) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*CommissionResponse, error) {
	c, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCommissionResponse(c)
	return &resp, nil
}

// List returns a page of commissions. Arranger users only see their own deals.
func (s *Service) List(ctx context.Context, actor shared.Actor, filter CommissionListFilter) ([]CommissionResponse, int64, error) {
	domainFilter := commission.Filter{
		Filter:  shared.PageFilter(filter.Page, filter.PageSize),
		PartyID: filter.PartyID,
		DealID:  filter.DealID,
	}
	if filter.PartyKind != "" {
		kind := commission.PartyKind(filter.PartyKind)
		domainFilter.PartyKind = &kind
	}
	if filter.Status != "" {
		status := commission.Status(filter.Status)
		domainFilter.Status = &status
	}
	if !actor.IsStaffAdmin() && !actor.IsSystem() && actor.HasRole(shared.RoleArranger) {
		domainFilter.ArrangerID = actor.OrganizationID
	}

	items, err := s.repo.FindAllForTenant(ctx, actor.TenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, actor.TenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]CommissionResponse, 0, len(items))
	for i := range items {
		out = append(out, ToCommissionResponse(&items[i]))
	}
	return out, total, nil
}

// RequestInvoice moves an accrued commission to invoice_requested
func (s *Service) RequestInvoice(ctx context.Context, actor shared.Actor, id uuid.UUID) (*CommissionResponse, error) {
	return s.transition(ctx, actor, id, func(c *commission.PartyCommission) error {
		return c.RequestInvoice()
	})
}

// MarkInvoiced records the party's invoice against the commission
func (s *Service) MarkInvoiced(ctx context.Context, actor shared.Actor, id uuid.UUID, req MarkInvoicedRequest) (*CommissionResponse, error) {
	return s.transition(ctx, actor, id, func(c *commission.PartyCommission) error {
		return c.MarkInvoiced(req.Reference)
	})
}

// Cancel cancels an unpaid commission
func (s *Service) Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID, req ReasonRequest) (*CommissionResponse, error) {
	return s.transition(ctx, actor, id, func(c *commission.PartyCommission) error {
		return c.Cancel(req.Reason)
	})
}

// Reject rejects an unpaid introducer commission
func (s *Service) Reject(ctx context.Context, actor shared.Actor, id uuid.UUID, req ReasonRequest) (*CommissionResponse, error) {
	return s.transition(ctx, actor, id, func(c *commission.PartyCommission) error {
		return c.Reject(req.Reason)
	})
}

// ConfirmPayment marks an invoiced commission paid. Only staff admins or the lawyer
// assigned to the deal may confirm. Once saved, the payment stands: notification
// failures are reported in the result and never roll it back.
func (s *Service) ConfirmPayment(ctx context.Context, actor shared.Actor, id uuid.UUID, req ConfirmPaymentRequest) (*PaymentConfirmation, error) {
	c, err := s.repo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	assigned := false
	if !actor.IsStaffAdmin() && actor.HasRole(shared.RoleLawyer) {
		assigned, err = s.assignmentRepo.IsAssigned(ctx, actor.TenantID, c.DealID, actor.UserID, deal.AssignmentLawyer)
		if err != nil {
			return nil, err
		}
	}
	if !commission.CanConfirmPayment(actor, assigned) {
		return nil, shared.ErrForbidden.WithMessage("Only staff admins or the deal's assigned lawyer may confirm payment")
	}

	paidAt := s.now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}
	if err := c.MarkPaid(actor.UserID, req.Reference, paidAt); err != nil {
		return nil, err
	}
	if err := s.repo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	s.publish(ctx, c)
	s.audit(ctx, actor, AuditActionCommissionPaid, c, map[string]any{
		"accrual_amount":    c.AccrualAmount.String(),
		"payment_reference": c.PaymentReference,
	})

	result := &PaymentConfirmation{Commission: ToCommissionResponse(c)}
	if s.notifier != nil {
		result.Notifications = s.notifier.NotifyPaid(ctx, c)
		if !result.Notifications.OK() {
			s.logger.Warn("commission paid with notification failures",
				zap.String("commission_id", c.ID.String()),
				zap.Int("failed_groups", len(result.Notifications.Failures)),
			)
		}
	}
	return result, nil
}

func (s *Service) transition(ctx context.Context, actor shared.Actor, id uuid.UUID, apply func(*commission.PartyCommission) error) (*CommissionResponse, error) {
	c, err := s.repo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaffAdmin() && !actor.IsSystem() {
		d, err := s.dealRepo.FindByIDForTenant(ctx, actor.TenantID, c.DealID)
		if err != nil {
			return nil, err
		}
		if !commission.CanRecord(actor, d) {
			return nil, shared.ErrForbidden.WithMessage("Only staff admins or the deal's arranger may change commissions")
		}
	}

	from := c.Status
	if err := apply(c); err != nil {
		return nil, err
	}
	if err := s.repo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	s.publish(ctx, c)
	s.audit(ctx, actor, AuditActionCommissionStatus, c, map[string]any{
		"from":   from.String(),
		"to":     c.Status.String(),
		"reason": c.StatusReason,
	})
	resp := ToCommissionResponse(c)
	return &resp, nil
}

func (s *Service) publish(ctx context.Context, c *commission.PartyCommission) {
	events := c.PullDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish commission events",
			zap.String("commission_id", c.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) audit(ctx context.Context, actor shared.Actor, action string, c *commission.PartyCommission, metadata map[string]any) {
	if s.auditSink == nil {
		return
	}
	entry := shared.NewAuditEntry(actor, action, "party_commission", c.ID.String(), metadata)
	if err := s.auditSink.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit entry",
			zap.String("action", action),
			zap.String("commission_id", c.ID.String()),
			zap.Error(err),
		)
	}
}
