package commission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/feeengine/internal/domain/commission"
	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/subscription"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AccrualHandler accrues commissions under active agreements when subscriptions
// commit (invested_amount basis) and when fee events accrue (fee-kind bases).
// Redelivered events are harmless: the ledger is unique per (agreement, source).
type AccrualHandler struct {
	agreementRepo  commission.AgreementRepository
	repo           commission.Repository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewAccrualHandler creates a new AccrualHandler
func NewAccrualHandler(
	agreementRepo commission.AgreementRepository,
	repo commission.Repository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *AccrualHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccrualHandler{
		agreementRepo:  agreementRepo,
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *AccrualHandler) EventTypes() []string {
	return []string{
		subscription.EventTypeSubscriptionCommitted,
		fee.EventTypeFeeEventAccrued,
	}
}

// accrualSource is the part of a triggering event an agreement accrues against
type accrualSource struct {
	tenantID       uuid.UUID
	dealID         uuid.UUID
	sourceID       uuid.UUID
	investorID     uuid.UUID
	subscriptionID *uuid.UUID
	base           decimal.Decimal
	at             time.Time
	matches        func(commission.BasisType) bool
}

// Handle processes SubscriptionCommitted and FeeEventAccrued events
func (h *AccrualHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var src accrualSource
	switch e := event.(type) {
	case *subscription.SubscriptionCommittedEvent:
		subID := e.SubscriptionID
		src = accrualSource{
			dealID:         e.DealID,
			sourceID:       e.SubscriptionID,
			investorID:     e.InvestorID,
			subscriptionID: &subID,
			base:           e.CommitmentAmount,
			matches: func(b commission.BasisType) bool {
				return b == commission.BasisInvestedAmount
			},
		}
	case *fee.FeeEventAccruedEvent:
		kind := e.Kind
		allocationID := e.AllocationID
		src = accrualSource{
			dealID:         e.DealID,
			sourceID:       e.AggregateID(),
			investorID:     e.InvestorID,
			subscriptionID: &allocationID,
			base:           e.Amount,
			matches: func(b commission.BasisType) bool {
				return b.MatchesFeeKind(kind)
			},
		}
	default:
		h.logger.Error("unexpected event type",
			zap.Strings("expected", h.EventTypes()),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
	src.tenantID = event.TenantID()
	src.at = event.OccurredAt()

	return h.accrue(ctx, src)
}

func (h *AccrualHandler) accrue(ctx context.Context, src accrualSource) error {
	agreements, err := h.agreementRepo.FindActiveForDeal(ctx, src.tenantID, src.dealID, src.at)
	if err != nil {
		return fmt.Errorf("failed to load commission agreements: %w", err)
	}

	actor := shared.SystemActor(src.tenantID)
	investorID := src.investorID
	var created int
	for i := range agreements {
		a := &agreements[i]
		if !a.AppliesOn(src.at) || !src.matches(a.BasisType) {
			continue
		}
		c, err := commission.NewPartyCommission(actor, a.Accrue(src.sourceID, &investorID, src.subscriptionID, src.base, src.at))
		if err != nil {
			h.logger.Error("invalid commission accrual",
				zap.String("agreement_id", a.ID.String()),
				zap.String("source_id", src.sourceID.String()),
				zap.Error(err),
			)
			continue
		}
		if err := h.repo.Create(ctx, c); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				h.logger.Debug("commission already accrued",
					zap.String("agreement_id", a.ID.String()),
					zap.String("source_id", src.sourceID.String()),
				)
				continue
			}
			return fmt.Errorf("failed to accrue commission for agreement %s: %w", a.ID, err)
		}
		created++

		events := c.PullDomainEvents()
		if h.eventPublisher != nil {
			if err := h.eventPublisher.Publish(ctx, events...); err != nil {
				h.logger.Warn("failed to publish commission events",
					zap.String("commission_id", c.ID.String()),
					zap.Error(err),
				)
			}
		}
	}

	if created > 0 {
		h.logger.Info("commissions accrued",
			zap.String("deal_id", src.dealID.String()),
			zap.String("source_id", src.sourceID.String()),
			zap.Int("count", created),
		)
	}
	return nil
}

// Ensure AccrualHandler implements shared.EventHandler
var _ shared.EventHandler = (*AccrualHandler)(nil)
