package subscription

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appfee "github.com/erp/feeengine/internal/application/fee"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/erp/feeengine/internal/domain/subscription"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FeeGenerator produces fee events for committed subscriptions
type FeeGenerator interface {
	Generate(ctx context.Context, sub *subscription.Subscription, opts appfee.GenerateOptions) (*appfee.GenerationResult, error)
	GenerateForBatch(ctx context.Context, tenantID uuid.UUID, allocationIDs []uuid.UUID) *appfee.BatchResult
}

// ServiceConfig holds the dependencies of Service
type ServiceConfig struct {
	Repo           subscription.Repository
	FeeGenerator   FeeGenerator
	EventPublisher shared.EventPublisher
	Logger         *zap.Logger
}

// Service handles subscription recording and status changes
type Service struct {
	repo           subscription.Repository
	feeGenerator   FeeGenerator
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new subscription Service
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:           cfg.Repo,
		feeGenerator:   cfg.FeeGenerator,
		eventPublisher: cfg.EventPublisher,
		logger:         logger,
	}
}

// Create records a pending subscription. A request identical in investor, vehicle,
// commitment and effective date to an existing one returns ErrDuplicateSubscription
// referencing the existing subscription.
func (s *Service) Create(ctx context.Context, actor shared.Actor, req CreateSubscriptionRequest) (*SubscriptionResponse, error) {
	sub, err := subscription.NewSubscription(actor, subscription.NewSubscriptionInput{
		InvestorID:       req.InvestorID,
		DealID:           req.DealID,
		VehicleID:        req.VehicleID,
		TermsheetID:      req.TermsheetID,
		FeePlanID:        req.FeePlanID,
		CommitmentAmount: req.CommitmentAmount,
		UnitCount:        req.UnitCount,
		Currency:         valueobject.Currency(strings.ToUpper(req.Currency)),
		EffectiveDate:    req.EffectiveDate,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, s.duplicateOf(ctx, actor.TenantID, sub.Fingerprint)
		}
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	s.logger.Info("subscription created",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("investor_id", sub.InvestorID.String()),
		zap.String("deal_id", sub.DealID.String()),
	)
	resp := ToSubscriptionResponse(sub)
	return &resp, nil
}

func (s *Service) duplicateOf(ctx context.Context, tenantID uuid.UUID, fingerprint string) error {
	existing, err := s.repo.FindByFingerprint(ctx, tenantID, fingerprint)
	if err != nil {
		// The winner is not visible yet; still a conflict, just without a reference
		s.logger.Warn("duplicate subscription without a readable winner", zap.Error(err))
		return subscription.ErrDuplicateSubscription
	}
	return subscription.ErrDuplicateSubscription.WithRef(existing.ID.String())
}

// GetByID returns a subscription
func (s *Service) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*SubscriptionResponse, error) {
	sub, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToSubscriptionResponse(sub)
	return &resp, nil
}

// List lists subscriptions matching the filter
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter SubscriptionListFilter) ([]SubscriptionResponse, int64, error) {
	domainFilter := subscription.Filter{
		Filter:      shared.PageFilter(filter.Page, filter.PageSize),
		InvestorID:  filter.InvestorID,
		DealID:      filter.DealID,
		TermsheetID: filter.TermsheetID,
	}
	if filter.Status != "" {
		status := subscription.Status(filter.Status)
		domainFilter.Status = &status
	}

	subs, err := s.repo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		items = append(items, ToSubscriptionResponse(&subs[i]))
	}
	return items, total, nil
}

// UpdateStatus changes one subscription's status. When the change commits the
// subscription its fee events are generated; a generation failure is reported as
// a warning because the status change itself is already persisted.
func (s *Service) UpdateStatus(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdateStatusRequest) (*StatusUpdateResponse, error) {
	sub, err := s.repo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	committed, changed, err := s.transition(ctx, sub, subscription.Status(req.Status), req)
	if err != nil {
		return nil, err
	}

	resp := &StatusUpdateResponse{Subscription: ToSubscriptionResponse(sub)}
	if !changed || !committed || s.feeGenerator == nil {
		return resp, nil
	}

	result, err := s.feeGenerator.Generate(ctx, sub, appfee.GenerateOptions{})
	if err != nil {
		s.logger.Warn("fee event generation failed after commit",
			zap.String("subscription_id", sub.ID.String()),
			zap.Error(err),
		)
		resp.Warning = err.Error()
		return resp, nil
	}
	resp.FeeGeneration = result
	return resp, nil
}

// BulkUpdateStatus applies the same status to every listed subscription. Items are
// independent: failures are collected and the rest proceed. Subscriptions that
// became committed are passed to fee generation as one batch.
func (s *Service) BulkUpdateStatus(ctx context.Context, actor shared.Actor, req BulkUpdateStatusRequest) (*BulkUpdateResult, error) {
	target := subscription.Status(req.Status)
	if !target.IsValid() {
		return nil, shared.ErrInvalidInput.WithMessage(fmt.Sprintf("unknown subscription status %q", req.Status))
	}

	result := &BulkUpdateResult{}
	committedIDs := make([]uuid.UUID, 0, len(req.IDs))
	for _, id := range req.IDs {
		result.Processed++
		sub, err := s.repo.FindByIDForTenant(ctx, actor.TenantID, id)
		if err != nil {
			s.recordFailure(result, id, err)
			continue
		}
		committed, changed, err := s.transition(ctx, sub, target, UpdateStatusRequest{Status: req.Status})
		if err != nil {
			s.recordFailure(result, id, err)
			continue
		}
		if !changed {
			result.Unchanged++
			continue
		}
		result.Updated++
		if committed {
			committedIDs = append(committedIDs, sub.ID)
		}
	}

	if len(committedIDs) > 0 && s.feeGenerator != nil {
		result.FeeGeneration = s.feeGenerator.GenerateForBatch(ctx, actor.TenantID, committedIDs)
	}

	s.logger.Info("bulk subscription status update",
		zap.String("status", req.Status),
		zap.Int("processed", result.Processed),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func (s *Service) recordFailure(result *BulkUpdateResult, id uuid.UUID, err error) {
	result.Failed++
	result.Failures = append(result.Failures, appfee.BatchFailure{AllocationID: id, Error: err.Error()})
	s.logger.Warn("subscription status update failed",
		zap.String("subscription_id", id.String()),
		zap.Error(err),
	)
}

// transition applies the status change, saves it and publishes the resulting events.
// It reports whether the subscription became committed and whether anything changed.
func (s *Service) transition(ctx context.Context, sub *subscription.Subscription, target subscription.Status, req UpdateStatusRequest) (bool, bool, error) {
	previous := sub.Status
	committed, err := sub.TransitionTo(target, req.FundedAmount)
	if err != nil {
		return false, false, err
	}
	if sub.Status == previous {
		return false, false, nil
	}
	if err := s.repo.SaveWithLock(ctx, sub); err != nil {
		return false, false, err
	}

	events := sub.GetDomainEvents()
	sub.ClearDomainEvents()
	if s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("failed to publish subscription events",
				zap.String("subscription_id", sub.ID.String()),
				zap.Error(err),
			)
		}
	}
	return committed, true, nil
}
