package fee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/subscription"
	"github.com/erp/feeengine/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GenerateOptions carries basis data beyond the subscription itself.
// Profit-based and on-exit components are only evaluated when Profit is set.
type GenerateOptions struct {
	Profit        *decimal.Decimal
	HighWaterMark *decimal.Decimal
	ElapsedDays   int
	EventDate     time.Time
}

func (o GenerateOptions) isExit() bool {
	return o.Profit != nil
}

// GenerationResult reports what one allocation produced
type GenerationResult struct {
	AllocationID  uuid.UUID   `json:"allocation_id"`
	FeePlanID     uuid.UUID   `json:"fee_plan_id"`
	Created       int         `json:"created"`
	Skipped       int         `json:"skipped"`
	NotApplicable int         `json:"not_applicable"`
	Deferred      int         `json:"deferred"`
	FeeEventIDs   []uuid.UUID `json:"fee_event_ids"`
}

// BatchFailure describes one allocation that could not be processed
type BatchFailure struct {
	AllocationID uuid.UUID `json:"allocation_id"`
	Error        string    `json:"error"`
}

// BatchResult aggregates per-allocation outcomes of a batch
type BatchResult struct {
	Processed     int            `json:"processed"`
	Succeeded     int            `json:"succeeded"`
	Failed        int            `json:"failed"`
	EventsCreated int            `json:"events_created"`
	Failures      []BatchFailure `json:"failures,omitempty"`
}

// GeneratorConfig holds the dependencies of FeeEventGenerator
type GeneratorConfig struct {
	PlanRepo         fee.FeePlanRepository
	EventRepo        fee.FeeEventRepository
	SubscriptionRepo subscription.Repository
	EventPublisher   shared.EventPublisher
	Logger           *zap.Logger
	Now              func() time.Time
}

// FeeEventGenerator turns committed allocations into accrued fee events.
// Each (allocation, component) pair yields at most one fee event.
type FeeEventGenerator struct {
	planRepo         fee.FeePlanRepository
	eventRepo        fee.FeeEventRepository
	subscriptionRepo subscription.Repository
	eventPublisher   shared.EventPublisher
	logger           *zap.Logger
	now              func() time.Time
}

// NewFeeEventGenerator creates a new FeeEventGenerator
func NewFeeEventGenerator(cfg GeneratorConfig) *FeeEventGenerator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = shared.Now
	}
	return &FeeEventGenerator{
		planRepo:         cfg.PlanRepo,
		eventRepo:        cfg.EventRepo,
		subscriptionRepo: cfg.SubscriptionRepo,
		eventPublisher:   cfg.EventPublisher,
		logger:           logger,
		now:              now,
	}
}

// GenerateForAllocation loads the allocation and generates its fee events
func (g *FeeEventGenerator) GenerateForAllocation(ctx context.Context, tenantID, allocationID uuid.UUID, opts GenerateOptions) (*GenerationResult, error) {
	sub, err := g.subscriptionRepo.FindByIDForTenant(ctx, tenantID, allocationID)
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx, sub, opts)
}

// Generate creates the missing fee events for a committed allocation.
// Components are all evaluated before anything is written, so invalid terms create no events.
func (g *FeeEventGenerator) Generate(ctx context.Context, sub *subscription.Subscription, opts GenerateOptions) (*GenerationResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "fee_event", "generate",
		telemetry.SpanAttrTenantID, sub.TenantID,
		telemetry.SpanAttrDealID, sub.DealID,
		"allocation_id", sub.ID,
	)
	defer span.End()

	result, err := g.generate(ctx, sub, opts)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrCount, result.Created)
	return result, nil
}

func (g *FeeEventGenerator) generate(ctx context.Context, sub *subscription.Subscription, opts GenerateOptions) (*GenerationResult, error) {
	if !sub.Status.IsCommitted() {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Fee events are generated for committed allocations, got %s", sub.Status))
	}

	plan, err := g.resolvePlan(ctx, sub)
	if err != nil {
		return nil, err
	}

	basis := fee.BasisContext{
		InvestmentAmount: sub.CommitmentAmount,
		UnitCount:        sub.UnitCount,
		ElapsedDays:      opts.ElapsedDays,
		HighWaterMark:    opts.HighWaterMark,
	}
	if opts.Profit != nil {
		basis.ProfitAmount = *opts.Profit
	}
	eventDate := opts.EventDate
	if eventDate.IsZero() {
		eventDate = g.now()
	}

	result := &GenerationResult{AllocationID: sub.ID, FeePlanID: plan.ID, FeeEventIDs: make([]uuid.UUID, 0)}

	type pending struct {
		component *fee.FeeComponent
		amount    decimal.Decimal
	}
	toCreate := make([]pending, 0, len(plan.Components))
	for i := range plan.Components {
		component := &plan.Components[i]

		if (component.Frequency == fee.FrequencyOnExit || component.CalcMethod == fee.MethodPercentOfProfit) && !opts.isExit() {
			result.Deferred++
			continue
		}

		exists, err := g.eventRepo.ExistsForComponent(ctx, sub.TenantID, sub.ID, component.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing fee event: %w", err)
		}
		if exists {
			result.Skipped++
			continue
		}

		evaluation, err := fee.Evaluate(component, basis)
		if err != nil {
			return nil, err
		}
		if !evaluation.Applicable {
			result.NotApplicable++
			continue
		}
		toCreate = append(toCreate, pending{component: component, amount: evaluation.Amount})
	}

	events := make([]*fee.FeeEvent, 0, len(toCreate))
	for _, p := range toCreate {
		event, err := fee.NewFeeEvent(sub.TenantID, fee.NewFeeEventInput{
			AllocationID:   sub.ID,
			InvestorID:     sub.InvestorID,
			DealID:         sub.DealID,
			Plan:           plan,
			Component:      p.component,
			BaseAmount:     basisAmountFor(p.component, basis),
			ComputedAmount: p.amount,
			EventDate:      eventDate,
		})
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	created := make([]*fee.FeeEvent, 0, len(events))
	if len(events) > 0 {
		// Inserts and the plan lock commit together; a concurrent run's pairs come back skipped
		created, err = g.eventRepo.CreateAccrued(ctx, plan, events, g.now())
		if err != nil {
			return nil, fmt.Errorf("failed to create fee events: %w", err)
		}
	}
	result.Skipped += len(events) - len(created)
	result.Created = len(created)
	for _, event := range created {
		result.FeeEventIDs = append(result.FeeEventIDs, event.ID)
	}

	g.publish(ctx, created)

	g.logger.Info("fee events generated",
		zap.String("allocation_id", sub.ID.String()),
		zap.String("fee_plan_id", plan.ID.String()),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("not_applicable", result.NotApplicable),
		zap.Int("deferred", result.Deferred),
	)
	return result, nil
}

// GenerateForBatch processes allocations independently; a failing allocation is
// logged and counted and never stops the batch.
func (g *FeeEventGenerator) GenerateForBatch(ctx context.Context, tenantID uuid.UUID, allocationIDs []uuid.UUID) *BatchResult {
	result := &BatchResult{}
	for _, id := range allocationIDs {
		result.Processed++
		r, err := g.GenerateForAllocation(ctx, tenantID, id, GenerateOptions{})
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, BatchFailure{AllocationID: id, Error: err.Error()})
			g.logger.Warn("fee event generation failed for allocation",
				zap.String("allocation_id", id.String()),
				zap.Error(err),
			)
			continue
		}
		result.Succeeded++
		result.EventsCreated += r.Created
	}
	return result
}

// resolvePlan returns the allocation's override plan, else the deal default
func (g *FeeEventGenerator) resolvePlan(ctx context.Context, sub *subscription.Subscription) (*fee.FeePlan, error) {
	var (
		plan *fee.FeePlan
		err  error
	)
	if sub.FeePlanID != nil {
		plan, err = g.planRepo.FindByIDForTenant(ctx, sub.TenantID, *sub.FeePlanID)
	} else {
		plan, err = g.planRepo.FindDefaultForDeal(ctx, sub.TenantID, sub.DealID)
	}
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fee.ErrNoEffectivePlan
		}
		return nil, err
	}
	if plan.Status != fee.PlanStatusActive {
		return nil, fee.ErrPlanNotActive
	}
	return plan, nil
}

func (g *FeeEventGenerator) publish(ctx context.Context, events []*fee.FeeEvent) {
	if g.eventPublisher == nil || len(events) == 0 {
		return
	}
	domainEvents := make([]shared.DomainEvent, 0, len(events))
	for _, e := range events {
		domainEvents = append(domainEvents, e.PullDomainEvents()...)
	}
	if err := g.eventPublisher.Publish(ctx, domainEvents...); err != nil {
		g.logger.Warn("failed to publish fee event accruals", zap.Error(err))
	}
}

// basisAmountFor records which basis figure the component was evaluated against
func basisAmountFor(c *fee.FeeComponent, basis fee.BasisContext) decimal.Decimal {
	switch c.CalcMethod {
	case fee.MethodPercentOfProfit:
		return basis.ProfitAmount
	case fee.MethodPerUnitSpread:
		return basis.UnitCount
	case fee.MethodFixed:
		return decimal.Zero
	default:
		return basis.InvestmentAmount
	}
}
