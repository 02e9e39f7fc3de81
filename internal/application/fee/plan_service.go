package fee

import (
	"context"
	"fmt"
	"strings"

	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PlanService manages fee plans and their components
type PlanService struct {
	planRepo  fee.FeePlanRepository
	eventRepo fee.FeeEventRepository
	logger    *zap.Logger
}

// NewPlanService creates a new PlanService
func NewPlanService(planRepo fee.FeePlanRepository, eventRepo fee.FeeEventRepository, logger *zap.Logger) *PlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{planRepo: planRepo, eventRepo: eventRepo, logger: logger}
}

// Create creates a plan from explicit components and/or termsheet percentages
func (s *PlanService) Create(ctx context.Context, actor shared.Actor, req CreateFeePlanRequest) (*FeePlanResponse, error) {
	plan, err := fee.NewFeePlan(actor, fee.NewFeePlanInput{
		DealID:           req.DealID,
		VehicleID:        req.VehicleID,
		TermsheetID:      req.TermsheetID,
		Name:             req.Name,
		CounterpartyType: fee.CounterpartyType(req.CounterpartyType),
		Currency:         valueobject.Currency(strings.ToUpper(req.Currency)),
	})
	if err != nil {
		return nil, err
	}

	specs := make([]fee.ComponentSpec, 0, len(req.Components)+4)
	for _, input := range req.Components {
		spec, err := ComponentSpecFromInput(input)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	if req.Terms != nil {
		termSpecs, err := ComponentSpecsFromTerms(*req.Terms)
		if err != nil {
			return nil, err
		}
		specs = append(specs, termSpecs...)
	}
	for _, spec := range specs {
		if _, err := plan.AddComponent(spec); err != nil {
			return nil, err
		}
	}

	if req.Activate || req.MakeDefault {
		if err := plan.Activate(); err != nil {
			return nil, err
		}
	}
	if req.MakeDefault {
		if err := plan.MarkDefault(); err != nil {
			return nil, err
		}
		if err := s.planRepo.SaveAsDefault(ctx, plan); err != nil {
			return nil, err
		}
	} else if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}

	s.logger.Info("fee plan created",
		zap.String("plan_id", plan.ID.String()),
		zap.String("deal_id", plan.DealID.String()),
		zap.Int("components", len(plan.Components)),
	)
	resp := ToFeePlanResponse(plan)
	return &resp, nil
}

// GetByID returns a plan with its components
func (s *PlanService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*FeePlanResponse, error) {
	plan, err := s.planRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToFeePlanResponse(plan)
	return &resp, nil
}

// List lists plans matching the filter
func (s *PlanService) List(ctx context.Context, tenantID uuid.UUID, filter FeePlanListFilter) ([]FeePlanResponse, int64, error) {
	domainFilter := fee.FeePlanFilter{
		Filter:      shared.PageFilter(filter.Page, filter.PageSize),
		DealID:      filter.DealID,
		TermsheetID: filter.TermsheetID,
	}
	if filter.Status != "" {
		status := fee.PlanStatus(filter.Status)
		domainFilter.Status = &status
	}
	if filter.CounterpartyType != "" {
		cp := fee.CounterpartyType(filter.CounterpartyType)
		domainFilter.CounterpartyType = &cp
	}

	plans, err := s.planRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.planRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]FeePlanResponse, 0, len(plans))
	for i := range plans {
		items = append(items, ToFeePlanResponse(&plans[i]))
	}
	return items, total, nil
}

// AddComponent adds a component to an unlocked plan
func (s *PlanService) AddComponent(ctx context.Context, tenantID, planID uuid.UUID, req AddComponentRequest) (*FeePlanResponse, error) {
	plan, err := s.planRepo.FindByIDForTenant(ctx, tenantID, planID)
	if err != nil {
		return nil, err
	}
	spec, err := ComponentSpecFromInput(req.ComponentInput)
	if err != nil {
		return nil, err
	}
	if _, err := plan.AddComponent(spec); err != nil {
		return nil, err
	}
	if err := s.planRepo.SaveWithLock(ctx, plan); err != nil {
		return nil, err
	}
	resp := ToFeePlanResponse(plan)
	return &resp, nil
}

// RemoveComponent removes a component from an unlocked plan
func (s *PlanService) RemoveComponent(ctx context.Context, tenantID, planID, componentID uuid.UUID) (*FeePlanResponse, error) {
	plan, err := s.planRepo.FindByIDForTenant(ctx, tenantID, planID)
	if err != nil {
		return nil, err
	}
	if err := plan.RemoveComponent(componentID); err != nil {
		return nil, err
	}
	if err := s.planRepo.SaveWithLock(ctx, plan); err != nil {
		return nil, err
	}
	resp := ToFeePlanResponse(plan)
	return &resp, nil
}

// Activate makes a draft plan usable for fee generation
func (s *PlanService) Activate(ctx context.Context, tenantID, planID uuid.UUID) (*FeePlanResponse, error) {
	plan, err := s.planRepo.FindByIDForTenant(ctx, tenantID, planID)
	if err != nil {
		return nil, err
	}
	if err := plan.Activate(); err != nil {
		return nil, err
	}
	if err := s.planRepo.SaveWithLock(ctx, plan); err != nil {
		return nil, err
	}
	resp := ToFeePlanResponse(plan)
	return &resp, nil
}

// SetDefault makes the plan the deal default, replacing the previous one
func (s *PlanService) SetDefault(ctx context.Context, tenantID, planID uuid.UUID) (*FeePlanResponse, error) {
	plan, err := s.planRepo.FindByIDForTenant(ctx, tenantID, planID)
	if err != nil {
		return nil, err
	}
	if err := plan.MarkDefault(); err != nil {
		return nil, err
	}
	if err := s.planRepo.SetDefault(ctx, tenantID, plan.DealID, plan.ID); err != nil {
		return nil, err
	}
	resp := ToFeePlanResponse(plan)
	return &resp, nil
}

// Archive retires a plan
func (s *PlanService) Archive(ctx context.Context, tenantID, planID uuid.UUID) (*FeePlanResponse, error) {
	plan, err := s.planRepo.FindByIDForTenant(ctx, tenantID, planID)
	if err != nil {
		return nil, err
	}
	plan.Archive()
	if err := s.planRepo.SaveWithLock(ctx, plan); err != nil {
		return nil, err
	}
	resp := ToFeePlanResponse(plan)
	return &resp, nil
}

// Amend creates the next revision of a plan. The new revision starts as a draft;
// the previous plan stays untouched because fee events reference it.
func (s *PlanService) Amend(ctx context.Context, actor shared.Actor, planID uuid.UUID) (*FeePlanResponse, error) {
	plan, err := s.planRepo.FindByIDForTenant(ctx, actor.TenantID, planID)
	if err != nil {
		return nil, err
	}
	if plan.Status == fee.PlanStatusArchived {
		return nil, shared.NewDomainError("INVALID_STATE", "Archived fee plans cannot be amended")
	}
	next := plan.Amend(actor)
	if err := s.planRepo.Save(ctx, next); err != nil {
		return nil, err
	}
	s.logger.Info("fee plan amended",
		zap.String("previous_plan_id", plan.ID.String()),
		zap.String("plan_id", next.ID.String()),
		zap.Int("revision", next.Revision),
	)
	resp := ToFeePlanResponse(next)
	return &resp, nil
}

// ListEvents lists fee events matching the filter
func (s *PlanService) ListEvents(ctx context.Context, tenantID uuid.UUID, filter FeeEventListFilter) ([]FeeEventResponse, int64, error) {
	domainFilter := fee.FeeEventFilter{
		Filter:       shared.PageFilter(filter.Page, filter.PageSize),
		AllocationID: filter.AllocationID,
		InvestorID:   filter.InvestorID,
		DealID:       filter.DealID,
	}
	if filter.Status != "" {
		status := fee.EventStatus(filter.Status)
		domainFilter.Status = &status
	}
	events, err := s.eventRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.eventRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]FeeEventResponse, 0, len(events))
	for i := range events {
		items = append(items, ToFeeEventResponse(&events[i]))
	}
	return items, total, nil
}

// ComponentSpecFromInput converts request input, turning stated percentages into basis points
func ComponentSpecFromInput(input ComponentInput) (fee.ComponentSpec, error) {
	spec := fee.ComponentSpec{
		Kind:             fee.ComponentKind(input.Kind),
		CalcMethod:       fee.CalcMethod(input.CalcMethod),
		RateBps:          input.RateBps,
		FlatAmount:       input.FlatAmount,
		Frequency:        fee.Frequency(input.Frequency),
		HurdleRateBps:    input.HurdleRateBps,
		HasHighWaterMark: input.HasHighWaterMark,
		Description:      input.Description,
	}
	if input.RatePercent != nil {
		if input.RateBps != nil {
			return spec, fee.ErrInvalidFeeTerms.WithMessage("give rate_percent or rate_bps, not both")
		}
		bps, err := percentToBps(input.RatePercent)
		if err != nil {
			return spec, err
		}
		spec.RateBps = bps
	}
	if input.HurdleRatePercent != nil {
		if input.HurdleRateBps != nil {
			return spec, fee.ErrInvalidFeeTerms.WithMessage("give hurdle_rate_percent or hurdle_rate_bps, not both")
		}
		bps, err := percentToBps(input.HurdleRatePercent)
		if err != nil {
			return spec, err
		}
		spec.HurdleRateBps = bps
	}
	return spec, nil
}

// ComponentSpecsFromTerms builds components from termsheet percentages.
// A null percentage yields no component, never a zero-rate one.
func ComponentSpecsFromTerms(terms TermsInput) ([]fee.ComponentSpec, error) {
	specs := make([]fee.ComponentSpec, 0, 5)

	add := func(kind fee.ComponentKind, method fee.CalcMethod, frequency fee.Frequency, percent *decimal.Decimal) error {
		bps, err := percentToBps(percent)
		if err != nil {
			return err
		}
		if bps == nil {
			return nil
		}
		spec := fee.ComponentSpec{Kind: kind, CalcMethod: method, RateBps: bps, Frequency: frequency}
		if method == fee.MethodPercentOfProfit {
			spec.HasHighWaterMark = terms.HasHighWaterMark
			spec.HurdleRateBps, err = percentToBps(terms.HurdleRatePercent)
			if err != nil {
				return err
			}
		}
		specs = append(specs, spec)
		return nil
	}

	if err := add(fee.KindSubscription, fee.MethodPercentOfInvestment, fee.FrequencyOneTime, terms.SubscriptionFeePercent); err != nil {
		return nil, err
	}
	managementFrequency := fee.Frequency(terms.ManagementFrequency)
	if managementFrequency == "" {
		managementFrequency = fee.FrequencyAnnual
	}
	if err := add(fee.KindManagement, fee.MethodPercentPerAnnum, managementFrequency, terms.ManagementFeePercent); err != nil {
		return nil, err
	}
	if err := add(fee.KindPerformance, fee.MethodPercentOfProfit, fee.FrequencyOnExit, terms.PerformanceFeePercent); err != nil {
		return nil, err
	}
	if terms.SpreadPerUnit != nil {
		spread := *terms.SpreadPerUnit
		specs = append(specs, fee.ComponentSpec{Kind: fee.KindSpreadMarkup, CalcMethod: fee.MethodPerUnitSpread, FlatAmount: &spread, Frequency: fee.FrequencyOneTime})
	}
	if terms.FlatFee != nil {
		flat := *terms.FlatFee
		specs = append(specs, fee.ComponentSpec{Kind: fee.KindFlat, CalcMethod: fee.MethodFixed, FlatAmount: &flat, Frequency: fee.FrequencyOneTime})
	}
	return specs, nil
}

func percentToBps(percent *decimal.Decimal) (*int, error) {
	bps, err := valueobject.PercentToBps(percent)
	if err != nil {
		return nil, fee.ErrInvalidFeeTerms.WithMessage(fmt.Sprintf("invalid percentage: %s", err.Error()))
	}
	if bps == nil {
		return nil, nil
	}
	v := bps.Int()
	return &v, nil
}
