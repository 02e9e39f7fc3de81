package fee

import (
	"context"
	"testing"

	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestComponentSpecsFromTerms(t *testing.T) {
	t.Run("percentages become basis points", func(t *testing.T) {
		specs, err := ComponentSpecsFromTerms(TermsInput{
			SubscriptionFeePercent: decPtr("2.5"),
			ManagementFeePercent:   decPtr("2"),
			PerformanceFeePercent:  decPtr("20"),
			HurdleRatePercent:      decPtr("8"),
			HasHighWaterMark:       true,
		})
		require.NoError(t, err)
		require.Len(t, specs, 3)

		assert.Equal(t, fee.KindSubscription, specs[0].Kind)
		assert.Equal(t, 250, *specs[0].RateBps)
		assert.Equal(t, fee.FrequencyOneTime, specs[0].Frequency)

		assert.Equal(t, fee.MethodPercentPerAnnum, specs[1].CalcMethod)
		assert.Equal(t, 200, *specs[1].RateBps)
		assert.Equal(t, fee.FrequencyAnnual, specs[1].Frequency)

		assert.Equal(t, fee.MethodPercentOfProfit, specs[2].CalcMethod)
		assert.Equal(t, 2000, *specs[2].RateBps)
		assert.Equal(t, 800, *specs[2].HurdleRateBps)
		assert.True(t, specs[2].HasHighWaterMark)
		assert.Equal(t, fee.FrequencyOnExit, specs[2].Frequency)
	})

	t.Run("null percentage yields no component", func(t *testing.T) {
		specs, err := ComponentSpecsFromTerms(TermsInput{ManagementFeePercent: decPtr("1.5"), ManagementFrequency: "quarterly"})
		require.NoError(t, err)
		require.Len(t, specs, 1)
		assert.Equal(t, fee.KindManagement, specs[0].Kind)
		assert.Equal(t, 150, *specs[0].RateBps)
		assert.Equal(t, fee.FrequencyQuarterly, specs[0].Frequency)
	})

	t.Run("zero percentage is kept as a zero-rate component", func(t *testing.T) {
		specs, err := ComponentSpecsFromTerms(TermsInput{SubscriptionFeePercent: decPtr("0")})
		require.NoError(t, err)
		require.Len(t, specs, 1)
		assert.Equal(t, 0, *specs[0].RateBps)
	})

	t.Run("flat amounts", func(t *testing.T) {
		specs, err := ComponentSpecsFromTerms(TermsInput{SpreadPerUnit: decPtr("0.75"), FlatFee: decPtr("1500")})
		require.NoError(t, err)
		require.Len(t, specs, 2)
		assert.Equal(t, fee.MethodPerUnitSpread, specs[0].CalcMethod)
		assert.True(t, decimal.RequireFromString("0.75").Equal(*specs[0].FlatAmount))
		assert.Equal(t, fee.MethodFixed, specs[1].CalcMethod)
	})

	t.Run("out of range percentage", func(t *testing.T) {
		_, err := ComponentSpecsFromTerms(TermsInput{PerformanceFeePercent: decPtr("120")})
		assert.ErrorIs(t, err, fee.ErrInvalidFeeTerms)
	})
}

func TestComponentSpecFromInput(t *testing.T) {
	t.Run("rate percent", func(t *testing.T) {
		spec, err := ComponentSpecFromInput(ComponentInput{Kind: "subscription", CalcMethod: "percent_of_investment", RatePercent: decPtr("5")})
		require.NoError(t, err)
		assert.Equal(t, 500, *spec.RateBps)
	})

	t.Run("both rate forms", func(t *testing.T) {
		bps := 500
		_, err := ComponentSpecFromInput(ComponentInput{Kind: "subscription", CalcMethod: "percent_of_investment", RatePercent: decPtr("5"), RateBps: &bps})
		assert.ErrorIs(t, err, fee.ErrInvalidFeeTerms)
	})
}

func TestPlanService_Create(t *testing.T) {
	actor := shared.Actor{TenantID: uuid.New(), UserID: uuid.New(), Roles: []string{shared.RoleStaffAdmin}}

	t.Run("draft plan from terms", func(t *testing.T) {
		planRepo := new(MockFeePlanRepository)
		svc := NewPlanService(planRepo, new(MockFeeEventRepository), nil)
		ctx := context.Background()
		planRepo.On("Save", ctx, mock.AnythingOfType("*fee.FeePlan")).Return(nil)

		resp, err := svc.Create(ctx, actor, CreateFeePlanRequest{
			DealID: uuid.New(),
			Name:   "Standard terms",
			Terms:  &TermsInput{SubscriptionFeePercent: decPtr("2.5")},
		})
		require.NoError(t, err)
		assert.Equal(t, "draft", resp.Status)
		assert.Equal(t, "investor", resp.CounterpartyType)
		assert.Equal(t, "USD", resp.Currency)
		require.Len(t, resp.Components, 1)
		assert.Equal(t, 250, *resp.Components[0].RateBps)
		planRepo.AssertNotCalled(t, "SaveAsDefault", mock.Anything, mock.Anything)
	})

	t.Run("make default activates and flags the plan", func(t *testing.T) {
		planRepo := new(MockFeePlanRepository)
		svc := NewPlanService(planRepo, new(MockFeeEventRepository), nil)
		ctx := context.Background()
		dealID := uuid.New()
		planRepo.On("SaveAsDefault", ctx, mock.MatchedBy(func(p *fee.FeePlan) bool {
			return p.IsDefault && p.Status == fee.PlanStatusActive && p.DealID == dealID
		})).Return(nil)

		resp, err := svc.Create(ctx, actor, CreateFeePlanRequest{
			DealID:      dealID,
			Name:        "Default",
			Components:  []ComponentInput{{Kind: "flat", CalcMethod: "fixed", FlatAmount: decPtr("250")}},
			MakeDefault: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)
		assert.True(t, resp.IsDefault)
		planRepo.AssertExpectations(t)
		planRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("non-investor plan cannot be made default", func(t *testing.T) {
		planRepo := new(MockFeePlanRepository)
		svc := NewPlanService(planRepo, new(MockFeeEventRepository), nil)
		ctx := context.Background()

		_, err := svc.Create(ctx, actor, CreateFeePlanRequest{
			DealID:           uuid.New(),
			Name:             "Introducer terms",
			CounterpartyType: "introducer",
			Components:       []ComponentInput{{Kind: "flat", CalcMethod: "fixed", FlatAmount: decPtr("250")}},
			MakeDefault:      true,
		})
		require.Error(t, err)
		planRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		planRepo.AssertNotCalled(t, "SaveAsDefault", mock.Anything, mock.Anything)
	})

	t.Run("failed default save is returned", func(t *testing.T) {
		planRepo := new(MockFeePlanRepository)
		svc := NewPlanService(planRepo, new(MockFeeEventRepository), nil)
		ctx := context.Background()
		planRepo.On("SaveAsDefault", ctx, mock.Anything).Return(shared.ErrConcurrencyConflict)

		_, err := svc.Create(ctx, actor, CreateFeePlanRequest{
			DealID:      uuid.New(),
			Name:        "Default",
			Components:  []ComponentInput{{Kind: "flat", CalcMethod: "fixed", FlatAmount: decPtr("250")}},
			MakeDefault: true,
		})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("invalid component is rejected before save", func(t *testing.T) {
		planRepo := new(MockFeePlanRepository)
		svc := NewPlanService(planRepo, new(MockFeeEventRepository), nil)
		bps := 250

		_, err := svc.Create(context.Background(), actor, CreateFeePlanRequest{
			DealID:     uuid.New(),
			Name:       "Broken",
			Components: []ComponentInput{{Kind: "flat", CalcMethod: "fixed", RateBps: &bps}},
		})
		assert.ErrorIs(t, err, fee.ErrInvalidFeeTerms)
		planRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPlanService_Amend(t *testing.T) {
	actor := shared.Actor{TenantID: uuid.New(), UserID: uuid.New(), Roles: []string{shared.RoleStaffAdmin}}
	plan, err := fee.NewFeePlan(actor, fee.NewFeePlanInput{DealID: uuid.New(), Name: "Series B"})
	require.NoError(t, err)
	_, err = plan.AddComponent(fee.ComponentSpec{Kind: fee.KindSubscription, CalcMethod: fee.MethodPercentOfInvestment, RateBps: intPtr(100)})
	require.NoError(t, err)
	require.NoError(t, plan.Activate())

	planRepo := new(MockFeePlanRepository)
	svc := NewPlanService(planRepo, new(MockFeeEventRepository), nil)
	ctx := context.Background()
	planRepo.On("FindByIDForTenant", ctx, actor.TenantID, plan.ID).Return(plan, nil)
	planRepo.On("Save", ctx, mock.Anything).Return(nil)

	resp, err := svc.Amend(ctx, actor, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Revision)
	assert.Equal(t, plan.ID, *resp.PreviousPlanID)
	assert.Equal(t, "draft", resp.Status)
	require.Len(t, resp.Components, 1)
	assert.NotEqual(t, plan.Components[0].ID, resp.Components[0].ID)
}

func TestPlanService_AddComponent_LockedPlan(t *testing.T) {
	actor := shared.Actor{TenantID: uuid.New(), UserID: uuid.New()}
	plan, err := fee.NewFeePlan(actor, fee.NewFeePlanInput{DealID: uuid.New(), Name: "Locked"})
	require.NoError(t, err)
	plan.Lock(plan.CreatedAt)

	planRepo := new(MockFeePlanRepository)
	svc := NewPlanService(planRepo, new(MockFeeEventRepository), nil)
	ctx := context.Background()
	planRepo.On("FindByIDForTenant", ctx, actor.TenantID, plan.ID).Return(plan, nil)

	_, err = svc.AddComponent(ctx, actor.TenantID, plan.ID, AddComponentRequest{
		ComponentInput: ComponentInput{Kind: "flat", CalcMethod: "fixed", FlatAmount: decPtr("10")},
	})
	assert.ErrorIs(t, err, fee.ErrPlanLocked)
	planRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}
