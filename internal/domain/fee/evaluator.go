package fee

import (
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

const daysPerYear = 365

// BasisContext carries the amounts a component is evaluated against
type BasisContext struct {
	InvestmentAmount decimal.Decimal
	ProfitAmount     decimal.Decimal
	// HighWaterMark is the prior peak cumulative profit. Nil means no prior mark.
	HighWaterMark *decimal.Decimal
	UnitCount     decimal.Decimal
	// ElapsedDays overrides the frequency proration for percent_per_annum when positive
	ElapsedDays int
}

// Evaluation is the outcome of evaluating one component
type Evaluation struct {
	Amount     decimal.Decimal
	Applicable bool
}

func notApplicable() Evaluation {
	return Evaluation{Amount: decimal.Zero}
}

func applicable(amount decimal.Decimal) Evaluation {
	return Evaluation{Amount: amount, Applicable: true}
}

// Evaluate computes the monetary amount of a component against a basis.
// A component whose required rate or flat amount is null is not applicable.
// Invalid terms return ErrInvalidFeeTerms.
func Evaluate(c *FeeComponent, basis BasisContext) (Evaluation, error) {
	if err := c.Validate(); err != nil {
		return notApplicable(), err
	}

	switch c.CalcMethod {
	case MethodPercentOfInvestment:
		if c.RateBps == nil {
			return notApplicable(), nil
		}
		return applicable(valueobject.BasisPoints(*c.RateBps).Of(basis.InvestmentAmount)), nil

	case MethodPercentPerAnnum:
		if c.RateBps == nil {
			return notApplicable(), nil
		}
		annual := valueobject.BasisPoints(*c.RateBps).Of(basis.InvestmentAmount)
		return applicable(prorate(annual, c.Frequency, basis.ElapsedDays)), nil

	case MethodPercentOfProfit:
		if c.RateBps == nil {
			return notApplicable(), nil
		}
		return applicable(valueobject.BasisPoints(*c.RateBps).Of(chargeableProfit(c, basis))), nil

	case MethodPerUnitSpread:
		if c.FlatAmount == nil {
			return notApplicable(), nil
		}
		return applicable(c.FlatAmount.Mul(basis.UnitCount)), nil

	case MethodFixed:
		if c.FlatAmount == nil {
			return notApplicable(), nil
		}
		return applicable(*c.FlatAmount), nil
	}

	return notApplicable(), invalidTerms("unknown calc method %q", c.CalcMethod)
}

// prorate divides once so that exact annual amounts stay exact where the period allows
func prorate(annual decimal.Decimal, freq Frequency, elapsedDays int) decimal.Decimal {
	if elapsedDays > 0 {
		return annual.Mul(decimal.NewFromInt(int64(elapsedDays))).Div(decimal.NewFromInt(daysPerYear))
	}
	return annual.Div(decimal.NewFromInt(freq.PeriodsPerYear()))
}

// chargeableProfit is max(0, profit - hurdle), with profit measured above the prior
// high-water mark when the component tracks one.
func chargeableProfit(c *FeeComponent, basis BasisContext) decimal.Decimal {
	profit := basis.ProfitAmount
	if c.HasHighWaterMark && basis.HighWaterMark != nil && basis.HighWaterMark.IsPositive() {
		profit = profit.Sub(*basis.HighWaterMark)
	}
	hurdle := decimal.Zero
	if c.HurdleRateBps != nil {
		hurdle = valueobject.BasisPoints(*c.HurdleRateBps).Of(basis.InvestmentAmount)
	}
	excess := profit.Sub(hurdle)
	if excess.IsNegative() {
		return decimal.Zero
	}
	return excess
}
