package fee

import (
	"fmt"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ComponentKind classifies what a fee component charges for
type ComponentKind string

const (
	KindSubscription ComponentKind = "subscription"
	KindManagement   ComponentKind = "management"
	KindPerformance  ComponentKind = "performance"
	KindSpreadMarkup ComponentKind = "spread_markup"
	KindFlat         ComponentKind = "flat"
	KindOther        ComponentKind = "other"
)

// IsValid checks if the kind is known
func (k ComponentKind) IsValid() bool {
	switch k {
	case KindSubscription, KindManagement, KindPerformance, KindSpreadMarkup, KindFlat, KindOther:
		return true
	}
	return false
}

// String returns the string representation of ComponentKind
func (k ComponentKind) String() string {
	return string(k)
}

// Label returns a display name such as "Spread Markup"
func (k ComponentKind) Label() string {
	return valueobject.Humanize(string(k))
}

// CalcMethod determines how a component's amount is computed
type CalcMethod string

const (
	MethodPercentOfInvestment CalcMethod = "percent_of_investment"
	MethodPercentPerAnnum     CalcMethod = "percent_per_annum"
	MethodPercentOfProfit     CalcMethod = "percent_of_profit"
	MethodPerUnitSpread       CalcMethod = "per_unit_spread"
	MethodFixed               CalcMethod = "fixed"
)

// IsValid checks if the method is known
func (m CalcMethod) IsValid() bool {
	switch m {
	case MethodPercentOfInvestment, MethodPercentPerAnnum, MethodPercentOfProfit,
		MethodPerUnitSpread, MethodFixed:
		return true
	}
	return false
}

// UsesRate returns true if the method is driven by rate_bps rather than flat_amount
func (m CalcMethod) UsesRate() bool {
	switch m {
	case MethodPercentOfInvestment, MethodPercentPerAnnum, MethodPercentOfProfit:
		return true
	}
	return false
}

// Frequency is how often a component is charged
type Frequency string

const (
	FrequencyOneTime   Frequency = "one_time"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnual    Frequency = "annual"
	FrequencyOnExit    Frequency = "on_exit"
)

// IsValid checks if the frequency is known
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyOneTime, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual, FrequencyOnExit:
		return true
	}
	return false
}

// PeriodsPerYear is how many charge periods fit in a year.
// One-time and on-exit charges are not periodic and count as a full year.
func (f Frequency) PeriodsPerYear() int64 {
	switch f {
	case FrequencyMonthly:
		return 12
	case FrequencyQuarterly:
		return 4
	default:
		return 1
	}
}

// ErrInvalidFeeTerms is returned when a component's terms cannot be evaluated
var ErrInvalidFeeTerms = shared.NewDomainError("INVALID_FEE_TERMS", "Invalid fee terms")

// FeeComponent is one charge rule within a FeePlan
type FeeComponent struct {
	ID               uuid.UUID
	FeePlanID        uuid.UUID
	Kind             ComponentKind
	CalcMethod       CalcMethod
	RateBps          *int
	FlatAmount       *decimal.Decimal
	Frequency        Frequency
	HurdleRateBps    *int
	HasHighWaterMark bool
	SortOrder        int
	Description      string
}

// ComponentSpec is the input for creating a component
type ComponentSpec struct {
	Kind             ComponentKind
	CalcMethod       CalcMethod
	RateBps          *int
	FlatAmount       *decimal.Decimal
	Frequency        Frequency
	HurdleRateBps    *int
	HasHighWaterMark bool
	Description      string
}

// NewFeeComponent creates a validated component
func NewFeeComponent(planID uuid.UUID, spec ComponentSpec, sortOrder int) (*FeeComponent, error) {
	c := &FeeComponent{
		ID:               uuid.New(),
		FeePlanID:        planID,
		Kind:             spec.Kind,
		CalcMethod:       spec.CalcMethod,
		RateBps:          spec.RateBps,
		FlatAmount:       spec.FlatAmount,
		Frequency:        spec.Frequency,
		HurdleRateBps:    spec.HurdleRateBps,
		HasHighWaterMark: spec.HasHighWaterMark,
		SortOrder:        sortOrder,
		Description:      spec.Description,
	}
	if c.Frequency == "" {
		c.Frequency = FrequencyOneTime
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the component's terms
func (c *FeeComponent) Validate() error {
	if !c.Kind.IsValid() {
		return invalidTerms("unknown fee kind %q", c.Kind)
	}
	if !c.CalcMethod.IsValid() {
		return invalidTerms("unknown calc method %q", c.CalcMethod)
	}
	if !c.Frequency.IsValid() {
		return invalidTerms("unknown frequency %q", c.Frequency)
	}
	if c.RateBps != nil && c.FlatAmount != nil {
		return invalidTerms("component may set rate_bps or flat_amount, not both")
	}
	if c.RateBps != nil {
		if err := valueobject.BasisPoints(*c.RateBps).Validate(); err != nil {
			return invalidTerms("%s", err.Error())
		}
		if !c.CalcMethod.UsesRate() {
			return invalidTerms("%s does not take rate_bps", c.CalcMethod)
		}
	}
	if c.FlatAmount != nil {
		if c.FlatAmount.IsNegative() {
			return invalidTerms("flat_amount cannot be negative")
		}
		if c.CalcMethod.UsesRate() {
			return invalidTerms("%s does not take flat_amount", c.CalcMethod)
		}
	}
	if c.HurdleRateBps != nil {
		if err := valueobject.BasisPoints(*c.HurdleRateBps).Validate(); err != nil {
			return invalidTerms("hurdle: %s", err.Error())
		}
	}
	if (c.HurdleRateBps != nil || c.HasHighWaterMark) && c.CalcMethod != MethodPercentOfProfit {
		return invalidTerms("hurdle and high-water mark apply to percent_of_profit only")
	}
	return nil
}

func invalidTerms(format string, args ...any) error {
	return ErrInvalidFeeTerms.WithMessage(fmt.Sprintf(format, args...))
}
