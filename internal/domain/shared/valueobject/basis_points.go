package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// MaxBasisPoints is 100%
	MaxBasisPoints = 10000
)

var bpsDenominator = decimal.NewFromInt(MaxBasisPoints)

// BasisPoints is a rate expressed in 1/100th of a percent
type BasisPoints int

// NewBasisPoints validates that v is within [0, 10000]
func NewBasisPoints(v int) (BasisPoints, error) {
	bps := BasisPoints(v)
	if err := bps.Validate(); err != nil {
		return 0, err
	}
	return bps, nil
}

// Validate checks the range [0, 10000]
func (b BasisPoints) Validate() error {
	if b < 0 || b > MaxBasisPoints {
		return fmt.Errorf("rate_bps must be between 0 and %d, got %d", MaxBasisPoints, int(b))
	}
	return nil
}

// Of returns amount × bps / 10000 with exact decimal arithmetic
func (b BasisPoints) Of(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(b))).Div(bpsDenominator)
}

// Percent returns bps / 100 (250 bps -> 2.5)
func (b BasisPoints) Percent() decimal.Decimal {
	return decimal.NewFromInt(int64(b)).Div(decimal.NewFromInt(100))
}

// Int returns the raw integer value
func (b BasisPoints) Int() int {
	return int(b)
}

// PercentToBps converts an externally stated percentage ("2.5" meaning 2.5%) to basis points,
// rounding half away from zero. A nil percent yields nil: no component should be generated.
func PercentToBps(percent *decimal.Decimal) (*BasisPoints, error) {
	if percent == nil {
		return nil, nil
	}
	rounded := percent.Mul(decimal.NewFromInt(100)).Round(0)
	bps := BasisPoints(rounded.IntPart())
	if err := bps.Validate(); err != nil {
		return nil, err
	}
	return &bps, nil
}
