package main

import (
	"encoding/json"
	"fmt"

	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type quoteOptions struct {
	kind          string
	method        string
	frequency     string
	rateBps       int
	flatAmount    string
	hurdleBps     int
	highWaterMark string
	investment    string
	profit        string
	units         string
	elapsedDays   int
}

type quoteOutput struct {
	Kind       string          `json:"kind"`
	Method     string          `json:"calc_method"`
	Applicable bool            `json:"applicable"`
	Amount     decimal.Decimal `json:"amount"`
}

// quoteCmd evaluates a single component offline, the same way fee generation does
func quoteCmd() *cobra.Command {
	var opts quoteOptions
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Evaluate one fee component against an investment",
		Example: `  feectl quote --method percent_of_investment --rate-bps 150 --investment 1000000
  feectl quote --kind management --method percent_per_annum --frequency quarterly --rate-bps 200 --investment 500000
  feectl quote --kind performance --method percent_of_profit --rate-bps 2000 --hurdle-bps 800 --investment 100000 --profit 20000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			component, basis, err := opts.build(cmd)
			if err != nil {
				return err
			}
			eval, err := fee.Evaluate(component, basis)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(quoteOutput{
				Kind:       string(component.Kind),
				Method:     string(component.CalcMethod),
				Applicable: eval.Applicable,
				Amount:     eval.Amount,
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.kind, "kind", string(fee.KindSubscription), "Fee kind")
	f.StringVar(&opts.method, "method", string(fee.MethodPercentOfInvestment), "Calculation method")
	f.StringVar(&opts.frequency, "frequency", string(fee.FrequencyOneTime), "Charge frequency")
	f.IntVar(&opts.rateBps, "rate-bps", 0, "Rate in basis points")
	f.StringVar(&opts.flatAmount, "flat", "", "Flat amount (fixed and per_unit_spread)")
	f.IntVar(&opts.hurdleBps, "hurdle-bps", 0, "Hurdle rate in basis points")
	f.StringVar(&opts.highWaterMark, "high-water-mark", "", "Prior peak cumulative profit")
	f.StringVar(&opts.investment, "investment", "0", "Investment amount")
	f.StringVar(&opts.profit, "profit", "0", "Profit amount")
	f.StringVar(&opts.units, "units", "0", "Unit count")
	f.IntVar(&opts.elapsedDays, "elapsed-days", 0, "Prorate percent_per_annum over this many days")
	return cmd
}

func (o *quoteOptions) build(cmd *cobra.Command) (*fee.FeeComponent, fee.BasisContext, error) {
	spec := fee.ComponentSpec{
		Kind:             fee.ComponentKind(o.kind),
		CalcMethod:       fee.CalcMethod(o.method),
		Frequency:        fee.Frequency(o.frequency),
		HasHighWaterMark: o.highWaterMark != "",
	}
	if cmd.Flags().Changed("rate-bps") {
		rate := o.rateBps
		spec.RateBps = &rate
	}
	if cmd.Flags().Changed("hurdle-bps") {
		hurdle := o.hurdleBps
		spec.HurdleRateBps = &hurdle
	}
	if o.flatAmount != "" {
		flat, err := parseAmount("flat", o.flatAmount)
		if err != nil {
			return nil, fee.BasisContext{}, err
		}
		spec.FlatAmount = &flat
	}

	component, err := fee.NewFeeComponent(uuid.Nil, spec, 0)
	if err != nil {
		return nil, fee.BasisContext{}, err
	}

	basis := fee.BasisContext{ElapsedDays: o.elapsedDays}
	if basis.InvestmentAmount, err = parseAmount("investment", o.investment); err != nil {
		return nil, fee.BasisContext{}, err
	}
	if basis.ProfitAmount, err = parseAmount("profit", o.profit); err != nil {
		return nil, fee.BasisContext{}, err
	}
	if basis.UnitCount, err = parseAmount("units", o.units); err != nil {
		return nil, fee.BasisContext{}, err
	}
	if o.highWaterMark != "" {
		hwm, err := parseAmount("high-water-mark", o.highWaterMark)
		if err != nil {
			return nil, fee.BasisContext{}, err
		}
		basis.HighWaterMark = &hwm
	}
	return component, basis, nil
}

func parseAmount(flag, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q is not a decimal amount", flag, raw)
	}
	return d, nil
}
