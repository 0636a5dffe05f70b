package output

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/growth-projector/internal/domain"
)

// Highlights are the derived figures shown next to the headline outcome.
type Highlights struct {
	Gain          decimal.Decimal // nominal minus principal, may be negative
	GainPercent   decimal.Decimal // gain relative to principal, in percent
	Multiple      decimal.Decimal // nominal / principal
	InflationLoss decimal.Decimal // nominal minus real, zero without inflation
	TaxPaid       decimal.Decimal // nominal minus after-tax, zero without tax
	Spread        decimal.Decimal // P90 minus P10 of final values, aggregate only
}

// AnalyzeOutcome derives highlights from a projection result.
// Extracted from the console formatters for testability.
func AnalyzeOutcome(result *domain.ProjectionResult) Highlights {
	o := result.Outcome
	h := Highlights{Gain: o.Nominal.Sub(o.Principal)}
	if !o.Principal.IsZero() {
		h.GainPercent = h.Gain.Div(o.Principal).Mul(decimalHundred)
		h.Multiple = o.Nominal.Div(o.Principal)
	}
	if o.HasReal {
		h.InflationLoss = o.Nominal.Sub(o.Real)
	}
	if o.HasAfterTax {
		h.TaxPaid = o.Nominal.Sub(o.AfterTax)
	}
	if result.Summary != nil {
		h.Spread = decimal.NewFromFloat(result.Summary.P90).Sub(decimal.NewFromFloat(result.Summary.P10))
	}
	return h
}
