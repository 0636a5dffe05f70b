package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/growth-projector/internal/domain"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Returns are annual, nominal and applied at year end",
	"Recurring contributions are paid as an annuity at the monthly-equivalent rate",
	"Weekly and daily plans reuse the monthly-equivalent rate over 52 or 365 periods",
	"Historical returns are drawn uniformly with replacement; years are independent",
}

// GenerateAssumptions creates the assumptions list for one projection.
func GenerateAssumptions(result *domain.ProjectionResult) []string {
	p := result.Parameters
	out := make([]string, 0, len(DefaultAssumptions)+4)

	switch result.Mode {
	case domain.ModeDeterministic:
		out = append(out, fmt.Sprintf("Fixed annual return: %.2f%%", p.Rate*100))
		out = append(out, DefaultAssumptions[:2]...)
		if p.Recurring {
			out = append(out, "Year-by-year series pays twelve contributions a year; the headline uses the configured frequency")
		}
	default:
		out = append(out, DefaultAssumptions...)
		if r := result.Returns; r != nil {
			if r.FirstYear != 0 {
				out = append(out, fmt.Sprintf("Return table %q: %d years (%d-%d)", r.Name, r.Count, r.FirstYear, r.LastYear))
			} else {
				out = append(out, fmt.Sprintf("Return table %q: %d returns", r.Name, r.Count))
			}
		}
		if result.Mode == domain.ModeAggregate {
			out = append(out, fmt.Sprintf("%d simulated paths, seed %d", result.Runs, result.Seed))
		}
	}

	if p.Inflation != nil {
		out = append(out, fmt.Sprintf("Inflation: %s annually", FormatPercentage(decimal.NewFromFloat(*p.Inflation).Mul(decimalHundred))))
	}
	if p.TaxRate != nil {
		out = append(out, fmt.Sprintf("Tax on gains: %s at the end of the horizon", FormatPercentage(decimal.NewFromFloat(*p.TaxRate).Mul(decimalHundred))))
	}
	return out
}

var decimalHundred = decimal.NewFromInt(100)
