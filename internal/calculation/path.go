package calculation

import "github.com/rpgo/growth-projector/internal/domain"

// SimulatePath turns one sequence of annual returns into a value/principal
// series. The horizon is len(returns); the result has len(returns)+1 entries
// and starts at {0, 0, 0}.
//
// Recurring contributions are paid as an end-of-year annuity at the
// monthly-equivalent rate of that year's return. Weekly and daily schedules
// reuse the monthly-equivalent rate over 52 or 365 periods; this is an
// approximation kept for output compatibility, not a true per-period rate.
// Non-recurring contributions are a single lump added in year 1.
func SimulatePath(returns []float64, recurring bool, freq domain.Frequency, amount float64) domain.Series {
	series := make(domain.Series, 0, len(returns)+1)
	series = append(series, domain.YearSnapshot{})

	var value, paid float64
	for i, r := range returns {
		y := i + 1
		value *= 1 + r
		switch {
		case recurring:
			rm := monthlyRateFromAnnual(r)
			periods := freq.Periods()
			value += annuity(amount, rm, periods)
			paid += amount * float64(periods)
		case y == 1:
			value += amount
			paid += amount
		}
		series = append(series, domain.YearSnapshot{Year: y, Nominal: value, Principal: paid})
	}
	return series
}

// SimulatePath draws a fresh return sequence and simulates it.
func (s *ReturnSampler) SimulatePath(years int, recurring bool, freq domain.Frequency, amount float64) domain.Series {
	return SimulatePath(s.Sample(years), recurring, freq, amount)
}

// ContributionSchedule is the cumulative principal per year of the stochastic
// path. It does not depend on returns, so every simulated path shares it.
func ContributionSchedule(years int, recurring bool, freq domain.Frequency, amount float64) []float64 {
	if years < 0 {
		years = 0
	}
	out := make([]float64, years+1)
	var paid float64
	for y := 1; y <= years; y++ {
		switch {
		case recurring:
			paid += amount * float64(freq.Periods())
		case y == 1:
			paid += amount
		}
		out[y] = paid
	}
	return out
}
