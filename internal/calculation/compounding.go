package calculation

import (
	"math"

	"github.com/rpgo/growth-projector/internal/domain"
)

// FutureValue compounds a present value once per year: pv·(1+rate)^years.
func FutureValue(pv, rate float64, years int) float64 {
	return pv * math.Pow(1+rate, float64(years))
}

// FutureValueOfSeries is the future value of an ordinary annuity paying pmt
// freq times a year for the given years at a nominal annual rate.
// A zero rate or an empty schedule degrades to the plain sum of payments.
func FutureValueOfSeries(pmt, rate float64, years, freq int) float64 {
	n := float64(years * freq)
	if n == 0 || rate == 0 {
		return pmt * n
	}
	r := rate / float64(freq)
	return pmt * (math.Pow(1+r, n) - 1) / r
}

// monthlyRateFromAnnual converts an annual rate to the equivalent monthly rate.
func monthlyRateFromAnnual(r float64) float64 {
	return math.Pow(1+r, 1.0/12) - 1
}

// annuity is the end-of-year value of `periods` payments of pmt at rate r,
// falling back to the plain sum when r is zero.
func annuity(pmt, r float64, periods int) float64 {
	if r == 0 {
		return pmt * float64(periods)
	}
	return pmt * (math.Pow(1+r, float64(periods)) - 1) / r
}

// FixedRateSeries builds the year-by-year series for the fixed-rate regime.
//
// Non-recurring: the amount is invested once, principal stays at the amount for
// every year >= 1. Recurring: each year compounds the prior value by (1+R) and
// adds twelve monthly payments at the monthly-equivalent rate. The recurring
// series is always monthly-paced, whatever the configured frequency.
func FixedRateSeries(params domain.ProjectionParameters) domain.Series {
	years := params.Years
	if years < 0 {
		years = 0
	}
	series := make(domain.Series, 0, years+1)
	A, R := params.Amount, params.Rate

	if !params.Recurring {
		for y := 0; y <= years; y++ {
			if y == 0 {
				series = append(series, domain.YearSnapshot{})
				continue
			}
			series = append(series, domain.YearSnapshot{Year: y, Nominal: FutureValue(A, R, y), Principal: A})
		}
		return series
	}

	rPer := monthlyRateFromAnnual(R)
	var value, paid float64
	for y := 0; y <= years; y++ {
		if y > 0 {
			value *= 1 + R
			value += annuity(A, rPer, 12)
			paid += A * 12
		}
		series = append(series, domain.YearSnapshot{Year: y, Nominal: value, Principal: paid})
	}
	return series
}

// FixedRateOutcome returns the headline final value and principal for the
// fixed-rate regime. For recurring contributions the closed form uses the
// configured frequency, unlike FixedRateSeries. A zero frequency means monthly.
func FixedRateOutcome(params domain.ProjectionParameters) (nominal, principal float64) {
	if !params.Recurring {
		return FutureValue(params.Amount, params.Rate, params.Years), params.Amount
	}
	freq := int(params.Frequency)
	if freq == 0 {
		freq = int(domain.Monthly)
	}
	return FutureValueOfSeries(params.Amount, params.Rate, params.Years, freq),
		params.Amount * float64(params.Years) * float64(freq)
}
