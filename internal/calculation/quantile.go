package calculation

import (
	"math"
	"slices"
)

// Quantile returns the p-quantile of values (p in [0,1]) using linear
// interpolation between order statistics. Empty input yields 0.
// The input slice is not modified.
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return quantileSorted(sortedCopy(values), p)
}

// Quantiles evaluates several probabilities against a single sort of values.
func Quantiles(values []float64, ps ...float64) []float64 {
	out := make([]float64, len(ps))
	if len(values) == 0 {
		return out
	}
	sorted := sortedCopy(values)
	for i, p := range ps {
		out[i] = quantileSorted(sorted, p)
	}
	return out
}

func sortedCopy(values []float64) []float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return sorted
}

func quantileSorted(sorted []float64, p float64) float64 {
	p = min(max(p, 0), 1)
	idx := float64(len(sorted)-1) * p
	lo, hi := int(math.Floor(idx)), int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	w := idx - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// minMax returns the smallest and largest value, or zeros for empty input.
func minMax(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	return slices.Min(values), slices.Max(values)
}
