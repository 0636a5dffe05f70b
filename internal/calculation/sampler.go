package calculation

import "math/rand/v2"

// RandomSource is the only randomness the sampler needs. *rand.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// NewSeededSource returns a PCG generator for one stream of a seed. Monte Carlo
// runs use their run index as the stream, so a seed reproduces the same paths
// no matter how runs are scheduled across workers.
func NewSeededSource(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// ReturnSampler draws annual returns uniformly, with replacement, from a table.
type ReturnSampler struct {
	table *ReturnTable
	src   RandomSource
}

// NewReturnSampler binds a table to a random source. The source must not be
// shared with another goroutine.
func NewReturnSampler(table *ReturnTable, src RandomSource) *ReturnSampler {
	return &ReturnSampler{table: table, src: src}
}

// Sample returns years independent draws. Each call draws afresh.
func (s *ReturnSampler) Sample(years int) []float64 {
	if years <= 0 {
		return []float64{}
	}
	n := s.table.Len()
	out := make([]float64, years)
	for i := range out {
		out[i] = s.table.At(s.src.IntN(n))
	}
	return out
}
