package calculation

import "time"

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// seedFunc returns a pseudo-random seed when a caller asks for seed 0
// (override for deterministic Monte Carlo tests).
var seedFunc = func() uint64 { return uint64(time.Now().UnixNano()) }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() uint64) { seedFunc = f }

// resolveSeed keeps explicit seeds and draws one for the zero value.
func resolveSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	if s := seedFunc(); s != 0 {
		return s
	}
	return 1
}
